// ABOUTME: Tests for the build and search commands
// ABOUTME: Builds a snapshot from temp documents and searches it end to end

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestBuildAndSearch(t *testing.T) {
	// No API key: build lexical-only, search with keyword matching
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORTFOLIO_RETRIEVAL_STRATEGY", "lexical")

	sourceDir := t.TempDir()
	doc := "Sushin worked at PSEG building data pipelines and automation tooling. " +
		"He also completed several cloud security certifications along the way."
	if err := os.WriteFile(filepath.Join(sourceDir, "resume.md"), []byte(doc), 0644); err != nil {
		t.Fatalf("writing source doc: %v", err)
	}

	snapshot := filepath.Join(t.TempDir(), "embeddings.json")

	output, err := runCommand(t, "build", "--source", sourceDir, "--output", snapshot)
	if err != nil {
		t.Fatalf("build error = %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "lexical-only") {
		t.Errorf("build output missing mode: %s", output)
	}
	if _, err := os.Stat(snapshot); err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}

	output, err = runCommand(t, "search", "--corpus", snapshot, "pseg pipelines automation")
	if err != nil {
		t.Fatalf("search error = %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "resume.md") {
		t.Errorf("search output missing matched source:\n%s", output)
	}
	if !strings.Contains(output, "lexical") {
		t.Errorf("search output missing strategy:\n%s", output)
	}
}

func TestSearchNoMatches(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORTFOLIO_RETRIEVAL_STRATEGY", "lexical")

	sourceDir := t.TempDir()
	doc := "Sushin worked at PSEG building data pipelines and automation tooling."
	if err := os.WriteFile(filepath.Join(sourceDir, "resume.md"), []byte(doc), 0644); err != nil {
		t.Fatalf("writing source doc: %v", err)
	}

	snapshot := filepath.Join(t.TempDir(), "embeddings.json")
	if output, err := runCommand(t, "build", "--source", sourceDir, "--output", snapshot); err != nil {
		t.Fatalf("build error = %v\noutput: %s", err, output)
	}

	output, err := runCommand(t, "search", "--corpus", snapshot, "favorite lasagna recipe ingredients")
	if err != nil {
		t.Fatalf("search error = %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "No matches found") {
		t.Errorf("expected no-match message, got:\n%s", output)
	}
}

func TestBuildMissingSourceDir(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	snapshot := filepath.Join(t.TempDir(), "embeddings.json")
	if _, err := runCommand(t, "build", "--source", filepath.Join(t.TempDir(), "absent"), "--output", snapshot); err == nil {
		t.Error("build should fail for missing source directory")
	}
}

func TestAskRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := runCommand(t, "ask", "What did Sushin work on?")
	if err == nil {
		t.Fatal("ask should fail without OPENAI_API_KEY")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should mention missing key, got: %v", err)
	}
}
