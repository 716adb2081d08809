// ABOUTME: Command-line benchmark runner for retrieval quality
// ABOUTME: Replays query scenarios against a snapshot and outputs JSON results

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/corpus"
	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// Scenario is one benchmark query with its expected top source
type Scenario struct {
	Name         string `json:"name"`
	Query        string `json:"query"`
	ExpectSource string `json:"expectSource"` // empty means "expect no results"
}

// Result records retrieval quality and latency for one scenario
type Result struct {
	Name       string  `json:"name"`
	Query      string  `json:"query"`
	TopSource  string  `json:"topSource,omitempty"`
	TopScore   float64 `json:"topScore"`
	Matches    int     `json:"matches"`
	LatencyP50 string  `json:"latencyP50"`
	Status     string  `json:"status"`
}

func main() {
	corpusPath := flag.String("corpus", "embeddings.json", "Snapshot path to benchmark against")
	scenariosPath := flag.String("scenarios", "", "JSON file of scenarios. If empty, runs the built-in set.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	iterations := flag.Int("iterations", 50, "Search repetitions per scenario for latency")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	chunks, err := corpus.NewStore(*corpusPath).Chunks()
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	scenarios := builtinScenarios()
	if *scenariosPath != "" {
		data, err := os.ReadFile(*scenariosPath)
		if err != nil {
			log.Fatalf("Failed to read scenarios: %v", err)
		}
		if err := json.Unmarshal(data, &scenarios); err != nil {
			log.Fatalf("Failed to parse scenarios: %v", err)
		}
	}

	retriever := core.NewRetriever(core.NewLexicalScorer(), core.DefaultTopK, core.DefaultMinSimilarity)

	fmt.Println("========================================")
	fmt.Println("Portfolio Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Printf("Corpus: %s (%d chunks)\n\n", *corpusPath, len(chunks))

	results := make([]Result, 0, len(scenarios))
	passed, failed := 0, 0

	for _, scenario := range scenarios {
		result := runScenario(retriever, chunks, scenario, *iterations)
		results = append(results, result)

		fmt.Printf("%s\n", scenario.Name)
		fmt.Printf("  Query: %q\n", scenario.Query)
		fmt.Printf("  Top: %s (%.3f), %d match(es), p50 %s\n",
			result.TopSource, result.TopScore, result.Matches, result.LatencyP50)
		fmt.Printf("  Status: %s\n\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("========================================")
	fmt.Printf("Total: %d, Passed: %d, Failed: %d\n", len(results), passed, failed)
	fmt.Println("========================================")

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	if err := os.WriteFile(*outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runScenario(retriever *core.Retriever, chunks []models.EmbeddingChunk, scenario Scenario, iterations int) Result {
	result := Result{Name: scenario.Name, Query: scenario.Query}

	if iterations <= 0 {
		iterations = 1
	}
	latencies := make([]time.Duration, 0, iterations)

	var matches []models.SearchResult
	for i := 0; i < iterations; i++ {
		start := time.Now()
		found, err := retriever.Search(context.Background(), scenario.Query, chunks)
		latencies = append(latencies, time.Since(start))
		if err != nil {
			result.Status = fmt.Sprintf("ERROR: %v", err)
			return result
		}
		matches = found
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	result.LatencyP50 = latencies[len(latencies)/2].String()
	result.Matches = len(matches)

	if len(matches) > 0 {
		result.TopSource = matches[0].Chunk.Metadata.Source
		result.TopScore = matches[0].Similarity
	}

	switch {
	case scenario.ExpectSource == "" && len(matches) == 0:
		result.Status = "PASS"
	case scenario.ExpectSource != "" && result.TopSource == scenario.ExpectSource:
		result.Status = "PASS"
	default:
		result.Status = "FAIL"
	}
	return result
}

func builtinScenarios() []Scenario {
	return []Scenario{
		{Name: "Employment history", Query: "What did Sushin work on at PSEG?", ExpectSource: "resume.md"},
		{Name: "Project details", Query: "Tell me about the portfolio assistant project", ExpectSource: "projects.md"},
		{Name: "Certifications", Query: "What security certifications does Sushin hold?", ExpectSource: "certifications.md"},
		{Name: "Off-topic declines", Query: "What is your favorite lasagna recipe?", ExpectSource: ""},
	}
}
