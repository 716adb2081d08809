// ABOUTME: Tests for contact submission storage operations
// ABOUTME: Verifies validation on save, listing order, and per-IP counting
package sqlite

import (
	"testing"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

func TestContactSaveAndRecent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewContactStore(db)

	sub := &models.ContactSubmission{
		Name:      "Jordan Reyes",
		Email:     "jordan@example.com",
		Subject:   "Consulting inquiry",
		Message:   "Interested in discussing a data pipeline project.",
		IPAddress: "203.0.113.9",
		UserAgent: "Mozilla/5.0",
	}
	if err := store.Save(sub); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if sub.ID == 0 {
		t.Error("Save() did not set ID")
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("Save() did not set SubmittedAt")
	}

	subs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Recent() returned %d, want 1", len(subs))
	}
	if subs[0].Email != "jordan@example.com" {
		t.Errorf("Email = %v, want jordan@example.com", subs[0].Email)
	}
	if subs[0].Message != sub.Message {
		t.Errorf("Message = %v, want %v", subs[0].Message, sub.Message)
	}
}

func TestContactSaveRejectsInvalid(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewContactStore(db)

	invalid := &models.ContactSubmission{
		Name:    "No Email",
		Email:   "not-an-email",
		Subject: "Hello",
		Message: "Hi there",
	}
	if err := store.Save(invalid); err == nil {
		t.Error("Save() accepted invalid submission")
	}

	subs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("invalid submission was persisted")
	}
}

func TestContactCountFrom(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewContactStore(db)

	now := time.Now().UTC()
	entries := []models.ContactSubmission{
		{Name: "A", Email: "a@example.com", Subject: "s", Message: "m", IPAddress: "203.0.113.1", SubmittedAt: now.Add(-time.Minute)},
		{Name: "B", Email: "b@example.com", Subject: "s", Message: "m", IPAddress: "203.0.113.1", SubmittedAt: now.Add(-2 * time.Hour)},
		{Name: "C", Email: "c@example.com", Subject: "s", Message: "m", IPAddress: "203.0.113.2", SubmittedAt: now},
	}
	for i := range entries {
		if err := store.Save(&entries[i]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	count, err := store.CountFrom("203.0.113.1", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountFrom() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountFrom() = %d, want 1", count)
	}
}
