// ABOUTME: Contact submission storage operations for SQLite
// ABOUTME: Persists validated contact form entries for later follow-up
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// ContactStore handles contact submission persistence
type ContactStore struct {
	db *DB
}

// NewContactStore creates a new ContactStore
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{db: db}
}

// Save inserts a submission and sets its assigned ID
func (s *ContactStore) Save(submission *models.ContactSubmission) error {
	if err := submission.Validate(); err != nil {
		return err
	}
	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(`
		INSERT INTO contact_submissions (name, email, subject, message, ip_address, user_agent, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, submission.Name, submission.Email, submission.Subject, submission.Message,
		submission.IPAddress, submission.UserAgent, submission.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save contact submission: %w", err)
	}

	submission.ID, err = result.LastInsertId()
	return err
}

// Recent returns up to limit submissions, newest first
func (s *ContactStore) Recent(limit int) ([]models.ContactSubmission, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, name, email, subject, message, ip_address, user_agent, submitted_at
		FROM contact_submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var submissions []models.ContactSubmission
	for rows.Next() {
		var (
			sub       models.ContactSubmission
			ipAddress sql.NullString
			userAgent sql.NullString
		)
		err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Subject, &sub.Message,
			&ipAddress, &userAgent, &sub.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact submission: %w", err)
		}
		sub.IPAddress = ipAddress.String
		sub.UserAgent = userAgent.String
		submissions = append(submissions, sub)
	}
	return submissions, rows.Err()
}

// CountFrom returns how many submissions an IP has made since the cutoff
func (s *ContactStore) CountFrom(ip string, since time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM contact_submissions
		WHERE ip_address = ? AND submitted_at >= ?
	`, ip, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}
