// ABOUTME: Contact form submission model
// ABOUTME: Stored for follow-up; mail delivery is handled outside this service
package models

import (
	"errors"
	"strings"
	"time"
)

// ContactSubmission is one contact form entry
type ContactSubmission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Validate checks required fields and a minimal email shape
func (c *ContactSubmission) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return errors.New("email is not valid")
	}
	if strings.TrimSpace(c.Subject) == "" {
		return errors.New("subject is required")
	}
	if strings.TrimSpace(c.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}
