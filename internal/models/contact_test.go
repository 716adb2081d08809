// ABOUTME: Tests for contact submission validation
// ABOUTME: Covers required fields and the minimal email shape check

package models

import "testing"

func TestContactSubmission_Validate(t *testing.T) {
	valid := ContactSubmission{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Collaboration",
		Message: "I would like to discuss a project.",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid submission = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ContactSubmission)
	}{
		{"missing name", func(c *ContactSubmission) { c.Name = "  " }},
		{"missing email", func(c *ContactSubmission) { c.Email = "" }},
		{"email without at", func(c *ContactSubmission) { c.Email = "ada.example.com" }},
		{"email starting with at", func(c *ContactSubmission) { c.Email = "@example.com" }},
		{"email without domain dot", func(c *ContactSubmission) { c.Email = "ada@example" }},
		{"missing subject", func(c *ContactSubmission) { c.Subject = "" }},
		{"missing message", func(c *ContactSubmission) { c.Message = "\n" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
