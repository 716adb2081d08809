// ABOUTME: Tests for chat message model
// ABOUTME: Verifies role validation and last-user-message extraction

package models

import "testing"

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, true},
		{RoleSystem, true},
		{Role("moderator"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLastUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		wantText string
		wantOK   bool
	}{
		{
			name:   "empty conversation",
			wantOK: false,
		},
		{
			name: "ends with user message",
			messages: []Message{
				{Role: RoleUser, Content: "Hi"},
				{Role: RoleAssistant, Content: "Hello!"},
				{Role: RoleUser, Content: "What did Sushin do at PSEG?"},
			},
			wantText: "What did Sushin do at PSEG?",
			wantOK:   true,
		},
		{
			name: "ends with assistant message",
			messages: []Message{
				{Role: RoleUser, Content: "Hi"},
				{Role: RoleAssistant, Content: "Hello!"},
			},
			wantOK: false,
		},
		{
			name: "single system message",
			messages: []Message{
				{Role: RoleSystem, Content: "You are an assistant."},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := LastUserMessage(tt.messages)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && msg.Content != tt.wantText {
				t.Errorf("Content = %q, want %q", msg.Content, tt.wantText)
			}
		})
	}
}
