// ABOUTME: Chat message model with role validation
// ABOUTME: Matches the role-tagged message shape exchanged with the UI layer
package models

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single role-tagged conversation turn
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether the role is one of the three known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// LastUserMessage returns the final message if it exists and was sent by the
// user. The boolean is false when the conversation is empty or ends with a
// non-user turn.
func LastUserMessage(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	last := messages[len(messages)-1]
	if last.Role != RoleUser {
		return Message{}, false
	}
	return last, true
}
