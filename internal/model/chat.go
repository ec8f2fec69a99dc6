package model

// Role tags a chat turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of the append-only transcript
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const (
	// NoChatResponse is returned when the chat body carries neither reply nor message
	NoChatResponse = "No response from AI."
	// ChatFailureMessage is appended to the transcript when the chat call fails
	ChatFailureMessage = "Sorry, I couldn't connect to the AI service. Make sure the backend is running."
)
