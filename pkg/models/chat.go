package models

// ChatMessage is one rendered turn in the chat transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
