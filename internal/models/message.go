package models

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "User"
	SenderAI   Sender = "AI"
)

// Message represents a single entry in a user's conversation log.
// ID always equals the message's position in the owning log.
type Message struct {
	ID     int    `json:"id"`
	Sender Sender `json:"sender"`
	Text   string `json:"message"`
}
