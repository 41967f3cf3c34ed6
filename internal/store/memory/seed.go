package memory

import "ai-chat-backend/internal/models"

// DemoUsername is the account available out of the box.
const DemoUsername = "alice.smith@example.com"

const demoPasswordHash = "$2y$12$7DPLjYHgFB.InosCWGYdVulohq5Rky.jTAqNxJb/f3zPCTG/tSe6S"

// DemoUser returns the demo account's credential record.
func DemoUser() models.User {
	return models.User{Username: DemoUsername, HashedPassword: demoPasswordHash}
}

// SeedDemo loads the demo account and its opening conversation.
func SeedDemo(s *Store) {
	s.Seed(
		DemoUser(),
		models.Message{Sender: models.SenderUser, Text: "Hey there! How are you?"},
		models.Message{Sender: models.SenderAI, Text: "Hello Alice! I'm doing well, thank you. How can I assist you today?"},
	)
}
