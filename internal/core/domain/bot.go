package domain

// UpdateTypeMessageNew is the only update type the bot replies to.
const UpdateTypeMessageNew = "message_new"

// BotMessage is an inbound chat message.
type BotMessage struct {
	ID     int
	FromID int
	Text   string
}

// BotUpdate is one event delivered by the chat platform.
type BotUpdate struct {
	Type    string
	EventID string
	Message BotMessage
}

// OutgoingMessage is what the bot sends back to a user.
type OutgoingMessage struct {
	UserID int
	Text   string
}
