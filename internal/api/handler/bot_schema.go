package handler

import "github.com/99minutos/quiz-admin/internal/core/domain"

type botMessageRequest struct {
	ID     int    `json:"id"`
	FromID int    `json:"from_id" validate:"required"`
	Text   string `json:"text"`
}

type botObjectRequest struct {
	Message botMessageRequest `json:"message"`
}

type botUpdateRequest struct {
	Type    string            `json:"type"     validate:"required"`
	EventID string            `json:"event_id"`
	Secret  string            `json:"secret"`
	Object  *botObjectRequest `json:"object"   validate:"required_if=Type message_new"`
}

type acceptedResponse struct {
	Count int `json:"count"`
}

func toBotUpdate(r botUpdateRequest) domain.BotUpdate {
	u := domain.BotUpdate{Type: r.Type, EventID: r.EventID}
	if r.Object != nil {
		u.Message = domain.BotMessage{
			ID:     r.Object.Message.ID,
			FromID: r.Object.Message.FromID,
			Text:   r.Object.Message.Text,
		}
	}
	return u
}
