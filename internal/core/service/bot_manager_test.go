package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/quiz-admin/internal/core/domain"
)

type recordingSender struct {
	sent []domain.OutgoingMessage
	err  error
}

func (s *recordingSender) SendMessage(_ context.Context, msg domain.OutgoingMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func (d *stubDedup) IsDuplicate(_ context.Context, u domain.BotUpdate) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[u.EventID], nil
}

func (d *stubDedup) Mark(_ context.Context, u domain.BotUpdate) error {
	d.seen[u.EventID] = true
	return nil
}

func messageUpdate(eventID string, from int) domain.BotUpdate {
	return domain.BotUpdate{
		Type:    domain.UpdateTypeMessageNew,
		EventID: eventID,
		Message: domain.BotMessage{ID: 1, FromID: from, Text: "hi"},
	}
}

func TestBotManager_RepliesToEverySender(t *testing.T) {
	sender := &recordingSender{}
	m := NewBotManager(sender, nil, "", zerolog.Nop())

	err := m.HandleUpdates(context.Background(), []domain.BotUpdate{
		messageUpdate("e1", 10),
		{Type: "message_typing_state", EventID: "e2"},
		messageUpdate("e3", 20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.OutgoingMessage{{UserID: 10, Text: DefaultReply}, {UserID: 20, Text: DefaultReply}}
	if len(sender.sent) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(sender.sent))
	}
	for i := range want {
		if sender.sent[i] != want[i] {
			t.Fatalf("message %d: expected %+v, got %+v", i, want[i], sender.sent[i])
		}
	}
}

func TestBotManager_EmptyBatch(t *testing.T) {
	sender := &recordingSender{}
	m := NewBotManager(sender, nil, "", zerolog.Nop())

	if err := m.HandleUpdates(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no messages")
	}
}

func TestBotManager_SkipsDuplicates(t *testing.T) {
	sender := &recordingSender{}
	dedup := &stubDedup{seen: map[string]bool{}}
	m := NewBotManager(sender, dedup, "pong", zerolog.Nop())

	u := messageUpdate("e1", 10)
	_ = m.HandleUpdates(context.Background(), []domain.BotUpdate{u})
	_ = m.HandleUpdates(context.Background(), []domain.BotUpdate{u})

	if len(sender.sent) != 1 {
		t.Fatalf("expected a single reply, got %d", len(sender.sent))
	}
	if sender.sent[0].Text != "pong" {
		t.Fatalf("expected custom reply, got %q", sender.sent[0].Text)
	}
}

func TestBotManager_DedupFailureStillReplies(t *testing.T) {
	sender := &recordingSender{}
	dedup := &stubDedup{seen: map[string]bool{}, checkErr: errors.New("redis down")}
	m := NewBotManager(sender, dedup, "", zerolog.Nop())

	if err := m.HandleUpdates(context.Background(), []domain.BotUpdate{messageUpdate("e1", 10)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected reply despite dedup failure")
	}
}

func TestBotManager_SendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("platform unavailable")}
	m := NewBotManager(sender, nil, "", zerolog.Nop())

	if err := m.HandleUpdates(context.Background(), []domain.BotUpdate{messageUpdate("e1", 10)}); err == nil {
		t.Fatalf("expected send error")
	}
}
