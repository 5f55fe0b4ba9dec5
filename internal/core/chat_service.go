package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/juniorlingo/english-agent/internal/store"
)

type ChatStore interface {
	CreateMessage(ctx context.Context, msg *store.Message) error
	ListMessagesByUser(ctx context.Context, user string, page store.Page) ([]store.Message, error)
}

// ChatService runs one conversation turn: it records the user's message,
// obtains a reply from the primary generator (or the fallback), and records
// the reply.
type ChatService struct {
	store    ChatStore
	primary  ReplyGenerator
	fallback FallbackGenerator
}

// NewChatService takes a nil primary when no provider is configured; every
// turn then uses the fallback reply.
func NewChatService(s ChatStore, primary ReplyGenerator) *ChatService {
	return &ChatService{
		store:   s,
		primary: primary,
	}
}

func (s *ChatService) HandleMessage(ctx context.Context, user, text string) (string, error) {
	// A turn that has begun runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	userMsg := store.Message{
		User:   user,
		Sender: store.SenderUser,
		Text:   text,
	}
	if err := s.store.CreateMessage(ctx, &userMsg); err != nil {
		return "", fmt.Errorf("failed to store user message: %w", err)
	}

	reply := s.reply(ctx, user, text)

	agentMsg := store.Message{
		User:   user,
		Sender: store.SenderAgent,
		Text:   reply,
	}
	if err := s.store.CreateMessage(ctx, &agentMsg); err != nil {
		return "", fmt.Errorf("failed to store agent message: %w", err)
	}

	return reply, nil
}

func (s *ChatService) reply(ctx context.Context, user, text string) string {
	if s.primary == nil {
		return s.fallback.Generate(ctx, text).Text
	}

	res := s.primary.Generate(ctx, text)
	switch {
	case !res.OK():
		slog.Warn("primary reply generator failed, using fallback", "user", user, "error", res.Err)
	case res.Text == "":
		slog.Warn("primary reply generator returned empty text, using fallback", "user", user)
	default:
		return res.Text
	}
	return s.fallback.Generate(ctx, text).Text
}

// History returns the user's messages oldest first.
func (s *ChatService) History(ctx context.Context, user string, page store.Page) ([]store.Message, error) {
	return s.store.ListMessagesByUser(ctx, user, page)
}
