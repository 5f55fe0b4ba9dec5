package reminder

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	DailyPracticeJobID = "daily_practice"
	PracticePrompt     = "It's time to practice English!"
)

// MessageSender delivers a user message into the conversation. The chat
// service satisfies it in-process; HTTPSender goes through the public API.
type MessageSender interface {
	HandleMessage(ctx context.Context, user, text string) (string, error)
}

// Publisher posts the daily practice prompt on behalf of one user.
type Publisher struct {
	scheduler *Scheduler
	sender    MessageSender
	user      string
}

func NewPublisher(scheduler *Scheduler, sender MessageSender, user string) *Publisher {
	return &Publisher{
		scheduler: scheduler,
		sender:    sender,
		user:      user,
	}
}

// Start schedules the daily reminder. Calling it again moves the reminder to
// the new time; there is never more than one.
func (p *Publisher) Start(hour, minute int) error {
	if err := p.scheduler.ScheduleDaily(DailyPracticeJobID, hour, minute, p.Publish); err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}

	next, _ := p.scheduler.Next(DailyPracticeJobID)
	slog.Info("daily reminder scheduled", "user", p.user, "at", fmt.Sprintf("%02d:%02d", hour, minute), "next", next)
	return nil
}

// Publish sends the practice prompt once. Delivery errors are logged, never
// returned.
func (p *Publisher) Publish(ctx context.Context) {
	reply, err := p.sender.HandleMessage(ctx, p.user, PracticePrompt)
	if err != nil {
		slog.Error("failed to send daily reminder", "user", p.user, "error", err)
		return
	}
	slog.Info("daily reminder sent", "user", p.user, "reply_length", len(reply))
}
