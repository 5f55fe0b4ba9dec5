package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juniorlingo/english-agent/internal/store"
)

type ReminderStore interface {
	CreateReminder(ctx context.Context, reminder *store.Reminder) error
	ListReminders(ctx context.Context, page store.Page) ([]store.Reminder, error)
	GetReminder(ctx context.Context, id uint) (*store.Reminder, error)
	DeleteReminder(ctx context.Context, id uint) error
}

// ReminderService manages stored reminder records. These are independent of
// the daily practice job run by the reminder package.
type ReminderService struct {
	store ReminderStore
}

func NewReminderService(s ReminderStore) *ReminderService {
	return &ReminderService{store: s}
}

func (s *ReminderService) Create(ctx context.Context, title string, description *string, remindAt *time.Time) (*store.Reminder, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}

	if remindAt != nil {
		utc := remindAt.UTC()
		remindAt = &utc
	}

	reminder := store.Reminder{
		Title:       title,
		Description: description,
		RemindAt:    remindAt,
	}
	if err := s.store.CreateReminder(ctx, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) List(ctx context.Context, page store.Page) ([]store.Reminder, error) {
	return s.store.ListReminders(ctx, page)
}

func (s *ReminderService) Get(ctx context.Context, id uint) (*store.Reminder, error) {
	return s.store.GetReminder(ctx, id)
}

func (s *ReminderService) Delete(ctx context.Context, id uint) error {
	return s.store.DeleteReminder(ctx, id)
}
