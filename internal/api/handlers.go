package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/juniorlingo/english-agent/internal/core"
	"github.com/juniorlingo/english-agent/internal/store"
)

// HistoryTimeFormat is the layout of created_at in /history responses.
const HistoryTimeFormat = "2006-01-02 15:04:05"

type APIHandler struct {
	chatService     *core.ChatService
	lessonService   *core.LessonService
	reminderService *core.ReminderService
}

func NewAPIHandler(cs *core.ChatService, ls *core.LessonService, rs *core.ReminderService) *APIHandler {
	return &APIHandler{
		chatService:     cs,
		lessonService:   ls,
		reminderService: rs,
	}
}

func parsePage(r *http.Request) (store.Page, error) {
	page, err := ParseRequestQueryParams[store.Page](r)
	if err != nil {
		return page, err
	}
	if page.Limit < 0 || page.Offset < 0 {
		return page, CodedErrorf(http.StatusBadRequest, "limit and offset must not be negative")
	}
	return page, nil
}

type SendMessageRequest struct {
	User *string `json:"user"`
	Text *string `json:"text"`
}

type SendMessageResponse struct {
	Response string `json:"response"`
}

func (h *APIHandler) SendMessage(r *http.Request) (any, error) {
	req, err := ParseRequest[SendMessageRequest](r)
	if err != nil {
		return nil, err
	}
	if req.User == nil || req.Text == nil {
		return nil, CodedErrorf(http.StatusUnprocessableEntity, "fields 'user' and 'text' are required")
	}

	response, err := h.chatService.HandleMessage(r.Context(), *req.User, *req.Text)
	if err != nil {
		slog.Error("error handling message", "user", *req.User, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to process message")
	}

	return SendMessageResponse{Response: response}, nil
}

type HistoryEntry struct {
	Sender    store.Sender `json:"sender"`
	Text      string       `json:"text"`
	CreatedAt string       `json:"created_at"`
}

func (h *APIHandler) History(r *http.Request) (any, error) {
	user := chi.URLParam(r, "user")
	if unescaped, err := url.PathUnescape(user); err == nil {
		user = unescaped
	}

	page, err := parsePage(r)
	if err != nil {
		return nil, err
	}

	messages, err := h.chatService.History(r.Context(), user, page)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to load history: %v", err)
	}

	history := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, HistoryEntry{
			Sender:    m.Sender,
			Text:      m.Text,
			CreatedAt: m.CreatedAt.UTC().Format(HistoryTimeFormat),
		})
	}
	return history, nil
}

type CreateLessonRequest struct {
	Phrase      *string `json:"phrase"`
	Translation *string `json:"translation"`
}

func (h *APIHandler) CreateLesson(r *http.Request) (any, error) {
	req, err := ParseRequest[CreateLessonRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Phrase == nil {
		return nil, CodedErrorf(http.StatusUnprocessableEntity, "field 'phrase' is required")
	}

	lesson, err := h.lessonService.Create(r.Context(), *req.Phrase, req.Translation)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			return nil, CodedError(http.StatusUnprocessableEntity, err)
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to create lesson: %v", err)
	}
	return lesson, nil
}

func (h *APIHandler) ListLessons(r *http.Request) (any, error) {
	page, err := parsePage(r)
	if err != nil {
		return nil, err
	}

	lessons, err := h.lessonService.List(r.Context(), page)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to list lessons: %v", err)
	}
	return lessons, nil
}

func (h *APIHandler) SpeakLesson(r *http.Request) (any, error) {
	id, err := URLParamID(r, "lessonID")
	if err != nil {
		return nil, err
	}

	spoken, err := h.lessonService.Speak(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "Lesson not found")
		}
		slog.Error("error generating lesson audio", "lesson_id", id, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "TTS generation failed")
	}
	return spoken, nil
}

type CreateReminderRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	RemindAt    *FlexibleTime `json:"remind_at"`
}

func (h *APIHandler) CreateReminder(r *http.Request) (any, error) {
	req, err := ParseRequest[CreateReminderRequest](r)
	if err != nil {
		return nil, err
	}
	if req.Title == nil {
		return nil, CodedErrorf(http.StatusUnprocessableEntity, "field 'title' is required")
	}

	var remindAt *time.Time
	if req.RemindAt != nil {
		remindAt = &req.RemindAt.Time
	}

	reminder, err := h.reminderService.Create(r.Context(), *req.Title, req.Description, remindAt)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			return nil, CodedError(http.StatusUnprocessableEntity, err)
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to create reminder: %v", err)
	}
	return reminder, nil
}

func (h *APIHandler) ListReminders(r *http.Request) (any, error) {
	page, err := parsePage(r)
	if err != nil {
		return nil, err
	}

	reminders, err := h.reminderService.List(r.Context(), page)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to list reminders: %v", err)
	}
	return reminders, nil
}

func (h *APIHandler) GetReminder(r *http.Request) (any, error) {
	id, err := URLParamID(r, "reminderID")
	if err != nil {
		return nil, err
	}

	reminder, err := h.reminderService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "Reminder not found")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to get reminder: %v", err)
	}
	return reminder, nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *APIHandler) DeleteReminder(r *http.Request) (any, error) {
	id, err := URLParamID(r, "reminderID")
	if err != nil {
		return nil, err
	}

	if err := h.reminderService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, CodedErrorf(http.StatusNotFound, "Reminder not found")
		}
		return nil, CodedErrorf(http.StatusInternalServerError, "failed to delete reminder: %v", err)
	}
	return MessageResponse{Message: "Reminder deleted successfully"}, nil
}
