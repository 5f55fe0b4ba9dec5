package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/juniorlingo/english-agent/internal/store"
)

var ErrInvalidInput = errors.New("invalid input")

type LessonStore interface {
	CreateLesson(ctx context.Context, lesson *store.Lesson) error
	ListLessons(ctx context.Context, page store.Page) ([]store.Lesson, error)
	GetLesson(ctx context.Context, id uint) (*store.Lesson, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// AudioStore persists a named audio file and returns the URL clients fetch it from.
type AudioStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type SpokenLesson struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url"`
}

type LessonService struct {
	store    LessonStore
	speech   SpeechSynthesizer
	audio    AudioStore
	language string
}

func NewLessonService(s LessonStore, speech SpeechSynthesizer, audio AudioStore, language string) *LessonService {
	return &LessonService{
		store:    s,
		speech:   speech,
		audio:    audio,
		language: language,
	}
}

func (s *LessonService) Create(ctx context.Context, phrase string, translation *string) (*store.Lesson, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, fmt.Errorf("%w: phrase must not be empty", ErrInvalidInput)
	}

	lesson := store.Lesson{Phrase: phrase, Translation: translation}
	if err := s.store.CreateLesson(ctx, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *LessonService) List(ctx context.Context, page store.Page) ([]store.Lesson, error) {
	return s.store.ListLessons(ctx, page)
}

// Speak synthesizes the lesson phrase and stores it as lesson_<id>.mp3,
// replacing any earlier file for the same lesson. An unknown id returns
// store.ErrNotFound before any synthesis happens.
func (s *LessonService) Speak(ctx context.Context, id uint) (*SpokenLesson, error) {
	lesson, err := s.store.GetLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	audio, err := s.speech.Synthesize(ctx, lesson.Phrase, s.language)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize lesson %d: %w", id, err)
	}

	url, err := s.audio.Save(ctx, AudioFileName(id), audio)
	if err != nil {
		return nil, fmt.Errorf("failed to save audio for lesson %d: %w", id, err)
	}

	slog.Info("lesson audio generated", "lesson_id", id, "bytes", len(audio), "url", url)
	return &SpokenLesson{Text: lesson.Phrase, AudioURL: url}, nil
}

func AudioFileName(id uint) string {
	return fmt.Sprintf("lesson_%d.mp3", id)
}
