package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	db *gorm.DB
}

// Open connects to the database named by databaseURL and brings the schema up
// to date. postgres:// and postgresql:// URLs use PostgreSQL; sqlite:// URLs
// and bare paths use SQLite.
func Open(databaseURL string) (*Store, error) {
	dialector, isSQLite, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if isSQLite {
		// SQLite allows a single writer; also keeps :memory: databases on one connection.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := GetMigrator(db).Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database ready", "dialect", db.Dialector.Name())
	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), false, nil
	case databaseURL == "sqlite://", databaseURL == "sqlite:///:memory:":
		return sqlite.Open("file::memory:"), true, nil
	case strings.HasPrefix(databaseURL, "sqlite:///"):
		return sqliteFile(strings.TrimPrefix(databaseURL, "sqlite:///"))
	case strings.Contains(databaseURL, "://"):
		scheme, _, _ := strings.Cut(databaseURL, "://")
		return nil, false, fmt.Errorf("unsupported database scheme %q", scheme)
	default:
		return sqliteFile(databaseURL)
	}
}

func sqliteFile(path string) (gorm.Dialector, bool, error) {
	if path == "" {
		return nil, false, errors.New("empty sqlite database path")
	}
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, false, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	return sqlite.Open(path), true, nil
}

func paginate(q *gorm.DB, page Page) *gorm.DB {
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	return q
}

// Message methods

func (s *Store) CreateMessage(ctx context.Context, msg *Message) error {
	if !msg.Sender.Valid() {
		return fmt.Errorf("invalid message sender %q", msg.Sender)
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessagesByUser returns a user's messages oldest first. The id breaks
// ties between rows written within the same clock tick.
func (s *Store) ListMessagesByUser(ctx context.Context, user string, page Page) ([]Message, error) {
	var messages []Message
	q := s.db.WithContext(ctx).
		Where("username = ?", user).
		Order("created_at ASC").
		Order("id ASC")
	if err := paginate(q, page).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return messages, nil
}

// Lesson methods

func (s *Store) CreateLesson(ctx context.Context, lesson *Lesson) error {
	if err := s.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to insert lesson: %w", err)
	}
	return nil
}

func (s *Store) ListLessons(ctx context.Context, page Page) ([]Lesson, error) {
	var lessons []Lesson
	q := s.db.WithContext(ctx).Order("id DESC")
	if err := paginate(q, page).Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	return lessons, nil
}

func (s *Store) GetLesson(ctx context.Context, id uint) (*Lesson, error) {
	var lesson Lesson
	if err := s.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lesson %d: %w", id, err)
	}
	return &lesson, nil
}

// Reminder methods

func (s *Store) CreateReminder(ctx context.Context, reminder *Reminder) error {
	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (s *Store) ListReminders(ctx context.Context, page Page) ([]Reminder, error) {
	var reminders []Reminder
	q := s.db.WithContext(ctx).Order("id DESC")
	if err := paginate(q, page).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	return reminders, nil
}

func (s *Store) GetReminder(ctx context.Context, id uint) (*Reminder, error) {
	var reminder Reminder
	if err := s.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reminder %d: %w", id, err)
	}
	return &reminder, nil
}

func (s *Store) DeleteReminder(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Reminder{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
