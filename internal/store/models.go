package store

import "time"

type Sender string

const (
	SenderUser   Sender = "user"
	SenderAgent  Sender = "agent"
	SenderSystem Sender = "system"
)

func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderAgent, SenderSystem:
		return true
	}
	return false
}

// Message is one chat turn half. Rows are append-only.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User      string    `gorm:"column:username;size:255;not null;index:idx_messages_user_created,priority:1" json:"user"`
	Sender    Sender    `gorm:"size:16;not null" json:"sender"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_messages_user_created,priority:2" json:"created_at"`
}

type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Phrase      string    `gorm:"type:text;not null" json:"phrase"`
	Translation *string   `gorm:"type:text" json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

type Reminder struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	RemindAt    *time.Time `json:"remind_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Page bounds a list query. Zero values mean no bound.
type Page struct {
	Limit  int `schema:"limit"`
	Offset int `schema:"offset"`
}
