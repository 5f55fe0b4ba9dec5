package store

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Schema snapshots used by migrations. These must not change once released;
// add a new migration instead.

type reminderV0 struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"not null"`
	Description *string `gorm:"type:text"`
	RemindAt    *time.Time
	CreatedAt   time.Time
}

func (reminderV0) TableName() string { return "reminders" }

type messageV0 struct {
	ID        uint   `gorm:"primaryKey"`
	User      string `gorm:"column:username;size:255;not null;index"`
	Sender    string `gorm:"size:16;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (messageV0) TableName() string { return "messages" }

type lessonV0 struct {
	ID          uint    `gorm:"primaryKey"`
	Phrase      string  `gorm:"type:text;not null"`
	Translation *string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (lessonV0) TableName() string { return "lessons" }

func migration0(db *gorm.DB) error {
	if err := db.AutoMigrate(&reminderV0{}, &messageV0{}, &lessonV0{}); err != nil {
		return fmt.Errorf("error creating initial tables: %w", err)
	}
	return nil
}

func rollback0(db *gorm.DB) error {
	return db.Migrator().DropTable(&reminderV0{}, &messageV0{}, &lessonV0{})
}

// History is read per user in creation order.
func migration1(db *gorm.DB) error {
	if err := db.Migrator().CreateIndex(&Message{}, "idx_messages_user_created"); err != nil {
		return fmt.Errorf("error creating history index: %w", err)
	}
	return nil
}

func rollback1(db *gorm.DB) error {
	return db.Migrator().DropIndex(&Message{}, "idx_messages_user_created")
}

func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:       "0",
			Migrate:  migration0,
			Rollback: rollback0,
		},
		{
			ID:       "1",
			Migrate:  migration1,
			Rollback: rollback1,
		},
	})
}
