package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID        uint      `gorm:"primaryKey"`
	Status    string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Players   []RoomPlayer
	Rounds    []Round
	Events    []Event
}

type RoomPlayer struct {
	ID        uint       `gorm:"primaryKey"`
	RoomID    uint       `gorm:"index;not null;uniqueIndex:idx_room_players_room_user"`
	UserID    string     `gorm:"size:64;not null;uniqueIndex:idx_room_players_room_user"`
	Name      string     `gorm:"size:64;not null"`
	Score     int        `gorm:"not null;default:0"`
	JoinedAt  time.Time  `gorm:"not null"`
	LeftAt    *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

type Round struct {
	ID           uint      `gorm:"primaryKey"`
	RoomID       uint      `gorm:"index;not null;uniqueIndex:idx_rounds_room_number"`
	Number       int       `gorm:"not null;uniqueIndex:idx_rounds_room_number"`
	DrawerUserID string    `gorm:"size:64;not null"`
	WordID       uint      `gorm:"index"`
	Status       string    `gorm:"size:32;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Guesses      []Guess
}

type Guess struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null"`
	UserID    string    `gorm:"size:64;not null"`
	Text      string    `gorm:"size:280;not null"`
	Correct   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

type Word struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type User struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex"`
	Name      string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    uint           `gorm:"index;not null"`
	RoundID   *uint          `gorm:"index"`
	UserID    string         `gorm:"size:64"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
