package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"unique;not null"`
	Email        string `json:"email" gorm:"unique;not null"`
	PasswordHash string `json:"password_hash" gorm:"not null"`
	Bio          string `json:"bio"`
	FriendCode   string `json:"friend_code" gorm:"uniqueIndex"`

	Habits       []Habit       `gorm:"foreignKey:UserID"`
	Goals        []Goal        `gorm:"foreignKey:UserID"`
	Achievements []Achievement `gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.FriendCode == "" {
		u.FriendCode = uuid.NewString()
	}
	return nil
}

// Friendship хранит одну сторону дружеской связи.
// Связь симметричная: на каждую пару пишутся две записи (A->B и B->A).
// Без soft delete: после удаления пара должна освобождать уникальный
// индекс для повторного добавления.
type Friendship struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"index:idx_friendship_pair,unique"`
	FriendID  uint `gorm:"index:idx_friendship_pair,unique"`
	CreatedAt time.Time
}

type Achievement struct {
	gorm.Model
	UserID      uint   `gorm:"index"`
	Code        string // first_completion, week_streak, goal_completed
	Title       string
	Description string
	EarnedAt    time.Time
}
