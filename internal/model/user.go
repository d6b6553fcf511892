package model

import "time"

// User is an authenticated account. Deleting a user removes their posts,
// comments and follow relations in both directions.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(254);uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
