package model

import "time"

// Comment is a short reply attached to a post. Comments are removed together
// with their post or their author; no edit flow exists.
type Comment struct {
	ID       uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"index:idx_comment_author;not null"`
	Author   User `gorm:"constraint:OnDelete:CASCADE"`
	PostID   *uint
	Post     *Post     `gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:varchar(500);not null"`
	Created  time.Time `gorm:"index;not null"`
}

func (Comment) TableName() string { return "comments" }
