package model

import "time"

// Post is a single authored entry. PubDate is set at creation and never
// updated. When the group is deleted the post survives with group_id NULL;
// when the author is deleted the post goes with them.
type Post struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"index;not null"`
	AuthorID uint      `gorm:"index:idx_post_author;not null"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE"`
	GroupID  *uint     `gorm:"index:idx_post_group"`
	Group    *Group    `gorm:"constraint:OnDelete:SET NULL"`
	// Image holds the stored object path under the posts/ media prefix.
	Image string `gorm:"type:varchar(255)"`
}

func (Post) TableName() string { return "posts" }
