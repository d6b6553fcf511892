package model

// Follow is a directed subscription: user follows author.
// idx_follow_pair = (user_id, author_id) keeps the pair unique.
type Follow struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index:idx_follow_user;index:idx_follow_pair,unique;not null"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID uint `gorm:"index:idx_follow_pair,unique;not null"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string { return "follows" }
