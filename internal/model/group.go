package model

// Group is a topical category posts may belong to. Groups have no edit or
// delete flow once created.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(200);uniqueIndex;not null"`
	Slug        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (Group) TableName() string { return "groups" }
