package model

import "time"

// ShowcaseProject is a marketing-site work sample (the public "projects"
// grid), unrelated to client engagements.
type ShowcaseProject struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	ImageURL    string `gorm:"type:text;not null" json:"image_url"`
	Category    string `gorm:"type:varchar(50);not null" json:"category"`
	Featured    bool   `gorm:"not null;default:false" json:"featured"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ShowcaseProject) TableName() string { return "showcase_projects" }
