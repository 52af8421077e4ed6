package model

import "time"

type Testimonial struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Position  string `gorm:"type:varchar(255);not null" json:"position"`
	Company   string `gorm:"type:varchar(255);not null" json:"company"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Rating    int    `gorm:"not null;default:5" json:"rating"`
	AvatarURL string `gorm:"type:text" json:"avatar_url"`
	Featured  bool   `gorm:"not null;default:false" json:"featured"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }
