package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// BlogPost is standalone marketing content; it has no relation to clients or
// projects. Only published posts are served on the public path, ordered by
// PublishedAt.
type BlogPost struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title    string                      `gorm:"type:varchar(255);not null" json:"title"`
	Slug     string                      `gorm:"type:varchar(255);not null;uniqueIndex:uq_blog_posts_slug" json:"slug"`
	Excerpt  string                      `gorm:"type:text" json:"excerpt"`
	Content  string                      `gorm:"type:text;not null" json:"content"`
	Category string                      `gorm:"type:varchar(100)" json:"category"`
	Tags     datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"tags"`
	CoverURL string                      `gorm:"type:text" json:"cover_url"`

	Status      string     `gorm:"type:varchar(50);not null;default:'draft';check:status IN ('draft','published','archived')" json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }
