package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PortfolioStatusActive   = "active"
	PortfolioStatusFeatured = "featured"
	PortfolioStatusArchived = "archived"
)

// PortfolioItem is a published piece of client work on the marketing site.
type PortfolioItem struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title        string                      `gorm:"type:varchar(255);not null" json:"title"`
	Slug         string                      `gorm:"type:varchar(255);not null;uniqueIndex:uq_portfolio_items_slug" json:"slug"`
	Description  string                      `gorm:"type:text" json:"description"`
	Category     string                      `gorm:"type:varchar(100)" json:"category"`
	ImageURL     string                      `gorm:"type:text" json:"image_url"`
	ProjectURL   string                      `gorm:"type:text" json:"project_url"`
	Technologies datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"technologies"`

	Featured bool   `gorm:"not null;default:false" json:"featured"`
	Status   string `gorm:"type:varchar(50);not null;default:'active';check:status IN ('active','featured','archived')" json:"status"`
	Order    int    `gorm:"column:\"order\";not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }
