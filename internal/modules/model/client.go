package model

import (
	"time"
)

// Client is a portal identity. AccessCode is the sole portal credential: an
// opaque bearer secret compared case-sensitively on login. It never expires;
// revocation is an admin edit of the row.
type Client struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex:uq_clients_email" json:"email"`
	Company     string `gorm:"type:varchar(255)" json:"company"`
	Phone       string `gorm:"type:varchar(50)" json:"phone"`
	AccessCode  string `gorm:"type:varchar(64);not null;uniqueIndex:uq_clients_access_code" json:"-"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Client <-> ClientProject
	Projects []ClientProject `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Client) TableName() string { return "clients" }
