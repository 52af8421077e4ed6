package model

import "time"

const (
	ContactStatusNew       = "new"
	ContactStatusContacted = "contacted"
	ContactStatusConverted = "converted"
	ContactStatusArchived  = "archived"
)

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Service string `gorm:"type:varchar(100)" json:"service"`
	Message string `gorm:"type:text;not null" json:"message"`
	Status  string `gorm:"type:varchar(50);not null;default:'new';check:status IN ('new','contacted','converted','archived')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
