package model

import "time"

const (
	UpdateTypeUpdate    = "update"
	UpdateTypeMilestone = "milestone"
	UpdateTypeQuestion  = "question"
	UpdateTypeDelivery  = "delivery"
)

// ProjectUpdate is a timestamped note on a project. Only rows with
// IsClientVisible set are returned on the portal read path; the admin surface
// sees all of them.
type ProjectUpdate struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64 `gorm:"not null;index:ix_project_updates_project_id" json:"project_id"`

	Title           string `gorm:"type:varchar(255);not null" json:"title"`
	Message         string `gorm:"type:text;not null" json:"message"`
	Type            string `gorm:"type:varchar(50);not null;default:'update';check:type IN ('update','milestone','question','delivery')" json:"type"`
	IsClientVisible bool   `gorm:"not null;default:true" json:"is_client_visible"`
	AttachmentURL   string `gorm:"type:text" json:"attachment_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// ProjectUpdate <-> ClientProject
	Project *ClientProject `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectUpdate) TableName() string { return "project_updates" }
