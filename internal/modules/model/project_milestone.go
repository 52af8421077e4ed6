package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in-progress"
	MilestoneStatusCompleted  = "completed"
)

// ProjectMilestone is an ordered sub-deliverable of a ClientProject. Order
// defines display sequence; uniqueness within a project is not enforced, so
// reads sort by (order, id) for a stable sequence.
type ProjectMilestone struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64 `gorm:"not null;index:ix_project_milestones_project_id" json:"project_id"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"type:varchar(50);not null;default:'pending';check:status IN ('pending','in-progress','completed')" json:"status"`
	Order       int    `gorm:"column:\"order\";not null;default:0" json:"order"`

	DueDate       *datatypes.Date `json:"due_date,omitempty"`
	CompletedDate *datatypes.Date `json:"completed_date,omitempty"`

	Revision int64 `gorm:"not null;default:1" json:"revision"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// ProjectMilestone <-> ClientProject
	Project *ClientProject `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectMilestone) TableName() string { return "project_milestones" }
