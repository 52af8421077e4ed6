package model

import (
	"time"

	"gorm.io/datatypes"
)

// ClientProject statuses. Transitions are free-form: any status may follow
// any other.
const (
	ProjectStatusPending    = "pending"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusReview     = "review"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on-hold"
)

const (
	ProjectPriorityLow    = "low"
	ProjectPriorityMedium = "medium"
	ProjectPriorityHigh   = "high"
	ProjectPriorityUrgent = "urgent"
)

// ClientProject is a sold engagement owned by exactly one Client. Money
// fields are minor currency units (cents). Revision is an optimistic version
// counter compared-and-swapped on every update.
type ClientProject struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID int64 `gorm:"not null;index:ix_client_projects_client_id" json:"client_id"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Status      string `gorm:"type:varchar(50);not null;default:'pending';check:status IN ('pending','in-progress','review','completed','on-hold')" json:"status"`
	Priority    string `gorm:"type:varchar(50);not null;default:'medium';check:priority IN ('low','medium','high','urgent')" json:"priority"`
	Package     string `gorm:"type:varchar(100)" json:"package"`

	TotalCost  int64 `gorm:"not null;default:0" json:"total_cost"`
	PaidAmount int64 `gorm:"not null;default:0" json:"paid_amount"`

	StartDate     *datatypes.Date `json:"start_date,omitempty"`
	DueDate       *datatypes.Date `json:"due_date,omitempty"`
	CompletedDate *datatypes.Date `json:"completed_date,omitempty"`

	Revision int64 `gorm:"not null;default:1" json:"revision"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Derived, never persisted. Populated by Derive before serialization.
	Progress int `gorm:"-" json:"progress"`

	// ClientProject <-> Client
	Client *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// ClientProject <-> ProjectMilestone
	Milestones []ProjectMilestone `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// ClientProject <-> ProjectUpdate
	Updates []ProjectUpdate `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ClientProject) TableName() string { return "client_projects" }

// Derive fills presentation-only fields.
func (p *ClientProject) Derive() {
	p.Progress = ProgressForStatus(p.Status)
}
