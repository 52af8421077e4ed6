package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentEventIntentCreated = "intent_created"
	PaymentEventConfirmed     = "confirmed"
)

// PaymentEvent records every gateway event the billing consumer applied.
// Reference is the gateway's idempotency handle: applying the same reference
// twice is a no-op.
type PaymentEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64  `gorm:"not null;index:ix_payment_events_project_id" json:"project_id"`
	Reference string `gorm:"type:varchar(255);not null;uniqueIndex:uq_payment_events_reference" json:"reference"`

	Kind    string            `gorm:"type:varchar(50);not null;check:kind IN ('intent_created','confirmed')" json:"kind"`
	Amount  int64             `gorm:"not null" json:"amount"`
	Payload datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"payload"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// PaymentEvent <-> ClientProject
	Project *ClientProject `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (PaymentEvent) TableName() string { return "payment_events" }
