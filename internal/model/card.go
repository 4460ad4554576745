package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Card priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Card belongs to exactly one list and, redundantly, to one board. The
// board_id must match the board of list_id; the service validates this on
// create and on every move.
type Card struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	ListID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"list_id"`
	BoardID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"board_id"`
	Position     int            `gorm:"not null" json:"position"`
	AssignedTo   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"assigned_to"`
	Labels       datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"labels"`
	DueDate      *time.Time     `json:"due_date"`
	Priority     string         `gorm:"not null;default:'medium'" json:"priority"`
	CustomFields datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"custom_fields"`
	MirroredTo   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"mirrored_to"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	List  List  `gorm:"foreignKey:ListID" json:"-"`
	Board Board `gorm:"foreignKey:BoardID" json:"-"`
}
