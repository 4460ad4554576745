package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity is part of the schema but no handler writes or reads it yet.
type Activity struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	BoardID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"board_id"`
	CardID    *uuid.UUID     `gorm:"type:uuid" json:"card_id"`
	Action    string         `gorm:"not null" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"details"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
