package model

import (
	"time"

	"github.com/google/uuid"
)

type List struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Board Board `gorm:"foreignKey:BoardID" json:"-"`
}
