package model

import (
	"time"

	"github.com/google/uuid"
)

// BoardMember links a user to a board. The owner always has a row here,
// inserted in the same transaction that creates the board.
type BoardMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"board_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Board Board `gorm:"foreignKey:BoardID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
