package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// boardListLimit caps membership-scoped board queries.
const boardListLimit = 1000

type MemberRepository struct {
	db *gorm.DB
}

type MemberRepositoryInterface interface {
	Add(ctx context.Context, boardID, userID uuid.UUID) error
	Remove(ctx context.Context, boardID, userID uuid.UUID) error
	IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error)
	MemberIDsByBoard(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
	BoardsForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
}

var _ MemberRepositoryInterface = (*MemberRepository)(nil)

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Add makes the user a member of the board. Adding an existing member is a
// no-op rather than an error.
func (r *MemberRepository) Add(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BoardMember
		err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member := model.BoardMember{
			ID:      uuid.New(),
			BoardID: boardID,
			UserID:  userID,
		}
		return tx.Create(&member).Error
	})
}

func (r *MemberRepository) Remove(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ? AND user_id = ?", boardID, userID).Delete(&model.BoardMember{}).Error
}

func (r *MemberRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var member model.BoardMember
	err := r.db.WithContext(ctx).Where("board_id = ? AND user_id = ?", boardID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MemberRepository) MemberIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Where("board_id = ?", boardID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// MemberIDsByBoard fetches the member sets of several boards in one query,
// keyed by board id.
func (r *MemberRepository) MemberIDsByBoard(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	byBoard := make(map[uuid.UUID][]uuid.UUID, len(boardIDs))
	if len(boardIDs) == 0 {
		return byBoard, nil
	}

	var rows []model.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id IN ?", boardIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		byBoard[row.BoardID] = append(byBoard[row.BoardID], row.UserID)
	}
	return byBoard, nil
}

// BoardsForUser returns every board the user is a member of, in storage
// order.
func (r *MemberRepository) BoardsForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Limit(boardListLimit).
		Find(&boards).Error
	return boards, err
}
