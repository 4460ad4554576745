package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// cardListLimit caps card queries. Not real pagination, just a bound on
// response size.
const cardListLimit = 10000

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error)
	Update(ctx context.Context, id uuid.UUID, values map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetInboxForUser(ctx context.Context, userID uuid.UUID) ([]model.Card, error)
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Limit(cardListLimit).
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).Where("id = ?", id).Updates(values).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Card{}).Error
}

// GetInboxForUser returns the cards of every board the user is a member of,
// most recent first. The membership join keeps the result free of
// duplicates.
func (r *CardRepository) GetInboxForUser(ctx context.Context, userID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Joins("JOIN board_members ON board_members.board_id = cards.board_id").
		Where("board_members.user_id = ?", userID).
		Order("cards.created_at DESC").
		Limit(cardListLimit).
		Find(&cards).Error
	return cards, err
}
