package service

import (
	"context"
	"encoding/json"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BoardService enforces membership and ownership on every board-scoped
// operation and owns the cascading delete semantics. Handlers never touch
// the board/list/card repositories directly.
type BoardService struct {
	boards  repository.BoardRepositoryInterface
	members repository.MemberRepositoryInterface
	lists   repository.ListRepositoryInterface
	cards   repository.CardRepositoryInterface
}

func NewBoardService(
	boards repository.BoardRepositoryInterface,
	members repository.MemberRepositoryInterface,
	lists repository.ListRepositoryInterface,
	cards repository.CardRepositoryInterface,
) *BoardService {
	return &BoardService{
		boards:  boards,
		members: members,
		lists:   lists,
		cards:   cards,
	}
}

// AuthorizeBoardAccess returns the board only if it exists and the user is
// a member. Everything else is ErrNotFound.
func (s *BoardService) AuthorizeBoardAccess(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}

	isMember, err := s.members.IsMember(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotFound
	}

	return board, nil
}

// AuthorizeBoardOwnership is the stricter check used for board deletion and
// member administration: membership is not enough.
func (s *BoardService) AuthorizeBoardOwnership(ctx context.Context, userID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.OwnerID != userID {
		return nil, ErrNotFound
	}
	return board, nil
}

type BoardCreate struct {
	Title       string
	Description string
	Background  string
}

// CreateBoard makes the caller the owner and the sole initial member,
// regardless of anything the request may have carried.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID uuid.UUID, data BoardCreate) (*model.Board, error) {
	background := data.Background
	if background == "" {
		background = model.DefaultBoardBackground
	}

	board := &model.Board{
		ID:          uuid.New(),
		Title:       data.Title,
		Description: data.Description,
		OwnerID:     ownerID,
		Background:  background,
	}

	if err := s.boards.CreateWithOwner(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard requires ownership and removes the board together with its
// lists, cards and membership rows.
func (s *BoardService) DeleteBoard(ctx context.Context, userID, boardID uuid.UUID) error {
	if _, err := s.AuthorizeBoardOwnership(ctx, userID, boardID); err != nil {
		return err
	}
	return s.boards.DeleteCascade(ctx, boardID)
}

func (s *BoardService) BoardsForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return s.members.BoardsForUser(ctx, userID)
}

// MembersOf returns the member ids of a board without an access check.
// Callers must have authorized the board already.
func (s *BoardService) MembersOf(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	return s.members.MemberIDs(ctx, boardID)
}

// MembersByBoard resolves the member sets of several boards at once, without
// an access check. Callers must have authorized every board already.
func (s *BoardService) MembersByBoard(ctx context.Context, boardIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	return s.members.MemberIDsByBoard(ctx, boardIDs)
}

func (s *BoardService) BoardMembers(ctx context.Context, userID, boardID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.AuthorizeBoardAccess(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.members.MemberIDs(ctx, boardID)
}

// AddMember adds a user to the board's member set. Owner only.
func (s *BoardService) AddMember(ctx context.Context, callerID, boardID, userID uuid.UUID) error {
	if _, err := s.AuthorizeBoardOwnership(ctx, callerID, boardID); err != nil {
		return err
	}
	return s.members.Add(ctx, boardID, userID)
}

// RemoveMember removes a user from the board's member set. Owner only; the
// owner is always a member and cannot be removed.
func (s *BoardService) RemoveMember(ctx context.Context, callerID, boardID, userID uuid.UUID) error {
	board, err := s.AuthorizeBoardOwnership(ctx, callerID, boardID)
	if err != nil {
		return err
	}
	if userID == board.OwnerID {
		return ErrCannotRemoveOwner
	}
	return s.members.Remove(ctx, boardID, userID)
}

type ListCreate struct {
	Title    string
	BoardID  uuid.UUID
	Position int
}

func (s *BoardService) CreateList(ctx context.Context, userID uuid.UUID, data ListCreate) (*model.List, error) {
	if _, err := s.AuthorizeBoardAccess(ctx, userID, data.BoardID); err != nil {
		return nil, err
	}

	list := &model.List{
		ID:       uuid.New(),
		Title:    data.Title,
		BoardID:  data.BoardID,
		Position: data.Position,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *BoardService) ListsForBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.List, error) {
	if _, err := s.AuthorizeBoardAccess(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.lists.GetByBoardID(ctx, boardID)
}

// DeleteList requires membership on the list's board and cascades to the
// list's cards.
func (s *BoardService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrNotFound
	}
	if _, err := s.AuthorizeBoardAccess(ctx, userID, list.BoardID); err != nil {
		return err
	}
	return s.lists.DeleteCascade(ctx, listID)
}

type CardCreate struct {
	Title        string
	Description  string
	ListID       uuid.UUID
	BoardID      uuid.UUID
	Position     int
	AssignedTo   []string
	Labels       []string
	DueDate      *time.Time
	Priority     string
	CustomFields map[string]interface{}
}

func (s *BoardService) CreateCard(ctx context.Context, userID uuid.UUID, data CardCreate) (*model.Card, error) {
	if _, err := s.AuthorizeBoardAccess(ctx, userID, data.BoardID); err != nil {
		return nil, err
	}

	// The redundant board_id must agree with the list it points at.
	list, err := s.lists.GetByID(ctx, data.ListID)
	if err != nil {
		return nil, err
	}
	if list == nil || list.BoardID != data.BoardID {
		return nil, ErrNotFound
	}

	priority := data.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	card := &model.Card{
		ID:           uuid.New(),
		Title:        data.Title,
		Description:  data.Description,
		ListID:       data.ListID,
		BoardID:      data.BoardID,
		Position:     data.Position,
		AssignedTo:   toJSONArray(data.AssignedTo),
		Labels:       toJSONArray(data.Labels),
		DueDate:      data.DueDate,
		Priority:     priority,
		CustomFields: toJSONObject(data.CustomFields),
		MirroredTo:   toJSONArray(nil),
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *BoardService) CardsForBoard(ctx context.Context, userID, boardID uuid.UUID) ([]model.Card, error) {
	if _, err := s.AuthorizeBoardAccess(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.cards.GetByBoardID(ctx, boardID)
}

// CardPatch carries the fields of a partial card update. Nil fields are left
// untouched.
type CardPatch struct {
	Title        *string
	Description  *string
	ListID       *uuid.UUID
	Position     *int
	AssignedTo   []string
	Labels       []string
	DueDate      *time.Time
	Priority     *string
	CustomFields map[string]interface{}
}

// UpdateCard requires membership on the card's board, applies the non-nil
// patch fields and refreshes updated_at on any non-empty patch. Moving the
// card to another list is only allowed within the same board.
func (s *BoardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, patch CardPatch) (*model.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}
	if _, err := s.AuthorizeBoardAccess(ctx, userID, card.BoardID); err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if patch.Title != nil {
		values["title"] = *patch.Title
	}
	if patch.Description != nil {
		values["description"] = *patch.Description
	}
	if patch.ListID != nil {
		list, err := s.lists.GetByID(ctx, *patch.ListID)
		if err != nil {
			return nil, err
		}
		if list == nil || list.BoardID != card.BoardID {
			return nil, ErrNotFound
		}
		values["list_id"] = *patch.ListID
	}
	if patch.Position != nil {
		values["position"] = *patch.Position
	}
	if patch.AssignedTo != nil {
		values["assigned_to"] = toJSONArray(patch.AssignedTo)
	}
	if patch.Labels != nil {
		values["labels"] = toJSONArray(patch.Labels)
	}
	if patch.DueDate != nil {
		values["due_date"] = *patch.DueDate
	}
	if patch.Priority != nil {
		values["priority"] = *patch.Priority
	}
	if patch.CustomFields != nil {
		values["custom_fields"] = toJSONObject(patch.CustomFields)
	}

	if len(values) > 0 {
		values["updated_at"] = time.Now().UTC()
		if err := s.cards.Update(ctx, cardID, values); err != nil {
			return nil, err
		}
	}

	return s.cards.GetByID(ctx, cardID)
}

// DeleteCard requires membership on the card's board.
func (s *BoardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card == nil {
		return ErrNotFound
	}
	if _, err := s.AuthorizeBoardAccess(ctx, userID, card.BoardID); err != nil {
		return err
	}
	return s.cards.Delete(ctx, cardID)
}

// Inbox returns the cards of every board the user belongs to, most recent
// first.
func (s *BoardService) Inbox(ctx context.Context, userID uuid.UUID) ([]model.Card, error) {
	return s.cards.GetInboxForUser(ctx, userID)
}

func toJSONArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

func toJSONObject(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		values = map[string]interface{}{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}
