package repository_test

import (
	"context"
	"testing"

	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestListRepository_GetByBoardID_OrderedByPosition(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	listRepo := repository.NewListRepository(gormDB)

	boardID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "lists" WHERE board_id = .* ORDER BY position LIMIT`).
		WithArgs(boardID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "board_id", "position"}).
			AddRow(uuid.New().String(), "To Do", boardID.String(), 0).
			AddRow(uuid.New().String(), "In Progress", boardID.String(), 1).
			AddRow(uuid.New().String(), "Done", boardID.String(), 2))

	// Act
	lists, err := listRepo.GetByBoardID(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, lists, 3)
	assert.Equal(t, "To Do", lists[0].Title)
	assert.Equal(t, "In Progress", lists[1].Title)
	assert.Equal(t, "Done", lists[2].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_DeleteCascade(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	listRepo := repository.NewListRepository(gormDB)

	listID := uuid.New()

	// The list and its cards go in one transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "lists"`).
		WithArgs(listID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "cards"`).
		WithArgs(listID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	// Act
	err := listRepo.DeleteCascade(context.Background(), listID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepository_DeleteCascade_RollsBackOnError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	listRepo := repository.NewListRepository(gormDB)

	listID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "lists"`).
		WithArgs(listID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "cards"`).
		WithArgs(listID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := listRepo.DeleteCascade(context.Background(), listID)

	// Assert
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
