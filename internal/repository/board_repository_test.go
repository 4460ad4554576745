package repository_test

import (
	"context"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBoardRepository_CreateWithOwner(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{
		ID:         uuid.New(),
		Title:      "Project",
		OwnerID:    uuid.New(),
		Background: model.DefaultBoardBackground,
	}

	// Board insert and the owner's membership row share one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(board.ID.String()))
	mock.ExpectQuery(`INSERT INTO "board_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Act
	err := boardRepo.CreateWithOwner(context.Background(), board)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_DeleteCascade(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()

	// Board first, then its lists, cards and membership rows, all in one
	// transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards"`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "lists"`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "cards"`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`DELETE FROM "board_members"`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := boardRepo.DeleteCascade(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_DeleteCascade_RollsBackOnError(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards"`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "lists"`).
		WithArgs(boardID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := boardRepo.DeleteCascade(context.Background(), boardID)

	// Assert
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE id = .* LIMIT 1`).
		WithArgs(boardID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	board, err := boardRepo.GetByID(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}
