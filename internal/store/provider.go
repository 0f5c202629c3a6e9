package store

import (
	"context"

	"github.com/Weesdome/Boardhub/internal/models"
)

// BoardStore is the owner-scoped board document store. Every method filters
// by ownerID; a board owned by someone else is reported as not found.
type BoardStore interface {
	ListBoards(ctx context.Context, ownerID string) ([]models.BoardSummary, error)
	SearchBoards(ctx context.Context, ownerID, query string, limit int) ([]models.BoardSummary, error)
	FindBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error)
	InsertBoard(ctx context.Context, b *models.Board) error
	UpdateBoardMeta(ctx context.Context, ownerID, boardID, title, description string) (*models.Board, error)
	ReplaceLists(ctx context.Context, ownerID, boardID string, lists []models.List) (*models.Board, error)
	DeleteBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Verify *DB satisfies both stores at compile time.
var (
	_ BoardStore = (*DB)(nil)
	_ UserStore  = (*DB)(nil)
)
