// Package boardservice coordinates the board store, the ordering rules and
// the snapshot archive. Every structural change is reindexed and checked
// before it is written.
package boardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Weesdome/Boardhub/internal/archive"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/ordering"
	"github.com/Weesdome/Boardhub/internal/store"
)

// Service is the board and account domain service.
type Service struct {
	boards   store.BoardStore
	users    store.UserStore
	archiver *archive.Archiver
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithArchiver enables snapshots on delete and export.
func WithArchiver(a *archive.Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

// New creates a service over the given stores.
func New(boards store.BoardStore, users store.UserStore, opts ...Option) *Service {
	s := &Service{
		boards: boards,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// persist checks the ordering invariant and writes the board's lists.
// A violation means a bug in a mutation path; nothing is written.
func (s *Service) persist(ctx context.Context, ownerID string, b *models.Board) (*models.Board, error) {
	if err := ordering.Verify(b.Lists); err != nil {
		slog.Error("refusing to persist board",
			slog.String("board_id", b.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("boardservice: %w", err)
	}
	return s.boards.ReplaceLists(ctx, ownerID, b.ID, b.Lists)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
