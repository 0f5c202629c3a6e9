package boardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/ordering"
	"github.com/Weesdome/Boardhub/internal/parser"
)

// BoardInput carries the editable board fields.
type BoardInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate implements validation.Validatable.
func (in BoardInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Length(0, 2000)),
	)
}

func (in *BoardInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
}

// DefaultSearchLimit caps search results when the caller gives no limit.
const DefaultSearchLimit = 20

// ListBoards returns the owner's boards, newest first, without lists.
func (s *Service) ListBoards(ctx context.Context, ownerID string) ([]models.BoardSummary, error) {
	out, err := s.boards.ListBoards(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// SearchBoards matches query against titles and descriptions.
func (s *Service) SearchBoards(ctx context.Context, ownerID, query string, limit int) ([]models.BoardSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", apperr.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	out, err := s.boards.SearchBoards(ctx, ownerID, query, limit)
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// CreateBoard stores a new, empty board.
func (s *Service) CreateBoard(ctx context.Context, ownerID string, in BoardInput) (*models.Board, error) {
	in.trim()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	b := &models.Board{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		UserID:      ownerID,
		Lists:       []models.List{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.boards.InsertBoard(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBoard returns a board with its lists and cards.
func (s *Service) GetBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error) {
	return s.boards.FindBoard(ctx, ownerID, boardID)
}

// UpdateBoard changes the title and description.
func (s *Service) UpdateBoard(ctx context.Context, ownerID, boardID string, in BoardInput) (*models.Board, error) {
	in.trim()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.boards.UpdateBoardMeta(ctx, ownerID, boardID, in.Title, in.Description)
}

// DeleteBoard removes a board. With an archiver configured the board is
// snapshotted first and a failed snapshot aborts the delete.
func (s *Service) DeleteBoard(ctx context.Context, ownerID, boardID string) error {
	if s.archiver != nil {
		b, err := s.boards.FindBoard(ctx, ownerID, boardID)
		if err != nil {
			return err
		}
		if _, err := s.archiver.Snapshot(ctx, b, "delete"); err != nil {
			return fmt.Errorf("boardservice: archive before delete: %w", err)
		}
	}
	_, err := s.boards.DeleteBoard(ctx, ownerID, boardID)
	return err
}

// ExportBoard returns the full board for download. The export is also
// archived when an archiver is configured; archive failures are logged only.
func (s *Service) ExportBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error) {
	b, err := s.boards.FindBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}
	if s.archiver != nil {
		if _, err := s.archiver.Snapshot(ctx, b, "export"); err != nil {
			slog.Warn("export snapshot failed",
				slog.String("board_id", boardID),
				slog.String("error", err.Error()),
			)
		}
	}
	return b, nil
}

// RestoreBoard re-creates a deleted board from its latest snapshot.
func (s *Service) RestoreBoard(ctx context.Context, ownerID, boardID string) (*models.Board, error) {
	if s.archiver == nil {
		return nil, fmt.Errorf("archive disabled: %w", apperr.ErrNotFound)
	}
	snaps, err := s.archiver.Snapshots(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshot for board %s: %w", boardID, apperr.ErrNotFound)
	}
	b, err := s.archiver.Load(ctx, snaps[len(snaps)-1].Key)
	if err != nil {
		return nil, err
	}
	if b.UserID != ownerID || b.ID != boardID {
		return nil, fmt.Errorf("snapshot for board %s: %w", boardID, apperr.ErrNotFound)
	}
	b.Lists = nonNil(b.Lists)
	ordering.Normalize(b.Lists)
	if err := ordering.Verify(b.Lists); err != nil {
		return nil, fmt.Errorf("boardservice: restore: %w", err)
	}
	b.UpdatedAt = s.now()
	if err := s.boards.InsertBoard(ctx, b); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, fmt.Errorf("board %s still exists: %w", boardID, apperr.ErrConflict)
		}
		return nil, err
	}
	return b, nil
}

// ImportMarkdown parses a Markdown outline and stores it as a new board.
func (s *Service) ImportMarkdown(ctx context.Context, ownerID string, data []byte) (*models.Board, error) {
	o, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err.Error())
	}
	return s.Import(ctx, ownerID, o)
}

// Import stores an outline as a new board, assigning ids and order values.
func (s *Service) Import(ctx context.Context, ownerID string, o *parser.Outline) (*models.Board, error) {
	in := BoardInput{Title: o.Title, Description: o.Description}
	in.trim()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	b := &models.Board{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		UserID:      ownerID,
		Lists:       []models.List{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, lo := range o.Lists {
		if err := (&ItemInput{Title: lo.Title}).prepare(); err != nil {
			return nil, err
		}
		l := models.List{
			ID:        s.newID(),
			Title:     lo.Title,
			Order:     ordering.NextListOrder(b.Lists),
			Cards:     []models.Card{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, co := range lo.Cards {
			if err := (&ItemInput{Title: co.Title, Description: co.Description}).prepare(); err != nil {
				return nil, err
			}
			l.Cards = append(l.Cards, models.Card{
				ID:          s.newID(),
				Title:       co.Title,
				Description: co.Description,
				Order:       ordering.NextCardOrder(l.Cards),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		b.Lists = append(b.Lists, l)
	}
	if err := ordering.Verify(b.Lists); err != nil {
		return nil, fmt.Errorf("boardservice: import: %w", err)
	}
	if err := s.boards.InsertBoard(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
