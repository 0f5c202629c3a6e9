package boardservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/ordering"
)

// MoveInput is a drag gesture: the dragged item and the item it was
// dropped on. Commit false only previews the result.
type MoveInput struct {
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
	Commit   bool   `json:"commit"`
}

// MoveResult is the classified gesture and the board after applying it.
type MoveResult struct {
	Move      ordering.Move `json:"move"`
	Board     *models.Board `json:"board"`
	Committed bool          `json:"committed"`
}

// Move classifies and applies a gesture. Preview and commit go through the
// same classifier; only a committed, non-empty move is written.
func (s *Service) Move(ctx context.Context, ownerID, boardID string, in MoveInput) (*MoveResult, error) {
	b, err := s.boards.FindBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}
	m, lists := ordering.Resolve(b.Lists, in.ActiveID, in.OverID)
	if m.Kind == ordering.NoOp {
		return &MoveResult{Move: m, Board: b}, nil
	}

	preview := *b
	preview.Lists = lists
	if !in.Commit {
		return &MoveResult{Move: m, Board: &preview}, nil
	}

	saved, err := s.persist(ctx, ownerID, &preview)
	if err != nil {
		return nil, err
	}
	slog.Debug("move committed",
		slog.String("board_id", boardID),
		slog.String("kind", m.Kind.String()),
		slog.String("active_id", in.ActiveID),
		slog.String("over_id", in.OverID),
	)
	return &MoveResult{Move: m, Board: saved, Committed: true}, nil
}

// ReorderInput is a whole-board structure submission. Only ids and their
// arrangement are read; titles, descriptions and order values are ignored.
type ReorderInput struct {
	Lists []ReorderList `json:"lists"`
}

// ReorderList is one list in a ReorderInput.
type ReorderList struct {
	ID    string        `json:"id"`
	Cards []ReorderCard `json:"cards"`
}

// ReorderCard is one card in a ReorderList.
type ReorderCard struct {
	ID string `json:"id"`
}

// Reorder replaces the board's arrangement with the submitted one. The
// submission must name exactly the board's lists and cards, each once.
func (s *Service) Reorder(ctx context.Context, ownerID, boardID string, in ReorderInput) (*models.Board, error) {
	b, err := s.boards.FindBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}
	lists, err := rearrange(b.Lists, in)
	if err != nil {
		return nil, err
	}
	ordering.Normalize(lists)
	b.Lists = lists
	return s.persist(ctx, ownerID, b)
}

// rearrange rebuilds stored lists in the submitted arrangement.
func rearrange(stored []models.List, in ReorderInput) ([]models.List, error) {
	listByID := make(map[string]*models.List, len(stored))
	cardByID := make(map[string]*models.Card)
	for i := range stored {
		l := &stored[i]
		listByID[l.ID] = l
		for j := range l.Cards {
			cardByID[l.Cards[j].ID] = &l.Cards[j]
		}
	}

	seenLists := make(map[string]struct{}, len(listByID))
	seenCards := make(map[string]struct{}, len(cardByID))
	out := make([]models.List, 0, len(in.Lists))
	for _, rl := range in.Lists {
		src, ok := listByID[rl.ID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown list %q", apperr.ErrInvalidInput, rl.ID)
		}
		if _, dup := seenLists[rl.ID]; dup {
			return nil, fmt.Errorf("%w: list %q submitted twice", apperr.ErrInvalidInput, rl.ID)
		}
		seenLists[rl.ID] = struct{}{}

		l := *src
		l.Cards = make([]models.Card, 0, len(rl.Cards))
		for _, rc := range rl.Cards {
			c, ok := cardByID[rc.ID]
			if !ok {
				return nil, fmt.Errorf("%w: unknown card %q", apperr.ErrInvalidInput, rc.ID)
			}
			if _, dup := seenCards[rc.ID]; dup {
				return nil, fmt.Errorf("%w: card %q submitted twice", apperr.ErrInvalidInput, rc.ID)
			}
			seenCards[rc.ID] = struct{}{}
			l.Cards = append(l.Cards, *c)
		}
		out = append(out, l)
	}

	if len(seenLists) != len(listByID) {
		return nil, fmt.Errorf("%w: %d of %d lists missing", apperr.ErrInvalidInput, len(listByID)-len(seenLists), len(listByID))
	}
	if len(seenCards) != len(cardByID) {
		return nil, fmt.Errorf("%w: %d of %d cards missing", apperr.ErrInvalidInput, len(cardByID)-len(seenCards), len(cardByID))
	}
	return out, nil
}
