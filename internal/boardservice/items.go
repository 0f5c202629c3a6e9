package boardservice

import (
	"context"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/ordering"
)

// ItemInput carries the editable fields of a list or a card. Lists ignore
// Description.
type ItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate implements validation.Validatable.
func (in ItemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Description, validation.Length(0, 5000)),
	)
}

func (in *ItemInput) prepare() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in.Validate()
}

// loadList fetches the board and the index of one of its lists.
func (s *Service) loadList(ctx context.Context, ownerID, boardID, listID string) (*models.Board, int, error) {
	b, err := s.boards.FindBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, 0, err
	}
	i := b.FindList(listID)
	if i < 0 {
		return nil, 0, fmt.Errorf("list %s: %w", listID, apperr.ErrNotFound)
	}
	return b, i, nil
}

// loadCard fetches the board, the list index and the card index.
func (s *Service) loadCard(ctx context.Context, ownerID, boardID, listID, cardID string) (*models.Board, int, int, error) {
	b, li, err := s.loadList(ctx, ownerID, boardID, listID)
	if err != nil {
		return nil, 0, 0, err
	}
	ci := b.Lists[li].FindCard(cardID)
	if ci < 0 {
		return nil, 0, 0, fmt.Errorf("card %s: %w", cardID, apperr.ErrNotFound)
	}
	return b, li, ci, nil
}

// CreateList appends a list to the board.
func (s *Service) CreateList(ctx context.Context, ownerID, boardID string, in ItemInput) (*models.List, error) {
	if err := in.prepare(); err != nil {
		return nil, err
	}
	b, err := s.boards.FindBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	l := models.List{
		ID:        s.newID(),
		Title:     in.Title,
		Order:     ordering.NextListOrder(b.Lists),
		Cards:     []models.Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Lists = append(b.Lists, l)
	if _, err := s.persist(ctx, ownerID, b); err != nil {
		return nil, err
	}
	return &l, nil
}

// RenameList changes a list's title.
func (s *Service) RenameList(ctx context.Context, ownerID, boardID, listID string, in ItemInput) (*models.List, error) {
	if err := in.prepare(); err != nil {
		return nil, err
	}
	b, i, err := s.loadList(ctx, ownerID, boardID, listID)
	if err != nil {
		return nil, err
	}
	l := &b.Lists[i]
	l.Title = in.Title
	l.UpdatedAt = s.now()
	if _, err := s.persist(ctx, ownerID, b); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteList removes a list and its cards, then renumbers the remaining lists.
func (s *Service) DeleteList(ctx context.Context, ownerID, boardID, listID string) (*models.Board, error) {
	b, i, err := s.loadList(ctx, ownerID, boardID, listID)
	if err != nil {
		return nil, err
	}
	b.Lists = slices.Delete(b.Lists, i, i+1)
	ordering.ReindexLists(b.Lists)
	return s.persist(ctx, ownerID, b)
}

// CreateCard appends a card to a list.
func (s *Service) CreateCard(ctx context.Context, ownerID, boardID, listID string, in ItemInput) (*models.Card, error) {
	if err := in.prepare(); err != nil {
		return nil, err
	}
	b, i, err := s.loadList(ctx, ownerID, boardID, listID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	l := &b.Lists[i]
	c := models.Card{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Order:       ordering.NextCardOrder(l.Cards),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.Cards = append(l.Cards, c)
	if _, err := s.persist(ctx, ownerID, b); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCard changes a card's title and description.
func (s *Service) UpdateCard(ctx context.Context, ownerID, boardID, listID, cardID string, in ItemInput) (*models.Card, error) {
	if err := in.prepare(); err != nil {
		return nil, err
	}
	b, li, ci, err := s.loadCard(ctx, ownerID, boardID, listID, cardID)
	if err != nil {
		return nil, err
	}
	c := &b.Lists[li].Cards[ci]
	c.Title = in.Title
	c.Description = in.Description
	c.UpdatedAt = s.now()
	if _, err := s.persist(ctx, ownerID, b); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCard removes a card and renumbers the rest of its list.
func (s *Service) DeleteCard(ctx context.Context, ownerID, boardID, listID, cardID string) (*models.Board, error) {
	b, li, ci, err := s.loadCard(ctx, ownerID, boardID, listID, cardID)
	if err != nil {
		return nil, err
	}
	l := &b.Lists[li]
	l.Cards = slices.Delete(l.Cards, ci, ci+1)
	ordering.ReindexCards(l.Cards)
	return s.persist(ctx, ownerID, b)
}
