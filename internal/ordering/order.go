// Package ordering keeps list and card positions consistent.
//
// Array position is the source of truth for display rank. The Order field
// stored on lists and cards is derived from it: NextOrder assigns the rank of
// an appended item, the Reindex functions rewrite every Order to its index,
// and Verify asserts that the two agree before anything is persisted.
package ordering

import (
	"errors"
	"fmt"

	"github.com/Weesdome/Boardhub/internal/models"
)

// ErrBrokenInvariant is returned by Verify when stored orders disagree with positions.
var ErrBrokenInvariant = errors.New("ordering invariant violated")

func listRank(l *models.List) *int { return &l.Order }
func cardRank(c *models.Card) *int { return &c.Order }

// nextOrder returns 0 for an empty sequence, otherwise max(order)+1.
// Gaps and duplicates are left as they are.
func nextOrder[T any](items []T, rank func(*T) *int) int {
	if len(items) == 0 {
		return 0
	}
	highest := *rank(&items[0])
	for i := 1; i < len(items); i++ {
		if r := *rank(&items[i]); r > highest {
			highest = r
		}
	}
	return highest + 1
}

func reindex[T any](items []T, rank func(*T) *int) {
	for i := range items {
		*rank(&items[i]) = i
	}
}

// NextListOrder returns the order for a list appended to lists.
func NextListOrder(lists []models.List) int {
	return nextOrder(lists, listRank)
}

// NextCardOrder returns the order for a card appended to cards.
func NextCardOrder(cards []models.Card) int {
	return nextOrder(cards, cardRank)
}

// ReindexLists sets every list's Order to its index. Cards are not touched.
func ReindexLists(lists []models.List) {
	reindex(lists, listRank)
}

// ReindexCards sets every card's Order to its index.
func ReindexCards(cards []models.Card) {
	reindex(cards, cardRank)
}

// Normalize reindexes the lists and the cards of every list in place.
func Normalize(lists []models.List) {
	ReindexLists(lists)
	for i := range lists {
		ReindexCards(lists[i].Cards)
	}
}

// Verify checks that every list and card Order equals its position and that
// no identity appears twice on the board.
func Verify(lists []models.List) error {
	seen := make(map[string]struct{})
	claim := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%w: %s without id", ErrBrokenInvariant, kind)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrBrokenInvariant, id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for i := range lists {
		l := &lists[i]
		if err := claim("list", l.ID); err != nil {
			return err
		}
		if l.Order != i {
			return fmt.Errorf("%w: list %q has order %d at position %d", ErrBrokenInvariant, l.ID, l.Order, i)
		}
		for j := range l.Cards {
			c := &l.Cards[j]
			if err := claim("card", c.ID); err != nil {
				return err
			}
			if c.Order != j {
				return fmt.Errorf("%w: card %q in list %q has order %d at position %d",
					ErrBrokenInvariant, c.ID, l.ID, c.Order, j)
			}
		}
	}
	return nil
}
