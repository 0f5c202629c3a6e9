package ordering

import (
	"fmt"

	"github.com/Weesdome/Boardhub/internal/models"
)

// Kind identifies what a drag gesture does to a board.
type Kind int

const (
	// NoOp leaves the board unchanged.
	NoOp Kind = iota
	// ListReorder moves a list to another list's position.
	ListReorder
	// CardToList appends a card to a different list's container.
	CardToList
	// CardToCard inserts a card before a card of a different list.
	CardToCard
	// CardReorder moves a card within its own list.
	CardReorder
)

func (k Kind) String() string {
	switch k {
	case ListReorder:
		return "list_reorder"
	case CardToList:
		return "card_to_list"
	case CardToCard:
		return "card_to_card"
	case CardReorder:
		return "card_reorder"
	default:
		return "noop"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for c := NoOp; c <= CardReorder; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("ordering: unknown move kind %q", b)
}

// Move is a classified gesture. For ListReorder, From and To are list indices.
// For card moves, FromList/From locate the card and ToList/To give the
// destination list and the index the card will occupy there.
type Move struct {
	Kind     Kind   `json:"kind"`
	ActiveID string `json:"activeId"`
	OverID   string `json:"overId"`
	FromList int    `json:"fromList"`
	From     int    `json:"from"`
	ToList   int    `json:"toList"`
	To       int    `json:"to"`
}

type location struct {
	list int
	card int // -1 when the id names a list
}

func locate(lists []models.List, id string) (location, bool) {
	for i := range lists {
		if lists[i].ID == id {
			return location{list: i, card: -1}, true
		}
		if j := lists[i].FindCard(id); j >= 0 {
			return location{list: i, card: j}, true
		}
	}
	return location{}, false
}

// Classify decides which operation dropping activeID onto overID performs.
// Anything it cannot interpret is a NoOp.
func Classify(lists []models.List, activeID, overID string) Move {
	m := Move{Kind: NoOp, ActiveID: activeID, OverID: overID}
	if activeID == "" || overID == "" || activeID == overID {
		return m
	}
	active, ok := locate(lists, activeID)
	if !ok {
		return m
	}
	over, ok := locate(lists, overID)
	if !ok {
		return m
	}

	switch {
	case active.card < 0 && over.card < 0:
		m.Kind = ListReorder
		m.From, m.To = active.list, over.list
	case active.card >= 0 && over.card < 0:
		if active.list == over.list {
			return m
		}
		m.Kind = CardToList
		m.FromList, m.From = active.list, active.card
		m.ToList, m.To = over.list, len(lists[over.list].Cards)
	case active.card >= 0 && over.card >= 0:
		m.FromList, m.From = active.list, active.card
		m.ToList, m.To = over.list, over.card
		if active.list == over.list {
			m.Kind = CardReorder
		} else {
			m.Kind = CardToCard
		}
	}
	return m
}

// Apply returns a copy of lists with m carried out and every touched
// collection reindexed. The input is never modified.
func Apply(lists []models.List, m Move) []models.List {
	out := clone(lists)

	switch m.Kind {
	case ListReorder:
		out = arrayMove(out, m.From, m.To)
		ReindexLists(out)
	case CardReorder:
		l := &out[m.FromList]
		l.Cards = arrayMove(l.Cards, m.From, m.To)
		ReindexCards(l.Cards)
	case CardToList, CardToCard:
		src, dst := &out[m.FromList], &out[m.ToList]
		card := src.Cards[m.From]
		src.Cards = remove(src.Cards, m.From)
		dst.Cards = insert(dst.Cards, m.To, card)
		ReindexCards(src.Cards)
		ReindexCards(dst.Cards)
	}
	return out
}

// Resolve classifies and applies a gesture in one step. Preview and commit
// paths both go through here.
func Resolve(lists []models.List, activeID, overID string) (Move, []models.List) {
	m := Classify(lists, activeID, overID)
	return m, Apply(lists, m)
}

func clone(lists []models.List) []models.List {
	out := make([]models.List, len(lists))
	for i, l := range lists {
		out[i] = l
		out[i].Cards = append([]models.Card(nil), l.Cards...)
		if out[i].Cards == nil {
			out[i].Cards = []models.Card{}
		}
	}
	return out
}

// arrayMove removes the item at from and reinserts it at to.
func arrayMove[T any](items []T, from, to int) []T {
	if from == to || from < 0 || from >= len(items) {
		return items
	}
	item := items[from]
	return insert(remove(items, from), to, item)
}

func remove[T any](items []T, i int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// insert places item at index i, clamped to the sequence bounds.
func insert[T any](items []T, i int, item T) []T {
	if i < 0 {
		i = 0
	}
	if i > len(items) {
		i = len(items)
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:i]...)
	out = append(out, item)
	return append(out, items[i:]...)
}
