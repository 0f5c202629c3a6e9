// Package models defines the domain types for Boardhub.
package models

import "time"

// Board is the top-level container owned by a single user.
// Lists are embedded so a board is read and written as one document.
type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"userId"`
	Lists       []List    `json:"lists"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// List is an ordered column within a board.
type List struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Card is a leaf work item within a list.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BoardSummary is the lightweight representation returned by board listings.
type BoardSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FindList returns the index of the list with the given ID, or -1.
func (b *Board) FindList(id string) int {
	for i := range b.Lists {
		if b.Lists[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCard returns the index of the card with the given ID, or -1.
func (l *List) FindCard(id string) int {
	for i := range l.Cards {
		if l.Cards[i].ID == id {
			return i
		}
	}
	return -1
}
