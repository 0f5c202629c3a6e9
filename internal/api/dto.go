package api

import (
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/models"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest = boardservice.RegisterInput

// LoginRequest is the request body for signing in.
type LoginRequest = boardservice.LoginInput

// BoardRequest is the request body for creating or updating a board.
type BoardRequest = boardservice.BoardInput

// ItemRequest is the request body for creating or updating a list or card.
type ItemRequest = boardservice.ItemInput

// MoveRequest is the request body for a drag gesture.
type MoveRequest = boardservice.MoveInput

// MoveResponse is the classified gesture and resulting board.
type MoveResponse = boardservice.MoveResult

// SessionResponse is the signed-in identity.
type SessionResponse struct {
	User models.Session `json:"user" validate:"required"`
}

// CSRFResponse carries a freshly issued CSRF token.
type CSRFResponse struct {
	Token string `json:"csrfToken" example:"9f86d081884c7d65..." validate:"required"`
}

// BoardListResponse wraps board summaries.
type BoardListResponse struct {
	Boards []models.BoardSummary `json:"boards" validate:"required"`
}

// ImportResponse is returned after a Markdown outline was imported.
type ImportResponse struct {
	Board  *models.Board `json:"board" validate:"required"`
	Source string        `json:"source,omitempty" example:"roadmap.md"`
	Size   int64         `json:"size" example:"1234"`
}
