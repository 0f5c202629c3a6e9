package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/checksum"
	"github.com/Weesdome/Boardhub/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc          *boardservice.Service
	sessions     *auth.SessionCodec
	secureCookie bool
}

// NewHandler creates a new Handler.
func NewHandler(svc *boardservice.Service, sessions *auth.SessionCodec, secureCookie bool) *Handler {
	return &Handler{svc: svc, sessions: sessions, secureCookie: secureCookie}
}

// writeBoard sends a board with its ETag, or 304 when the client copy is current.
func writeBoard(w http.ResponseWriter, r *http.Request, status int, b *models.Board) {
	sum, err := checksum.Of(b)
	if err != nil {
		writeError(w, r, "board etag", err)
		return
	}
	etag := checksum.ETag(sum)
	w.Header().Set("ETag", etag)
	if r.Method == http.MethodGet && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, status, b)
}

// ListBoards handles GET /api/boards.
//
//	@Summary		List the caller's boards, newest first
//	@Tags			boards
//	@Produce		json
//	@Success		200	{object}	BoardListResponse
//	@Router			/boards [get]
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListBoards(r.Context(), mustSession(r).UserID)
	if err != nil {
		writeError(w, r, "list boards", err)
		return
	}
	writeJSON(w, http.StatusOK, BoardListResponse{Boards: boards})
}

// CreateBoard handles POST /api/boards.
//
//	@Summary		Create a board
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BoardRequest	true	"Board"
//	@Success		201		{object}	models.Board
//	@Failure		400		{object}	errResponse
//	@Router			/boards [post]
func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.svc.CreateBoard(r.Context(), mustSession(r).UserID, req)
	if err != nil {
		writeError(w, r, "create board", err)
		return
	}
	writeBoard(w, r, http.StatusCreated, b)
}

// GetBoard handles GET /api/boards/{boardID}.
//
//	@Summary		Get a board with its lists and cards
//	@Tags			boards
//	@Produce		json
//	@Param			boardID			path		string	true	"Board ID"
//	@Param			If-None-Match	header		string	false	"ETag from a previous read"
//	@Success		200				{object}	models.Board
//	@Success		304
//	@Failure		404				{object}	errResponse
//	@Router			/boards/{boardID} [get]
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBoard(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeError(w, r, "get board", err)
		return
	}
	writeBoard(w, r, http.StatusOK, b)
}

// UpdateBoard handles PUT /api/boards/{boardID}.
//
//	@Summary		Update a board's title and description
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string			true	"Board ID"
//	@Param			body	body		BoardRequest	true	"Board"
//	@Success		200		{object}	models.Board
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/boards/{boardID} [put]
func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req BoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.svc.UpdateBoard(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"), req)
	if err != nil {
		writeError(w, r, "update board", err)
		return
	}
	writeBoard(w, r, http.StatusOK, b)
}

// DeleteBoard handles DELETE /api/boards/{boardID}.
//
//	@Summary		Delete a board
//	@Tags			boards
//	@Param			boardID	path	string	true	"Board ID"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Router			/boards/{boardID} [delete]
func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBoard(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID")); err != nil {
		writeError(w, r, "delete board", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportBoard handles GET /api/boards/{boardID}/export.
//
//	@Summary		Download a board as JSON
//	@Tags			boards
//	@Produce		json
//	@Param			boardID	path		string	true	"Board ID"
//	@Success		200		{object}	models.Board
//	@Failure		404		{object}	errResponse
//	@Router			/boards/{boardID}/export [get]
func (h *Handler) ExportBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.ExportBoard(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeError(w, r, "export board", err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="board-%s.json"`, b.ID))
	writeJSON(w, http.StatusOK, b)
}

// RestoreBoard handles POST /api/boards/{boardID}/restore.
//
//	@Summary		Re-create a deleted board from its latest snapshot
//	@Tags			boards
//	@Produce		json
//	@Param			boardID	path		string	true	"Board ID"
//	@Success		201		{object}	models.Board
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/boards/{boardID}/restore [post]
func (h *Handler) RestoreBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.RestoreBoard(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"))
	if err != nil {
		writeError(w, r, "restore board", err)
		return
	}
	writeBoard(w, r, http.StatusCreated, b)
}

// Search handles GET /api/search.
//
//	@Summary		Search the caller's boards by title and description
//	@Tags			boards
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	BoardListResponse
//	@Failure		400		{object}	errResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	boards, err := h.svc.SearchBoards(r.Context(), mustSession(r).UserID, q.Get("q"), limit)
	if err != nil {
		writeError(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, BoardListResponse{Boards: boards})
}
