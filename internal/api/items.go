package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateList handles POST /api/boards/{boardID}/lists.
//
//	@Summary		Append a list to a board
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string		true	"Board ID"
//	@Param			body	body		ItemRequest	true	"List"
//	@Success		201		{object}	models.List
//	@Router			/boards/{boardID}/lists [post]
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.svc.CreateList(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"), req)
	if err != nil {
		writeError(w, r, "create list", err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// RenameList handles PUT /api/boards/{boardID}/lists/{listID}.
//
//	@Summary		Rename a list
//	@Tags			lists
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string		true	"Board ID"
//	@Param			listID	path		string		true	"List ID"
//	@Param			body	body		ItemRequest	true	"List"
//	@Success		200		{object}	models.List
//	@Router			/boards/{boardID}/lists/{listID} [put]
func (h *Handler) RenameList(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := h.svc.RenameList(r.Context(), mustSession(r).UserID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "listID"), req)
	if err != nil {
		writeError(w, r, "rename list", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// DeleteList handles DELETE /api/boards/{boardID}/lists/{listID}.
//
//	@Summary		Delete a list and its cards
//	@Tags			lists
//	@Produce		json
//	@Param			boardID	path		string	true	"Board ID"
//	@Param			listID	path		string	true	"List ID"
//	@Success		200		{object}	models.Board
//	@Router			/boards/{boardID}/lists/{listID} [delete]
func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.DeleteList(r.Context(), mustSession(r).UserID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "listID"))
	if err != nil {
		writeError(w, r, "delete list", err)
		return
	}
	writeBoard(w, r, http.StatusOK, b)
}

// CreateCard handles POST /api/boards/{boardID}/lists/{listID}/cards.
//
//	@Summary		Append a card to a list
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string		true	"Board ID"
//	@Param			listID	path		string		true	"List ID"
//	@Param			body	body		ItemRequest	true	"Card"
//	@Success		201		{object}	models.Card
//	@Router			/boards/{boardID}/lists/{listID}/cards [post]
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.CreateCard(r.Context(), mustSession(r).UserID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "listID"), req)
	if err != nil {
		writeError(w, r, "create card", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCard handles PUT /api/boards/{boardID}/lists/{listID}/cards/{cardID}.
//
//	@Summary		Update a card's title and description
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string		true	"Board ID"
//	@Param			listID	path		string		true	"List ID"
//	@Param			cardID	path		string		true	"Card ID"
//	@Param			body	body		ItemRequest	true	"Card"
//	@Success		200		{object}	models.Card
//	@Router			/boards/{boardID}/lists/{listID}/cards/{cardID} [put]
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateCard(r.Context(), mustSession(r).UserID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "listID"), chi.URLParam(r, "cardID"), req)
	if err != nil {
		writeError(w, r, "update card", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCard handles DELETE /api/boards/{boardID}/lists/{listID}/cards/{cardID}.
//
//	@Summary		Delete a card
//	@Tags			cards
//	@Produce		json
//	@Param			boardID	path		string	true	"Board ID"
//	@Param			listID	path		string	true	"List ID"
//	@Param			cardID	path		string	true	"Card ID"
//	@Success		200		{object}	models.Board
//	@Router			/boards/{boardID}/lists/{listID}/cards/{cardID} [delete]
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.DeleteCard(r.Context(), mustSession(r).UserID,
		chi.URLParam(r, "boardID"), chi.URLParam(r, "listID"), chi.URLParam(r, "cardID"))
	if err != nil {
		writeError(w, r, "delete card", err)
		return
	}
	writeBoard(w, r, http.StatusOK, b)
}
