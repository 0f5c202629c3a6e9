package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Weesdome/Boardhub/internal/boardservice"
)

//go:embed reorder.schema.json
var reorderSchemaJSON string

var reorderSchema = jsonschema.MustCompileString("reorder.schema.json", reorderSchemaJSON)

// decodeReorder checks the body against the reorder schema before binding it.
func decodeReorder(w http.ResponseWriter, r *http.Request) (boardservice.ReorderInput, bool) {
	var in boardservice.ReorderInput
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return in, false
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return in, false
	}
	if err := reorderSchema.Validate(doc); err != nil {
		msg := err.Error()
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) && len(verr.Causes) > 0 {
			msg = verr.Causes[0].Error()
		}
		writeJSON(w, http.StatusBadRequest, errorBody(msg))
		return in, false
	}
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return in, false
	}
	return in, true
}

// Reorder handles POST /api/boards/{boardID}/reorder.
//
//	@Summary		Replace a board's arrangement of lists and cards
//	@Description	The submission must contain exactly the board's lists and cards. Order values are recomputed from positions.
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string						true	"Board ID"
//	@Param			body	body		boardservice.ReorderInput	true	"Arrangement"
//	@Success		200		{object}	models.Board
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/boards/{boardID}/reorder [post]
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeReorder(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Reorder(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"), in)
	if err != nil {
		writeError(w, r, "reorder", err)
		return
	}
	writeBoard(w, r, http.StatusOK, b)
}

// Move handles POST /api/boards/{boardID}/move.
//
//	@Summary		Apply or preview a drag gesture
//	@Tags			boards
//	@Accept			json
//	@Produce		json
//	@Param			boardID	path		string		true	"Board ID"
//	@Param			body	body		MoveRequest	true	"Gesture"
//	@Success		200		{object}	MoveResponse
//	@Failure		404		{object}	errResponse
//	@Router			/boards/{boardID}/move [post]
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Move(r.Context(), mustSession(r).UserID, chi.URLParam(r, "boardID"), req)
	if err != nil {
		writeError(w, r, "move", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
