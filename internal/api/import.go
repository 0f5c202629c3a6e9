package api

import (
	"io"
	"net/http"
	"strings"
)

const maxImportBytes = 5 << 20 // 5 MB

// ImportBoard handles POST /api/boards/import. The outline is read from the
// multipart field "file", or from the raw body for text/markdown requests.
//
//	@Summary		Create a board from a Markdown outline
//	@Tags			boards
//	@Accept			multipart/form-data
//	@Accept			text/markdown
//	@Produce		json
//	@Param			file	formData	file	false	"Markdown outline"
//	@Success		201		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Router			/boards/import [post]
func (h *Handler) ImportBoard(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	var (
		data   []byte
		source string
		err    error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
			return
		}
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
			return
		}
		defer file.Close()
		source = header.Filename
		data, err = io.ReadAll(file)
	} else {
		data, err = io.ReadAll(r.Body)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read outline"))
		return
	}

	b, err := h.svc.ImportMarkdown(r.Context(), mustSession(r).UserID, data)
	if err != nil {
		writeError(w, r, "import board", err)
		return
	}
	writeJSON(w, http.StatusCreated, ImportResponse{Board: b, Source: source, Size: int64(len(data))})
}
