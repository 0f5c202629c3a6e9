package api

import (
	"log/slog"
	"net/http"

	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/models"
)

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, status int, s *models.Session) {
	if err := h.sessions.Write(w, *s); err != nil {
		writeError(w, r, "write session", err)
		return
	}
	writeJSON(w, status, SessionResponse{User: *s})
}

// Register handles POST /api/auth/register.
//
//	@Summary		Create an account and sign in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RegisterRequest	true	"Account"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "register", err)
		return
	}
	slog.Info("user registered", slog.String("user_id", s.UserID))
	h.startSession(w, r, http.StatusCreated, s)
}

// Login handles POST /api/auth/login.
//
//	@Summary		Sign in with email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	SessionResponse
//	@Failure		401		{object}	errResponse
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "login", err)
		return
	}
	h.startSession(w, r, http.StatusOK, s)
}

// Logout handles POST /api/auth/logout.
//
//	@Summary		Clear the session cookie
//	@Tags			auth
//	@Success		200
//	@Router			/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me.
//
//	@Summary		Current session
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	errResponse
//	@Router			/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionResponse{User: *mustSession(r)})
}

// CSRF handles GET /api/auth/csrf.
//
//	@Summary		Issue a CSRF token
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	CSRFResponse
//	@Router			/auth/csrf [get]
func (h *Handler) CSRF(w http.ResponseWriter, r *http.Request) {
	token, err := auth.IssueCSRF(w, h.secureCookie)
	if err != nil {
		writeError(w, r, "issue csrf", err)
		return
	}
	writeJSON(w, http.StatusOK, CSRFResponse{Token: token})
}
