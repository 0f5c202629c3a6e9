// Package api implements the Boardhub REST API using chi.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/models"
)

type ctxKey int

const sessionKey ctxKey = iota

func withSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the session stored by SessionMiddleware.
func SessionFrom(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*models.Session)
	return s, ok && s != nil
}

// SessionMiddleware rejects requests without a valid session cookie.
func SessionMiddleware(codec *auth.SessionCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := codec.Read(r)
			if err != nil {
				if !errors.Is(err, auth.ErrNoSession) {
					slog.Debug("session rejected", slog.String("error", err.Error()))
				}
				writeError(w, r, "session", apperr.ErrUnauthenticated)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), s)))
		})
	}
}

// CSRFMiddleware requires the double-submitted token on unsafe methods.
// If enabled is false, all requests pass through.
func CSRFMiddleware(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if err := auth.CheckCSRF(r); err != nil {
				writeJSON(w, http.StatusForbidden, errorBody(err.Error()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// mustSession is used by handlers mounted behind SessionMiddleware.
func mustSession(r *http.Request) *models.Session {
	s, ok := SessionFrom(r.Context())
	if !ok {
		panic("api: handler mounted without SessionMiddleware")
	}
	return s
}
