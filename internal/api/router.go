package api

import (
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/boardservice"
)

// Options configures the API router.
type Options struct {
	Sessions     *auth.SessionCodec
	CSRF         bool
	SecureCookie bool
	// LoginRate and LoginBurst throttle register and login per client IP.
	LoginRate  rate.Limit
	LoginBurst int
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *boardservice.Service, opts Options) chi.Router {
	h := NewHandler(svc, opts.Sessions, opts.SecureCookie)
	requireSession := SessionMiddleware(opts.Sessions)

	r := chi.NewRouter()
	r.Use(CSRFMiddleware(opts.CSRF))

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimit(opts.LoginRate, opts.LoginBurst))
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.Post("/logout", h.Logout)
		r.Get("/csrf", h.CSRF)
		r.With(requireSession).Get("/me", h.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/boards", h.ListBoards)
		r.Post("/boards", h.CreateBoard)
		r.Post("/boards/import", h.ImportBoard)

		r.Route("/boards/{boardID}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Put("/", h.UpdateBoard)
			r.Delete("/", h.DeleteBoard)
			r.Get("/export", h.ExportBoard)
			r.Post("/restore", h.RestoreBoard)
			r.Post("/reorder", h.Reorder)
			r.Post("/move", h.Move)

			r.Post("/lists", h.CreateList)
			r.Put("/lists/{listID}", h.RenameList)
			r.Delete("/lists/{listID}", h.DeleteList)

			r.Post("/lists/{listID}/cards", h.CreateCard)
			r.Put("/lists/{listID}/cards/{cardID}", h.UpdateCard)
			r.Delete("/lists/{listID}/cards/{cardID}", h.DeleteCard)
		})

		r.Get("/search", h.Search)
	})

	return r
}
