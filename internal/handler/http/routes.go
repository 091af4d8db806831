package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the storage service API.
//
//	POST /api/auth/register   create an account
//	POST /api/auth/params     public derivation parameters of an identifier
//	POST /api/auth/login      session token in the Authorization header
//	GET  /api/vault           encrypted vault with its KdfParams
//	PUT  /api/vault           replace the encrypted vault
//	GET  /api/version         server version, plain text
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/params", h.params)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/vault", h.fetchVault)
		r.Put("/api/vault", h.saveVault)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
