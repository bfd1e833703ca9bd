package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/adapter/rest/middleware"
)

// NewRouter wires the HTTP surface. Reads on properties are public; every
// mutating route and everything under /users sits behind the authenticator.
func NewRouter(listings *ListingHandler, users *UserHandler, auth func(http.Handler) http.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Tracing())

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", listings.HandleListListings)
		r.Get("/search", listings.HandleSearchListings)
		r.Get("/{id}", listings.HandleGetListing)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", listings.HandleCreateListing)
			r.Post("/upload", listings.HandleUploadImages)
			r.Patch("/{id}", listings.HandleUpdateListing)
			r.Delete("/{id}", listings.HandleDeleteListing)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", users.HandleRegister)
		r.Post("/login", users.HandleLogin)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(auth)
		r.Get("/profile", users.HandleGetProfile)
		r.Patch("/profile", users.HandleUpdateProfile)
		r.Get("/favorites", users.HandleListFavorites)
		r.Post("/favorites/{id}", users.HandleAddFavorite)
		r.Delete("/favorites/{id}", users.HandleRemoveFavorite)
	})

	return r
}
