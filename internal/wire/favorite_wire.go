package wire

import (
	"reelrate/internal/adaptor"
	"reelrate/internal/data/repository"
	"reelrate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFavorite(
	r chi.Router,
	favoriteHandler *adaptor.FavoriteHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// All favorite routes need a resolved viewer
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// PUT /api/{kind}/{id}/favorite - bookmark (idempotent)
		r.Put("/api/{kind}/{id}/favorite", favoriteHandler.Add)

		// DELETE /api/{kind}/{id}/favorite - remove bookmark
		r.Delete("/api/{kind}/{id}/favorite", favoriteHandler.Remove)

		// GET /api/user/favorites - viewer's bookmarks
		r.Get("/api/user/favorites", favoriteHandler.ListMine)
	})
}
