package wire

import (
	"reelrate/internal/adaptor"
	"reelrate/internal/data/repository"
	"reelrate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, log))

		// GET /api/{kind}/{id}/reviews - review page with aggregate (public)
		r.Get("/api/{kind}/{id}/reviews", reviewHandler.ListSubjectReviews)

		// GET /api/{kind}/{id}/review-stats - rating statistics (public)
		r.Get("/api/{kind}/{id}/review-stats", reviewHandler.Stats)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/{kind}/{id}/reviews - submit review (one per viewer per subject)
		r.Post("/api/{kind}/{id}/reviews", reviewHandler.Submit)

		// PUT /api/{kind}/{id}/reviews - overwrite own review
		r.Put("/api/{kind}/{id}/reviews", reviewHandler.Update)

		// DELETE /api/{kind}/{id}/reviews - remove own review and its votes
		r.Delete("/api/{kind}/{id}/reviews", reviewHandler.Remove)

		// GET /api/user/reviews - viewer's own reviews
		r.Get("/api/user/reviews", reviewHandler.ListUserReviews)
	})
}
