package wire

import (
	"reelrate/internal/adaptor"
	"reelrate/internal/data/repository"
	"reelrate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVote(
	r chi.Router,
	voteHandler *adaptor.VoteHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/reviews/{id}/voters - who voted, paginated
	r.Get("/api/reviews/{id}/voters", voteHandler.ListVoters)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST casts or flips; DELETE retracts
		r.Post("/api/reviews/{id}/upvote", voteHandler.Upvote)
		r.Post("/api/reviews/{id}/downvote", voteHandler.Downvote)
		r.Delete("/api/reviews/{id}/upvote", voteHandler.RetractUpvote)
		r.Delete("/api/reviews/{id}/downvote", voteHandler.RetractDownvote)
	})
}
