package wire

import (
	"reelrate/internal/adaptor"
	"reelrate/internal/data/repository"
	"reelrate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubject(
	r chi.Router,
	subjectHandler *adaptor.SubjectHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public grid listing; viewer flags resolve when a token is sent
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, log))

		// GET /api/{kind} - subject grid with review stats
		r.Get("/api/{kind}", subjectHandler.ListByKind)
	})
}
