package wire

import (
	"net/http"

	"reelrate/internal/adaptor"
	"reelrate/internal/data/repository"
	"reelrate/internal/usecase"
	"reelrate/pkg/middleware"
	"reelrate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers, and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Feature routes
	wireAuth(r, handler.Auth, repo, logger)
	wireSubject(r, handler.Subject, repo, logger)
	wireReview(r, handler.Review, repo, logger)
	wireVote(r, handler.Vote, repo, logger)
	wireFavorite(r, handler.Favorite, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
