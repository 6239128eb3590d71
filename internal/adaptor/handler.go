package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
	"reelrate/internal/usecase"
	"reelrate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Subject  *SubjectHandler
	Review   *ReviewHandler
	Vote     *VoteHandler
	Favorite *FavoriteHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Subject:  NewSubjectHandler(service.Subject, log),
		Review:   NewReviewHandler(service.Review, log),
		Vote:     NewVoteHandler(service.Vote, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
	}
}

// ==================== SHARED HELPERS ====================

// subjectFromURL resolves the {kind}/{id} pair every subject-scoped
// route carries.
func subjectFromURL(r *http.Request) (entity.Kind, int64, bool) {
	kind, err := entity.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", 0, false
	}

	id := utils.ParseInt64(chi.URLParam(r, "id"))
	if id <= 0 {
		return "", 0, false
	}

	return kind, id, true
}

// paginationFromQuery fills a PaginatedRequest from query parameters.
func paginationFromQuery(r *http.Request, defaultPerPage int) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:      utils.ParseInt(query.Get("page"), 1),
		PerPage:   utils.ParseInt(query.Get("per_page"), defaultPerPage),
		SortBy:    query.Get("sort_by"),
		Direction: query.Get("direction"),
	}
}

// viewerID returns the resolved viewer, 0 when anonymous.
func viewerID(r *http.Request) int64 {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0
	}
	return id
}

// handleServiceError maps the typed failure taxonomy onto HTTP statuses.
// Only this layer translates errors into user-facing messages.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, repository.ErrDuplicateReview):
		log.Warn(operation+" failed - duplicate review", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrSubjectNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, repository.ErrInvalidRating):
		log.Warn(operation+" failed - invalid rating", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
