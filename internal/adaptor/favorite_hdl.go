package adaptor

import (
	"net/http"

	"reelrate/internal/usecase"
	"reelrate/pkg/utils"

	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// Add handles PUT /api/{kind}/{id}/favorite (protected)
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	viewer := viewerID(r)
	if viewer == 0 {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	kind, subjectID, ok := subjectFromURL(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subject kind or ID", nil)
		return
	}

	if err := h.service.Add(r.Context(), viewer, kind, subjectID); err != nil {
		handleServiceError(w, h.log, err, "add favorite")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Remove handles DELETE /api/{kind}/{id}/favorite (protected)
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	viewer := viewerID(r)
	if viewer == 0 {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	kind, subjectID, ok := subjectFromURL(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subject kind or ID", nil)
		return
	}

	if err := h.service.Remove(r.Context(), viewer, kind, subjectID); err != nil {
		handleServiceError(w, h.log, err, "remove favorite")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListMine handles GET /api/user/favorites (protected)
func (h *FavoriteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	viewer := viewerID(r)
	if viewer == 0 {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := paginationFromQuery(r, usecase.DefaultSubjectPerPage)

	favorites, err := h.service.ListMine(r.Context(), viewer, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list favorites")
		return
	}

	utils.ResponseSuccess(w, "success", favorites)
}
