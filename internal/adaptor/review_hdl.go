package adaptor

import (
	"encoding/json"
	"net/http"

	"reelrate/internal/dto/request"
	"reelrate/internal/usecase"
	"reelrate/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// Submit handles POST /api/{kind}/{id}/reviews (protected)
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req request.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Submit(r.Context(), viewer, kind, subjectID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit review")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// Update handles PUT /api/{kind}/{id}/reviews (protected)
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Update(r.Context(), viewer, kind, subjectID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Remove handles DELETE /api/{kind}/{id}/reviews (protected)
func (h *ReviewHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Remove(r.Context(), viewer, kind, subjectID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove review")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListSubjectReviews handles GET /api/{kind}/{id}/reviews (public)
func (h *ReviewHandler) ListSubjectReviews(w http.ResponseWriter, r *http.Request) {
	kind, subjectID, ok := subjectFromURL(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subject kind or ID", nil)
		return
	}

	req := paginationFromQuery(r, usecase.DefaultReviewPerPage)

	reviews, err := h.service.ListSubjectReviews(r.Context(), kind, subjectID, viewerID(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list subject reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ListUserReviews handles GET /api/user/reviews (protected)
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	viewer := viewerID(r)
	if viewer == 0 {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := paginationFromQuery(r, usecase.DefaultReviewPerPage)

	reviews, err := h.service.ListUserReviews(r.Context(), viewer, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Stats handles GET /api/{kind}/{id}/review-stats (public)
func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	kind, subjectID, ok := subjectFromURL(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid subject kind or ID", nil)
		return
	}

	stats, err := h.service.Stats(r.Context(), kind, subjectID)
	if err != nil {
		handleServiceError(w, h.log, err, "get review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
