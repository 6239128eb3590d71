package adaptor

import (
	"context"
	"net/http"

	"reelrate/internal/data/entity"
	"reelrate/internal/dto/response"
	"reelrate/internal/usecase"
	"reelrate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VoteHandler struct {
	service usecase.VoteService
	log     *zap.Logger
}

func NewVoteHandler(service usecase.VoteService, log *zap.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		log:     log.With(zap.String("handler", "vote")),
	}
}

// Upvote handles POST /api/reviews/{id}/upvote (protected)
func (h *VoteHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Upvote, "upvote review")
}

// Downvote handles POST /api/reviews/{id}/downvote (protected)
func (h *VoteHandler) Downvote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Downvote, "downvote review")
}

// RetractUpvote handles DELETE /api/reviews/{id}/upvote (protected)
func (h *VoteHandler) RetractUpvote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.RetractUpvote, "retract upvote")
}

// RetractDownvote handles DELETE /api/reviews/{id}/downvote (protected)
func (h *VoteHandler) RetractDownvote(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.RetractDownvote, "retract downvote")
}

// ListVoters handles GET /api/reviews/{id}/voters?polarity=up|down (public)
func (h *VoteHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	reviewID := utils.ParseInt64(chi.URLParam(r, "id"))
	if reviewID <= 0 {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	polarity, ok := entity.ParsePolarity(r.URL.Query().Get("polarity"))
	if !ok {
		utils.ResponseBadRequest(w, "Polarity must be 'up' or 'down'", nil)
		return
	}

	req := paginationFromQuery(r, usecase.DefaultVoterPerPage)

	voters, err := h.service.ListVoters(r.Context(), reviewID, polarity, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list voters")
		return
	}

	utils.ResponseSuccess(w, "success", voters)
}

// mutate shares the plumbing of the four vote mutations.
func (h *VoteHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error),
	operation string,
) {
	viewer := viewerID(r)
	if viewer == 0 {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := utils.ParseInt64(chi.URLParam(r, "id"))
	if reviewID <= 0 {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	state, err := op(r.Context(), viewer, reviewID)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", state)
}
