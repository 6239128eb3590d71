package adaptor

import (
	"net/http"

	"reelrate/internal/data/entity"
	"reelrate/internal/usecase"
	"reelrate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SubjectHandler struct {
	service usecase.SubjectService
	log     *zap.Logger
}

func NewSubjectHandler(service usecase.SubjectService, log *zap.Logger) *SubjectHandler {
	return &SubjectHandler{
		service: service,
		log:     log.With(zap.String("handler", "subject")),
	}
}

// ListByKind handles GET /api/{kind} (public)
func (h *SubjectHandler) ListByKind(w http.ResponseWriter, r *http.Request) {
	kind, err := entity.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid subject kind", nil)
		return
	}

	req := paginationFromQuery(r, usecase.DefaultSubjectPerPage)

	subjects, err := h.service.ListByKind(r.Context(), kind, viewerID(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list subjects")
		return
	}

	utils.ResponseSuccess(w, "success", subjects)
}
