package usecase

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
	"reelrate/internal/dto/response"

	"go.uber.org/zap"
)

type SubjectService interface {
	// ListByKind serves the grid pages, each subject carrying its
	// recomputed stats and the viewer's bookmark/review relation.
	ListByKind(ctx context.Context, kind entity.Kind, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SubjectResponse], error)
}

type subjectService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSubjectService(repo *repository.Repository, log *zap.Logger) SubjectService {
	return &subjectService{
		repo: repo,
		log:  log.With(zap.String("service", "subject")),
	}
}

func (s *subjectService) ListByKind(ctx context.Context, kind entity.Kind, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SubjectResponse], error) {
	q := pageQueryFrom(req, DefaultSubjectPerPage)
	page, err := s.repo.Subject.PageByKind(ctx, kind, q)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	items := make([]response.SubjectResponse, 0, len(page.Items))
	for _, subject := range page.Items {
		item := response.SubjectToResponse(subject)

		stats, err := s.repo.Review.Stats(ctx, subject.Kind, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("get subject stats: %w", err)
		}
		item.Aggregate = response.StatsToResponse(stats)

		if viewerID != 0 {
			bookmarked, err := s.repo.Favorite.Exists(ctx, viewerID, subject.Kind, subject.ID)
			if err != nil {
				return nil, fmt.Errorf("check bookmark: %w", err)
			}
			item.IsBookmarked = bookmarked

			mine, err := s.repo.Review.FindByUserAndSubject(ctx, viewerID, subject.Kind, subject.ID)
			if err != nil {
				return nil, fmt.Errorf("check own review: %w", err)
			}
			item.IsReviewed = mine != nil
		}

		items = append(items, item)
	}

	s.log.Info("Subjects retrieved",
		zap.String("kind", kind.String()),
		zap.Int("count", len(items)),
		zap.Int64("total", page.Total),
		zap.Int("page", q.Page),
	)

	return response.NewPaginatedResponse(items, q.Page, q.Limit(), page.Total), nil
}
