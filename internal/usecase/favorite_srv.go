package usecase

import (
	"context"
	"fmt"
	"time"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
	"reelrate/internal/dto/response"

	"go.uber.org/zap"
)

type FavoriteService interface {
	// Add is idempotent; bookmarking an already-bookmarked subject
	// keeps one row and succeeds.
	Add(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) error
	Remove(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) error
	ListMine(ctx context.Context, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FavoriteResponse], error)
}

type favoriteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFavoriteService(repo *repository.Repository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		repo: repo,
		log:  log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) Add(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) error {
	if viewerID == 0 {
		return repository.ErrUnauthorized
	}

	subject, err := s.repo.Subject.FindByID(ctx, kind, subjectID)
	if err != nil {
		return fmt.Errorf("find subject: %w", err)
	}
	if subject == nil {
		return repository.ErrSubjectNotFound
	}

	favorite := &entity.Favorite{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		SubjectKind: kind,
		SubjectID:   subjectID,
		UserID:      viewerID,
	}

	if err := s.repo.Favorite.Add(ctx, favorite); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	s.log.Info("Favorite added",
		zap.Int64("user_id", viewerID),
		zap.String("subject_kind", kind.String()),
		zap.Int64("subject_id", subjectID),
	)

	return nil
}

func (s *favoriteService) Remove(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) error {
	if viewerID == 0 {
		return repository.ErrUnauthorized
	}

	if err := s.repo.Favorite.Remove(ctx, viewerID, kind, subjectID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	s.log.Info("Favorite removed",
		zap.Int64("user_id", viewerID),
		zap.String("subject_kind", kind.String()),
		zap.Int64("subject_id", subjectID),
	)

	return nil
}

func (s *favoriteService) ListMine(ctx context.Context, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FavoriteResponse], error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	q := pageQueryFrom(req, DefaultSubjectPerPage)
	page, err := s.repo.Favorite.PageByUser(ctx, viewerID, q)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	items := make([]response.FavoriteResponse, 0, len(page.Items))
	for _, favorite := range page.Items {
		item := response.FavoriteResponse{
			SubjectKind: favorite.SubjectKind.String(),
			SubjectID:   favorite.SubjectID,
			CreatedAt:   favorite.CreatedAt,
		}

		// Label with the catalog title when the subject still exists
		subject, err := s.repo.Subject.FindByID(ctx, favorite.SubjectKind, favorite.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("find favorite subject: %w", err)
		}
		if subject != nil {
			item.Title = subject.Title
		}

		items = append(items, item)
	}

	return response.NewPaginatedResponse(items, q.Page, q.Limit(), page.Total), nil
}
