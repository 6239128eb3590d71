package usecase

import (
	"context"
	"fmt"
	"time"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
	"reelrate/internal/dto/response"
	"reelrate/pkg/utils"

	"go.uber.org/zap"
)

// Per-listing page size defaults. PerPage stays an explicit parameter
// all the way down; these only fill in absent query params.
const (
	DefaultReviewPerPage  = 5
	DefaultSubjectPerPage = 12
	DefaultVoterPerPage   = 5
)

type ReviewService interface {
	// Submit fails with ErrDuplicateReview when the viewer already
	// reviewed the subject; it never silently upserts. The caller is
	// expected to route duplicates to Update.
	Submit(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64, req *request.SubmitReviewRequest) (*response.MutationResponse, error)
	Update(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64, req *request.UpdateReviewRequest) (*response.MutationResponse, error)
	Remove(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) (*response.MutationResponse, error)

	// ListSubjectReviews returns one review page plus the subject's
	// recomputed aggregate, annotated for the viewer (0 = anonymous).
	ListSubjectReviews(ctx context.Context, kind entity.Kind, subjectID int64, viewerID int64, req *request.PaginatedRequest) (*response.SubjectReviewsResponse, error)
	ListUserReviews(ctx context.Context, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Stats(ctx context.Context, kind entity.Kind, subjectID int64) (*response.ReviewStats, error)
}

type reviewService struct {
	repo     *repository.Repository
	annotate *annotator
	log      *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:     repo,
		annotate: newAnnotator(repo),
		log:      log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Submit(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64, req *request.SubmitReviewRequest) (*response.MutationResponse, error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Defense in depth; the client bound-checks before us
	if req.Rating < 0 || req.Rating > 10 {
		return nil, repository.ErrInvalidRating
	}

	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return nil, err
	}

	// Pre-check; the unique index catches the concurrent double submit
	existing, err := s.repo.Review.FindByUserAndSubject(ctx, viewerID, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrDuplicateReview
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubjectKind: kind,
		SubjectID:   subjectID,
		UserID:      viewerID,
		Content:     req.Content,
		Rating:      req.Rating,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if err == repository.ErrDuplicateReview {
			return nil, err
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", viewerID),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", viewerID),
		zap.String("subject_kind", kind.String()),
		zap.Int64("subject_id", subjectID),
		zap.Int("rating", req.Rating),
	)

	return s.buildMutationResponse(ctx, review)
}

func (s *reviewService) Update(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64, req *request.UpdateReviewRequest) (*response.MutationResponse, error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Rating < 0 || req.Rating > 10 {
		return nil, repository.ErrInvalidRating
	}

	review, err := s.repo.Review.FindByUserAndSubject(ctx, viewerID, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("find review to update: %w", err)
	}
	if review == nil {
		return nil, repository.ErrReviewNotFound
	}

	// Overwrite in place, no history retained
	review.Content = req.Content
	review.Rating = req.Rating
	review.UpdatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if err == repository.ErrReviewNotFound {
			return nil, err
		}
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", viewerID),
	)

	return s.buildMutationResponse(ctx, review)
}

func (s *reviewService) Remove(ctx context.Context, viewerID int64, kind entity.Kind, subjectID int64) (*response.MutationResponse, error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	review, err := s.repo.Review.FindByUserAndSubject(ctx, viewerID, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("find review to delete: %w", err)
	}
	if review == nil {
		return nil, repository.ErrReviewNotFound
	}

	if err := s.repo.Review.DeleteCascade(ctx, review.ID); err != nil {
		if err == repository.ErrReviewNotFound {
			return nil, err
		}
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return nil, fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review removed",
		zap.Int64("review_id", review.ID),
		zap.Int64("user_id", viewerID),
		zap.String("subject_kind", kind.String()),
		zap.Int64("subject_id", subjectID),
	)

	stats, err := s.repo.Review.Stats(ctx, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("refresh stats: %w", err)
	}

	return &response.MutationResponse{
		Aggregate: response.StatsToResponse(stats),
	}, nil
}

func (s *reviewService) ListSubjectReviews(ctx context.Context, kind entity.Kind, subjectID int64, viewerID int64, req *request.PaginatedRequest) (*response.SubjectReviewsResponse, error) {
	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return nil, err
	}

	q := pageQueryFrom(req, DefaultReviewPerPage)
	page, err := s.repo.Review.PageBySubject(ctx, kind, subjectID, q)
	if err != nil {
		return nil, fmt.Errorf("list subject reviews: %w", err)
	}

	// Aggregate covers the full review set, not just this page
	stats, err := s.repo.Review.Stats(ctx, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	items, err := s.annotate.reviewPage(ctx, page.Items, viewerID)
	if err != nil {
		return nil, err
	}

	resp := &response.SubjectReviewsResponse{
		Data: items,
		Pagination: response.PaginationMeta{
			Page:       q.Page,
			PerPage:    q.Limit(),
			Total:      page.Total,
			TotalPages: utils.CalculateTotalPages(page.Total, q.Limit()),
		},
		Aggregate: response.StatsToResponse(stats),
	}

	// Viewer relation to the subject itself
	if viewerID != 0 {
		bookmarked, err := s.repo.Favorite.Exists(ctx, viewerID, kind, subjectID)
		if err != nil {
			return nil, fmt.Errorf("check bookmark: %w", err)
		}
		resp.IsBookmarked = bookmarked

		mine, err := s.repo.Review.FindByUserAndSubject(ctx, viewerID, kind, subjectID)
		if err != nil {
			return nil, fmt.Errorf("check own review: %w", err)
		}
		resp.IsReviewed = mine != nil
	}

	s.log.Info("Subject reviews retrieved",
		zap.String("subject_kind", kind.String()),
		zap.Int64("subject_id", subjectID),
		zap.Int("count", len(items)),
		zap.Int64("total", page.Total),
		zap.Int("page", q.Page),
	)

	return resp, nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, viewerID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	q := pageQueryFrom(req, DefaultReviewPerPage)
	page, err := s.repo.Review.PageByUser(ctx, viewerID, q)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}

	items, err := s.annotate.reviewPage(ctx, page.Items, viewerID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, q.Page, q.Limit(), page.Total), nil
}

func (s *reviewService) Stats(ctx context.Context, kind entity.Kind, subjectID int64) (*response.ReviewStats, error) {
	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return nil, err
	}

	stats, err := s.repo.Review.Stats(ctx, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) subjectExists(ctx context.Context, kind entity.Kind, subjectID int64) error {
	subject, err := s.repo.Subject.FindByID(ctx, kind, subjectID)
	if err != nil {
		return fmt.Errorf("find subject: %w", err)
	}
	if subject == nil {
		return repository.ErrSubjectNotFound
	}
	return nil
}

func (s *reviewService) buildMutationResponse(ctx context.Context, review *entity.Review) (*response.MutationResponse, error) {
	stats, err := s.repo.Review.Stats(ctx, review.SubjectKind, review.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("refresh stats: %w", err)
	}

	items, err := s.annotate.reviewPage(ctx, []*entity.Review{review}, review.UserID)
	if err != nil {
		return nil, err
	}

	return &response.MutationResponse{
		Review:    &items[0],
		Aggregate: response.StatsToResponse(stats),
	}, nil
}

func pageQueryFrom(req *request.PaginatedRequest, defaultPerPage int) repository.PageQuery {
	q := repository.PageQuery{
		Page:      req.Page,
		PerPage:   req.PerPage,
		SortBy:    req.SortBy,
		Direction: req.Direction,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	return q
}
