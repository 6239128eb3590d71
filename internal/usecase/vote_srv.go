package usecase

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/request"
	"reelrate/internal/dto/response"
	"reelrate/pkg/utils"

	"go.uber.org/zap"
)

type VoteService interface {
	// Upvote and Downvote flip any opposite vote as one atomic unit and
	// are idempotent when the same polarity is already held.
	Upvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error)
	Downvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error)
	// Retract* delete the specific vote if present; absence is a no-op.
	RetractUpvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error)
	RetractDownvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error)

	ListVoters(ctx context.Context, reviewID int64, polarity entity.Polarity, req *request.PaginatedRequest) (*response.VoterListResponse, error)
}

type voteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVoteService(repo *repository.Repository, log *zap.Logger) VoteService {
	return &voteService{
		repo: repo,
		log:  log.With(zap.String("service", "vote")),
	}
}

func (s *voteService) Upvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error) {
	return s.cast(ctx, viewerID, reviewID, entity.PolarityUp)
}

func (s *voteService) Downvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error) {
	return s.cast(ctx, viewerID, reviewID, entity.PolarityDown)
}

func (s *voteService) RetractUpvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error) {
	return s.retract(ctx, viewerID, reviewID, entity.PolarityUp)
}

func (s *voteService) RetractDownvote(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error) {
	return s.retract(ctx, viewerID, reviewID, entity.PolarityDown)
}

func (s *voteService) cast(ctx context.Context, viewerID, reviewID int64, polarity entity.Polarity) (*response.VoteStateResponse, error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	if err := s.reviewExists(ctx, reviewID); err != nil {
		return nil, err
	}

	if err := s.repo.Vote.Cast(ctx, viewerID, reviewID, polarity); err != nil {
		if err == repository.ErrReviewNotFound {
			// Review vanished between the check and the write; the
			// caller should refresh its view, not retry
			return nil, err
		}
		s.log.Error("Failed to cast vote",
			zap.Error(err),
			zap.Int64("user_id", viewerID),
			zap.Int64("review_id", reviewID),
			zap.String("polarity", string(polarity)),
		)
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	s.log.Info("Vote cast",
		zap.Int64("user_id", viewerID),
		zap.Int64("review_id", reviewID),
		zap.String("polarity", string(polarity)),
	)

	return s.buildVoteState(ctx, viewerID, reviewID)
}

func (s *voteService) retract(ctx context.Context, viewerID, reviewID int64, polarity entity.Polarity) (*response.VoteStateResponse, error) {
	if viewerID == 0 {
		return nil, repository.ErrUnauthorized
	}

	if err := s.reviewExists(ctx, reviewID); err != nil {
		return nil, err
	}

	if err := s.repo.Vote.Retract(ctx, viewerID, reviewID, polarity); err != nil {
		s.log.Error("Failed to retract vote",
			zap.Error(err),
			zap.Int64("user_id", viewerID),
			zap.Int64("review_id", reviewID),
			zap.String("polarity", string(polarity)),
		)
		return nil, fmt.Errorf("retract vote: %w", err)
	}

	return s.buildVoteState(ctx, viewerID, reviewID)
}

func (s *voteService) ListVoters(ctx context.Context, reviewID int64, polarity entity.Polarity, req *request.PaginatedRequest) (*response.VoterListResponse, error) {
	if err := s.reviewExists(ctx, reviewID); err != nil {
		return nil, err
	}

	q := pageQueryFrom(req, DefaultVoterPerPage)
	page, err := s.repo.Vote.PageVoters(ctx, reviewID, polarity, q)
	if err != nil {
		return nil, fmt.Errorf("list voters: %w", err)
	}

	items := make([]response.UserSummary, 0, len(page.Items))
	for _, voter := range page.Items {
		items = append(items, response.UserToSummary(voter))
	}

	// Standard offset math: more pages exist while rows remain past
	// this one
	hasMore := int64(utils.CalculateOffset(q.Page, q.Limit())+len(items)) < page.Total

	return &response.VoterListResponse{
		Items:   items,
		Total:   page.Total,
		HasMore: hasMore,
	}, nil
}

func (s *voteService) reviewExists(ctx context.Context, reviewID int64) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return repository.ErrReviewNotFound
	}
	return nil
}

func (s *voteService) buildVoteState(ctx context.Context, viewerID, reviewID int64) (*response.VoteStateResponse, error) {
	counts, err := s.repo.Vote.Counts(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}

	state := &response.VoteStateResponse{
		ReviewID:  reviewID,
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
	}

	vote, err := s.repo.Vote.FindByUserAndReview(ctx, viewerID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("find viewer vote: %w", err)
	}
	if vote != nil {
		state.ViewerVote = string(vote.Polarity)
	}

	return state, nil
}
