package usecase

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/internal/data/repository"
	"reelrate/internal/dto/response"
)

// voterPreviewSize bounds the voter list embedded in each review; the
// full list is served page by page through the voters endpoint.
const voterPreviewSize = 3

// annotator merges vote counts, voter previews and viewer-relative
// flags onto review responses. It only reads; shared state is never
// mutated here.
type annotator struct {
	repo *repository.Repository
}

func newAnnotator(repo *repository.Repository) *annotator {
	return &annotator{repo: repo}
}

// reviewPage converts one page of review rows into annotated responses.
// viewerID 0 means anonymous: every Is* flag stays false and no
// per-viewer query is issued.
func (a *annotator) reviewPage(ctx context.Context, reviews []*entity.Review, viewerID int64) ([]response.ReviewResponse, error) {
	items := make([]response.ReviewResponse, 0, len(reviews))
	if len(reviews) == 0 {
		return items, nil
	}

	reviewIDs := make([]int64, len(reviews))
	userIDs := make([]int64, len(reviews))
	for i, review := range reviews {
		reviewIDs[i] = review.ID
		userIDs[i] = review.UserID
	}

	authors, err := a.repo.User.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}

	var viewerVotes map[int64]entity.Polarity
	if viewerID != 0 {
		viewerVotes, err = a.repo.Vote.FindByUserForReviews(ctx, viewerID, reviewIDs)
		if err != nil {
			return nil, fmt.Errorf("load viewer votes: %w", err)
		}
	}

	for _, review := range reviews {
		username := ""
		if author, ok := authors[review.UserID]; ok {
			username = author.Username
		}

		item := response.ReviewToResponse(review, username)

		counts, err := a.repo.Vote.Counts(ctx, review.ID)
		if err != nil {
			return nil, fmt.Errorf("load vote counts: %w", err)
		}
		item.Upvotes = counts.Upvotes
		item.Downvotes = counts.Downvotes

		item.Upvoters, err = a.voterPreview(ctx, review.ID, entity.PolarityUp)
		if err != nil {
			return nil, err
		}
		item.Downvoters, err = a.voterPreview(ctx, review.ID, entity.PolarityDown)
		if err != nil {
			return nil, err
		}

		if viewerID != 0 {
			polarity, voted := viewerVotes[review.ID]
			item.IsUpvoted = voted && polarity == entity.PolarityUp
			item.IsDownvoted = voted && polarity == entity.PolarityDown
			item.IsMine = review.UserID == viewerID
		}

		items = append(items, item)
	}

	return items, nil
}

// voterPreview loads the first truncated slice of a review's voter
// list. HasMore compares the eager page against the stored total.
func (a *annotator) voterPreview(ctx context.Context, reviewID int64, polarity entity.Polarity) (response.VoterPreview, error) {
	page, err := a.repo.Vote.PageVoters(ctx, reviewID, polarity, repository.PageQuery{
		Page:    1,
		PerPage: voterPreviewSize,
	})
	if err != nil {
		return response.VoterPreview{}, fmt.Errorf("load %s voter preview: %w", polarity, err)
	}

	preview := response.VoterPreview{
		Items:   make([]response.UserSummary, 0, len(page.Items)),
		Total:   page.Total,
		HasMore: page.Total != int64(len(page.Items)),
	}
	for _, voter := range page.Items {
		preview.Items = append(preview.Items, response.UserToSummary(voter))
	}

	return preview, nil
}
