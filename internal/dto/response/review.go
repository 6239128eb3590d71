package response

import (
	"time"

	"reelrate/internal/data/entity"
)

// UserSummary is what voter lists and review bylines expose of a user.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// VoterPreview is the truncated voter list embedded in each review.
// HasMore signals that the full list is longer than the preview.
type VoterPreview struct {
	Items   []UserSummary `json:"items"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
}

// ReviewStats is the derived aggregate for a subject.
type ReviewStats struct {
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

// ReviewResponse is one review annotated for the requesting viewer.
// The Is* flags are all false for anonymous viewers.
type ReviewResponse struct {
	ID          int64        `json:"id"`
	SubjectKind string       `json:"subject_kind"`
	SubjectID   int64        `json:"subject_id"`
	UserID      int64        `json:"user_id"`
	Username    string       `json:"username,omitempty"`
	Content     string       `json:"content"`
	Rating      int          `json:"rating"`
	Upvotes     int64        `json:"upvotes"`
	Downvotes   int64        `json:"downvotes"`
	Upvoters    VoterPreview `json:"upvoters"`
	Downvoters  VoterPreview `json:"downvoters"`
	IsUpvoted   bool         `json:"is_upvoted"`
	IsDownvoted bool         `json:"is_downvoted"`
	IsMine      bool         `json:"is_mine"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// SubjectReviewsResponse is the full listing payload for a subject page:
// one review page, the recomputed aggregate, and the viewer's own
// relation to the subject.
type SubjectReviewsResponse struct {
	Data         []ReviewResponse `json:"data"`
	Pagination   PaginationMeta   `json:"pagination"`
	Aggregate    ReviewStats      `json:"aggregate"`
	IsBookmarked bool             `json:"is_bookmarked"`
	IsReviewed   bool             `json:"is_reviewed"`
}

// MutationResponse pairs the touched review (nil after delete) with the
// subject's refreshed aggregate.
type MutationResponse struct {
	Review    *ReviewResponse `json:"review,omitempty"`
	Aggregate ReviewStats     `json:"aggregate"`
}

func StatsToResponse(stats entity.ReviewStats) ReviewStats {
	return ReviewStats{
		TotalReviews:  stats.TotalReviews,
		AverageRating: stats.AverageRating,
	}
}

// ReviewToResponse fills the stored fields; vote counts, previews and
// viewer flags are stamped by the service layer.
func ReviewToResponse(review *entity.Review, username string) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		SubjectKind: review.SubjectKind.String(),
		SubjectID:   review.SubjectID,
		UserID:      review.UserID,
		Username:    username,
		Content:     review.Content,
		Rating:      review.Rating,
		Upvoters:    VoterPreview{Items: []UserSummary{}},
		Downvoters:  VoterPreview{Items: []UserSummary{}},
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}

func UserToSummary(user *entity.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Username: user.Username,
	}
}
