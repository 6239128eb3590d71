package response

import (
	"time"

	"reelrate/internal/data/entity"
)

// SubjectResponse is one catalog entry with its derived review stats,
// annotated for the viewer.
type SubjectResponse struct {
	ID           int64       `json:"id"`
	Kind         string      `json:"kind"`
	Title        string      `json:"title"`
	Aggregate    ReviewStats `json:"aggregate"`
	IsBookmarked bool        `json:"is_bookmarked"`
	IsReviewed   bool        `json:"is_reviewed"`
	CreatedAt    time.Time   `json:"created_at"`
}

func SubjectToResponse(subject *entity.Subject) SubjectResponse {
	return SubjectResponse{
		ID:        subject.ID,
		Kind:      subject.Kind.String(),
		Title:     subject.Title,
		CreatedAt: subject.CreatedAt,
	}
}
