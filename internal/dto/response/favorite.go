package response

import (
	"time"
)

// FavoriteResponse is one bookmarked subject in the viewer's list.
type FavoriteResponse struct {
	SubjectKind string    `json:"subject_kind"`
	SubjectID   int64     `json:"subject_id"`
	Title       string    `json:"title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
