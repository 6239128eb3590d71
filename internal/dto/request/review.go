package request

// SubmitReviewRequest creates the viewer's review on a subject.
// Rating 0 is valid and means "no rating".
type SubmitReviewRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
	Rating  int    `json:"rating" validate:"min=0,max=10"`
}

// UpdateReviewRequest overwrites content and rating in place; no
// history is retained.
type UpdateReviewRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
	Rating  int    `json:"rating" validate:"min=0,max=10"`
}
