package entity

// Review is a user's single submission against one subject.
// At most one review exists per (user, subject) pair; the database
// backs this with a unique index on (user_id, subject_kind, subject_id).
type Review struct {
	Base
	SubjectKind Kind   `db:"subject_kind"`
	SubjectID   int64  `db:"subject_id"`
	UserID      int64  `db:"user_id"`
	Content     string `db:"content"`
	Rating      int    `db:"rating"` // 0-10, 0 doubles as "no rating"
}

// ReviewStats is derived from review rows on every read, never stored.
type ReviewStats struct {
	TotalReviews  int64
	AverageRating float64
}
