package entity

// Favorite bookmarks a subject for a user, one row per (user, subject).
// Independent of review state.
type Favorite struct {
	BaseSimple
	SubjectKind Kind  `db:"subject_kind"`
	SubjectID   int64 `db:"subject_id"`
	UserID      int64 `db:"user_id"`
}
