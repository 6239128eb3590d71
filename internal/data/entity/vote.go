package entity

// Polarity is the up/down direction of a vote.
type Polarity string

const (
	PolarityUp   Polarity = "up"
	PolarityDown Polarity = "down"
)

// ParsePolarity validates a polarity coming from the request.
func ParsePolarity(s string) (Polarity, bool) {
	switch Polarity(s) {
	case PolarityUp:
		return PolarityUp, true
	case PolarityDown:
		return PolarityDown, true
	}
	return "", false
}

// Vote is a user's up- or downvote on a review. A single table with a
// polarity column and a unique key on (user_id, review_id) guarantees a
// user holds at most one vote per review across both polarities.
type Vote struct {
	BaseSimple
	ReviewID int64    `db:"review_id"`
	UserID   int64    `db:"user_id"`
	Polarity Polarity `db:"polarity"`
}

// VoteCounts are the per-review totals shown next to each review.
type VoteCounts struct {
	Upvotes   int64
	Downvotes int64
}
