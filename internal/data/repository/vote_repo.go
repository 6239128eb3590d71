package repository

import (
	"context"
	"fmt"
	"time"

	"reelrate/internal/data/entity"
	"reelrate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VoteRepository interface {
	// Cast inserts or flips the viewer's vote in one atomic statement.
	// Re-casting the same polarity is a no-op.
	Cast(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error
	// Retract deletes the vote if it exists with the given polarity;
	// absence is not an error.
	Retract(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error
	FindByUserAndReview(ctx context.Context, userID, reviewID int64) (*entity.Vote, error)
	FindByUserForReviews(ctx context.Context, userID int64, reviewIDs []int64) (map[int64]entity.Polarity, error)
	Counts(ctx context.Context, reviewID int64) (entity.VoteCounts, error)
	PageVoters(ctx context.Context, reviewID int64, polarity entity.Polarity, q PageQuery) (Page[*entity.User], error)
}

type voteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVoteRepository(db database.PgxIface, log *zap.Logger) VoteRepository {
	return &voteRepository{
		db:  db,
		log: log.With(zap.String("repository", "vote")),
	}
}

// Cast relies on the unique key on (user_id, review_id): a fresh vote
// inserts, a flip updates the polarity in place. Either way no observer
// sees a state with both polarities or with the old vote gone and the
// new one not yet present.
func (r *voteRepository) Cast(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error {
	query := `
		INSERT INTO review_votes (review_id, user_id, polarity, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, review_id)
		DO UPDATE SET polarity = EXCLUDED.polarity
	`

	_, err := r.db.Exec(ctx, query, reviewID, userID, polarity, time.Now())
	if err != nil {
		// FK violation means the target review was deleted concurrently.
		if isPgError(err, pgForeignKeyViolation) {
			return ErrReviewNotFound
		}
		r.log.Error("Failed to cast vote",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("review_id", reviewID),
			zap.String("polarity", string(polarity)),
		)
		return fmt.Errorf("cast %s vote on review %d by user %d: %w", polarity, reviewID, userID, err)
	}

	return nil
}

func (r *voteRepository) Retract(ctx context.Context, userID, reviewID int64, polarity entity.Polarity) error {
	query := `
		DELETE FROM review_votes
		WHERE user_id = $1 AND review_id = $2 AND polarity = $3
	`

	_, err := r.db.Exec(ctx, query, userID, reviewID, polarity)
	if err != nil {
		r.log.Error("Failed to retract vote",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("review_id", reviewID),
			zap.String("polarity", string(polarity)),
		)
		return fmt.Errorf("retract %s vote on review %d by user %d: %w", polarity, reviewID, userID, err)
	}

	return nil
}

func (r *voteRepository) FindByUserAndReview(ctx context.Context, userID, reviewID int64) (*entity.Vote, error) {
	query := `
		SELECT id, review_id, user_id, polarity, created_at
		FROM review_votes
		WHERE user_id = $1 AND review_id = $2
	`

	var vote entity.Vote
	err := r.db.QueryRow(ctx, query, userID, reviewID).Scan(
		&vote.ID,
		&vote.ReviewID,
		&vote.UserID,
		&vote.Polarity,
		&vote.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vote",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("review_id", reviewID),
		)
		return nil, fmt.Errorf("find vote on review %d by user %d: %w", reviewID, userID, err)
	}

	return &vote, nil
}

// FindByUserForReviews fetches the viewer's votes for one review page in
// a single round trip.
func (r *voteRepository) FindByUserForReviews(ctx context.Context, userID int64, reviewIDs []int64) (map[int64]entity.Polarity, error) {
	votes := make(map[int64]entity.Polarity, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return votes, nil
	}

	query := `
		SELECT review_id, polarity
		FROM review_votes
		WHERE user_id = $1 AND review_id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, userID, reviewIDs)
	if err != nil {
		r.log.Error("Failed to find votes for reviews",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("review_count", len(reviewIDs)),
		)
		return nil, fmt.Errorf("find votes by user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reviewID int64
		var polarity entity.Polarity
		if err := rows.Scan(&reviewID, &polarity); err != nil {
			return nil, fmt.Errorf("scan vote row: %w", err)
		}
		votes[reviewID] = polarity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote rows: %w", err)
	}

	return votes, nil
}

func (r *voteRepository) Counts(ctx context.Context, reviewID int64) (entity.VoteCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE polarity = 'up')   AS upvotes,
			COUNT(*) FILTER (WHERE polarity = 'down') AS downvotes
		FROM review_votes
		WHERE review_id = $1
	`

	var counts entity.VoteCounts
	err := r.db.QueryRow(ctx, query, reviewID).Scan(&counts.Upvotes, &counts.Downvotes)
	if err != nil {
		r.log.Error("Failed to count votes",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
		)
		return counts, fmt.Errorf("count votes for review %d: %w", reviewID, err)
	}

	return counts, nil
}

// PageVoters lists who voted, newest vote first.
func (r *voteRepository) PageVoters(ctx context.Context, reviewID int64, polarity entity.Polarity, q PageQuery) (Page[*entity.User], error) {
	listQuery := `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_active, u.created_at, u.updated_at
		FROM review_votes v
		JOIN users u ON u.id = v.user_id
		WHERE v.review_id = $1 AND v.polarity = $2
		ORDER BY v.created_at DESC
		LIMIT $3 OFFSET $4
	`
	countQuery := `SELECT COUNT(*) FROM review_votes WHERE review_id = $1 AND polarity = $2`

	page, err := fetchPage(ctx, r.db, listQuery, countQuery,
		[]any{reviewID, polarity}, q.Limit(), q.Offset(), scanUserRows)
	if err != nil {
		r.log.Error("Failed to page voters",
			zap.Error(err),
			zap.Int64("review_id", reviewID),
			zap.String("polarity", string(polarity)),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return page, fmt.Errorf("page %s voters for review %d: %w", polarity, reviewID, err)
	}

	return page, nil
}
