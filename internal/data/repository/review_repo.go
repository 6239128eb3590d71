package repository

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// reviewSortColumns is the whitelist for review listings.
var reviewSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"rating":     "rating",
}

const reviewSortDefault = "created_at DESC"

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindByUserAndSubject(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (*entity.Review, error)
	PageBySubject(ctx context.Context, kind entity.Kind, subjectID int64, q PageQuery) (Page[*entity.Review], error)
	PageByUser(ctx context.Context, userID int64, q PageQuery) (Page[*entity.Review], error)
	Update(ctx context.Context, review *entity.Review) error
	DeleteCascade(ctx context.Context, id int64) error

	// Derived stats, recomputed from rows on every call
	Stats(ctx context.Context, kind entity.Kind, subjectID int64) (entity.ReviewStats, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (subject_kind, subject_id, user_id, content, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.SubjectKind,
		review.SubjectID,
		review.UserID,
		review.Content,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)

	if err != nil {
		// Unique index on (user_id, subject_kind, subject_id) is the
		// backstop for two concurrent first submissions.
		if isPgError(err, pgUniqueViolation) {
			return ErrDuplicateReview
		}
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.String("subject_kind", review.SubjectKind.String()),
			zap.Int64("subject_id", review.SubjectID),
		)
		return fmt.Errorf("create review for %s %d by user %d: %w",
			review.SubjectKind, review.SubjectID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `
		SELECT id, subject_kind, subject_id, user_id, content, rating, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	review, err := scanReviewRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %d: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByUserAndSubject(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (*entity.Review, error) {
	query := `
		SELECT id, subject_kind, subject_id, user_id, content, rating, created_at, updated_at
		FROM reviews
		WHERE user_id = $1 AND subject_kind = $2 AND subject_id = $3
		LIMIT 1
	`

	review, err := scanReviewRow(r.db.QueryRow(ctx, query, userID, kind, subjectID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and subject",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
		)
		return nil, fmt.Errorf("find review by user %d and %s %d: %w", userID, kind, subjectID, err)
	}

	return review, nil
}

func (r *reviewRepository) PageBySubject(ctx context.Context, kind entity.Kind, subjectID int64, q PageQuery) (Page[*entity.Review], error) {
	order := q.OrderClause(reviewSortColumns, reviewSortDefault)
	listQuery := fmt.Sprintf(`
		SELECT id, subject_kind, subject_id, user_id, content, rating, created_at, updated_at
		FROM reviews
		WHERE subject_kind = $1 AND subject_id = $2
		ORDER BY %s
		LIMIT $3 OFFSET $4
	`, order)
	countQuery := `SELECT COUNT(*) FROM reviews WHERE subject_kind = $1 AND subject_id = $2`

	page, err := fetchPage(ctx, r.db, listQuery, countQuery,
		[]any{kind, subjectID}, q.Limit(), q.Offset(), scanReviewRows)
	if err != nil {
		r.log.Error("Failed to page reviews by subject",
			zap.Error(err),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return page, fmt.Errorf("page reviews for %s %d: %w", kind, subjectID, err)
	}

	return page, nil
}

func (r *reviewRepository) PageByUser(ctx context.Context, userID int64, q PageQuery) (Page[*entity.Review], error) {
	order := q.OrderClause(reviewSortColumns, reviewSortDefault)
	listQuery := fmt.Sprintf(`
		SELECT id, subject_kind, subject_id, user_id, content, rating, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, order)
	countQuery := `SELECT COUNT(*) FROM reviews WHERE user_id = $1`

	page, err := fetchPage(ctx, r.db, listQuery, countQuery,
		[]any{userID}, q.Limit(), q.Offset(), scanReviewRows)
	if err != nil {
		r.log.Error("Failed to page reviews by user",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return page, fmt.Errorf("page reviews for user %d: %w", userID, err)
	}

	return page, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET content = $2, rating = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Content,
		review.Rating,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// DeleteCascade removes the review and every vote referencing it inside
// one transaction. An orphaned vote would leave the ledger counts
// permanently wrong, so the two deletes are never visible separately.
func (r *reviewRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete review %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM review_votes WHERE review_id = $1`, id); err != nil {
		r.log.Error("Failed to delete review votes",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete votes for review %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete review %d: %w", id, err)
	}

	r.log.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}

// Stats includes zero-valued ratings in the average, matching the
// platform's historical behavior for the "no rating" sentinel.
func (r *reviewRepository) Stats(ctx context.Context, kind entity.Kind, subjectID int64) (entity.ReviewStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_reviews,
			COALESCE(AVG(rating), 0) AS average_rating
		FROM reviews
		WHERE subject_kind = $1 AND subject_id = $2
	`

	var stats entity.ReviewStats
	err := r.db.QueryRow(ctx, query, kind, subjectID).Scan(
		&stats.TotalReviews,
		&stats.AverageRating,
	)
	if err != nil {
		r.log.Error("Failed to get review stats",
			zap.Error(err),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
		)
		return stats, fmt.Errorf("get review stats for %s %d: %w", kind, subjectID, err)
	}

	return stats, nil
}

func scanReviewRow(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.SubjectKind,
		&review.SubjectID,
		&review.UserID,
		&review.Content,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func scanReviewRows(rows pgx.Rows) (*entity.Review, error) {
	return scanReviewRow(rows)
}
