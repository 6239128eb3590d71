package repository

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FavoriteRepository interface {
	// Add is idempotent; bookmarking twice keeps one row.
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) error
	Exists(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (bool, error)
	PageByUser(ctx context.Context, userID int64, q PageQuery) (Page[*entity.Favorite], error)
}

type favoriteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFavoriteRepository(db database.PgxIface, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

func (r *favoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) error {
	query := `
		INSERT INTO favorites (subject_kind, subject_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, subject_kind, subject_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		favorite.SubjectKind,
		favorite.SubjectID,
		favorite.UserID,
		favorite.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to add favorite",
			zap.Error(err),
			zap.Int64("user_id", favorite.UserID),
			zap.String("subject_kind", favorite.SubjectKind.String()),
			zap.Int64("subject_id", favorite.SubjectID),
		)
		return fmt.Errorf("add favorite for %s %d by user %d: %w",
			favorite.SubjectKind, favorite.SubjectID, favorite.UserID, err)
	}

	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) error {
	query := `
		DELETE FROM favorites
		WHERE user_id = $1 AND subject_kind = $2 AND subject_id = $3
	`

	_, err := r.db.Exec(ctx, query, userID, kind, subjectID)
	if err != nil {
		r.log.Error("Failed to remove favorite",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
		)
		return fmt.Errorf("remove favorite for %s %d by user %d: %w", kind, subjectID, userID, err)
	}

	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int64, kind entity.Kind, subjectID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM favorites
			WHERE user_id = $1 AND subject_kind = $2 AND subject_id = $3
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, userID, kind, subjectID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check favorite",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("subject_kind", kind.String()),
			zap.Int64("subject_id", subjectID),
		)
		return false, fmt.Errorf("check favorite for %s %d by user %d: %w", kind, subjectID, userID, err)
	}

	return exists, nil
}

func (r *favoriteRepository) PageByUser(ctx context.Context, userID int64, q PageQuery) (Page[*entity.Favorite], error) {
	listQuery := `
		SELECT id, subject_kind, subject_id, user_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	countQuery := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`

	page, err := fetchPage(ctx, r.db, listQuery, countQuery,
		[]any{userID}, q.Limit(), q.Offset(),
		func(rows pgx.Rows) (*entity.Favorite, error) {
			var favorite entity.Favorite
			err := rows.Scan(
				&favorite.ID,
				&favorite.SubjectKind,
				&favorite.SubjectID,
				&favorite.UserID,
				&favorite.CreatedAt,
			)
			if err != nil {
				return nil, err
			}
			return &favorite, nil
		})
	if err != nil {
		r.log.Error("Failed to page favorites",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return page, fmt.Errorf("page favorites for user %d: %w", userID, err)
	}

	return page, nil
}
