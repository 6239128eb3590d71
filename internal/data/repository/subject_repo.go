package repository

import (
	"context"
	"fmt"

	"reelrate/internal/data/entity"
	"reelrate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var subjectSortColumns = map[string]string{
	"created_at": "created_at",
	"title":      "title",
}

const subjectSortDefault = "created_at DESC"

// SubjectRepository reads the catalog. Subjects are created and deleted
// by catalog-management flows outside this service.
type SubjectRepository interface {
	FindByID(ctx context.Context, kind entity.Kind, id int64) (*entity.Subject, error)
	PageByKind(ctx context.Context, kind entity.Kind, q PageQuery) (Page[*entity.Subject], error)
}

type subjectRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubjectRepository(db database.PgxIface, log *zap.Logger) SubjectRepository {
	return &subjectRepository{
		db:  db,
		log: log.With(zap.String("repository", "subject")),
	}
}

func (r *subjectRepository) FindByID(ctx context.Context, kind entity.Kind, id int64) (*entity.Subject, error) {
	query := `
		SELECT id, kind, title, created_at
		FROM subjects
		WHERE kind = $1 AND id = $2
	`

	var subject entity.Subject
	err := r.db.QueryRow(ctx, query, kind, id).Scan(
		&subject.ID,
		&subject.Kind,
		&subject.Title,
		&subject.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find subject",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.Int64("subject_id", id),
		)
		return nil, fmt.Errorf("find %s %d: %w", kind, id, err)
	}

	return &subject, nil
}

func (r *subjectRepository) PageByKind(ctx context.Context, kind entity.Kind, q PageQuery) (Page[*entity.Subject], error) {
	order := q.OrderClause(subjectSortColumns, subjectSortDefault)
	listQuery := fmt.Sprintf(`
		SELECT id, kind, title, created_at
		FROM subjects
		WHERE kind = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, order)
	countQuery := `SELECT COUNT(*) FROM subjects WHERE kind = $1`

	page, err := fetchPage(ctx, r.db, listQuery, countQuery,
		[]any{kind}, q.Limit(), q.Offset(),
		func(rows pgx.Rows) (*entity.Subject, error) {
			var subject entity.Subject
			err := rows.Scan(
				&subject.ID,
				&subject.Kind,
				&subject.Title,
				&subject.CreatedAt,
			)
			if err != nil {
				return nil, err
			}
			return &subject, nil
		})
	if err != nil {
		r.log.Error("Failed to page subjects",
			zap.Error(err),
			zap.String("kind", kind.String()),
			zap.Int("page", q.Page),
			zap.Int("per_page", q.PerPage),
		)
		return page, fmt.Errorf("page %s subjects: %w", kind, err)
	}

	return page, nil
}
