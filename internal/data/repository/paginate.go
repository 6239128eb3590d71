package repository

import (
	"context"
	"fmt"

	"reelrate/pkg/database"

	"github.com/jackc/pgx/v5"
)

// PageQuery carries the caller's paging and sorting choices. Page is
// 1-indexed. PerPage is always an explicit parameter; listing contexts
// choose their own default before building the query.
type PageQuery struct {
	Page      int
	PerPage   int
	SortBy    string
	Direction string // "asc" | "desc"
}

func (q PageQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit()
}

func (q PageQuery) Limit() int {
	if q.PerPage < 1 {
		return 10
	}
	if q.PerPage > 100 {
		return 100
	}
	return q.PerPage
}

// OrderClause resolves SortBy against a whitelist of sortable columns.
// Anything not whitelisted falls back to the stable default, since
// paginating an unordered result set duplicates or drops rows across
// pages. Direction is similarly constrained to ASC/DESC.
func (q PageQuery) OrderClause(allowed map[string]string, fallback string) string {
	column, ok := allowed[q.SortBy]
	if !ok {
		return fallback
	}

	direction := "DESC"
	if q.Direction == "asc" {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}

// Page pairs one slice of an ordered collection with the collection's
// full filtered size.
type Page[T any] struct {
	Items []T
	Total int64
}

// fetchPage is the shared paginate helper: one count query and one list
// query over the same filter args. listQuery must end with the LIMIT and
// OFFSET placeholders directly after the filter placeholders. A page past
// the end returns empty Items with the correct Total, not an error.
func fetchPage[T any](
	ctx context.Context,
	db database.PgxIface,
	listQuery, countQuery string,
	args []any,
	limit, offset int,
	scan func(pgx.Rows) (T, error),
) (Page[T], error) {
	var page Page[T]

	if err := db.QueryRow(ctx, countQuery, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("count rows: %w", err)
	}

	listArgs := append(append([]any{}, args...), limit, offset)
	rows, err := db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return page, fmt.Errorf("query page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return page, fmt.Errorf("scan row: %w", err)
		}
		page.Items = append(page.Items, item)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("iterate rows: %w", err)
	}

	return page, nil
}
