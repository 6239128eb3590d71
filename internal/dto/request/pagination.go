package request

// PaginatedRequest is parsed from query parameters. Page is 1-indexed.
// Each listing context fills its own PerPage default before use.
type PaginatedRequest struct {
	Page      int    `json:"page" validate:"min=1"`
	PerPage   int    `json:"per_page" validate:"min=1,max=100"`
	SortBy    string `json:"sort_by" validate:"omitempty,max=32"`
	Direction string `json:"direction" validate:"omitempty,oneof=asc desc"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return 10
	}
	if p.PerPage > 100 {
		return 100
	}
	return p.PerPage
}
