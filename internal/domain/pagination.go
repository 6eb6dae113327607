package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Limit  int
	Offset int
}

// CurrentPage returns the 1-based page number the offset falls on.
func (p PaginationParams) CurrentPage() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}
