// Package pagination owns the windowing math for every listing
// endpoint. List and count queries must draw their offset/limit from
// the same Window so the two can never drift apart.
package pagination

import "errors"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrInvalidPageSize = errors.New("page size must be at least 1")

// Window is one page of results expressed as an offset/limit pair.
type Window struct {
	Offset int
	Limit  int
}

// NewWindow derives the query window from a 1-based page and a page
// size. Pages below 1 are coerced to 1; sizes above MaxPageSize are
// clamped; sizes below 1 are an error.
func NewWindow(page, pageSize int) (Window, error) {
	if pageSize < 1 {
		return Window{}, ErrInvalidPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return Window{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}, nil
}

// HasMore reports whether rows exist beyond this window, given how
// many the window returned and the total matching count.
func (w Window) HasMore(returned int, total int64) bool {
	return int64(w.Offset+returned) < total
}
