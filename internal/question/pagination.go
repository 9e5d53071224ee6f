package question

import "math"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 10

// Window is the offset/limit slice of an ordered result set for one page.
type Window struct {
	Offset     int
	Limit      int
	TotalPages int
}

// Paginate computes the window for a 1-based page over total rows. Offsets
// that would overflow saturate at math.MaxInt, which is always empty.
func Paginate(total, page, pageSize int) Window {
	w := Window{
		Offset: offset(page, pageSize),
		Limit:  pageSize,
	}
	if total > 0 {
		w.TotalPages = (total + pageSize - 1) / pageSize
	}
	return w
}

// Empty reports whether the window selects no rows out of total.
// Listing routes answer an empty window with not found, not an empty list.
func (w Window) Empty(total int) bool {
	return w.Offset < 0 || w.Offset >= total
}

func offset(page, pageSize int) int {
	if page < 1 {
		return -1
	}
	if pageSize > 0 && page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}
