// Package pagination implements the offset-based page contract shared by the
// directory listings and their HTTP responses.
package pagination

// DefaultLimit is applied when a caller omits or zeroes the page size.
const DefaultLimit = 10

// DefaultWindowSize is the width of the page-number window rendered by
// pagination controls.
const DefaultWindowSize = 5

// Page is one page of an ordered result set.
//
// Invariants: TotalPages = ceil(Total/Limit), HasNext = Page < TotalPages,
// HasPrevious = Page > 1, len(Items) <= Limit.
type Page[T any] struct {
	Items       []T
	Page        int
	Limit       int
	Total       int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// Clamp normalizes raw page/limit query values: limit defaults to
// DefaultLimit, page is 1-based.
func Clamp(page, limit int) (int, int) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	return page, limit
}

// New assembles a Page from an already-sliced item set and the total count of
// the underlying result.
func New[T any](items []T, page, limit, total int) Page[T] {
	page, limit = Clamp(page, limit)
	totalPages := (total + limit - 1) / limit
	return Page[T]{
		Items:       items,
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Slice cuts the requested page out of the full ordered result set and wraps
// it in a Page. Out-of-range pages yield an empty item list with intact
// counters.
func Slice[T any](all []T, page, limit int) Page[T] {
	page, limit = Clamp(page, limit)
	total := len(all)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return New(items, page, limit, total)
}

// Window computes the bounded run of page numbers centered on current,
// clamped to [1, totalPages] and re-centered at either boundary so the
// window keeps its width whenever enough pages exist.
func Window(current, totalPages, size int) []int {
	if totalPages < 1 {
		return nil
	}
	if size < 1 {
		size = DefaultWindowSize
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
	}
	if s := end - size + 1; s > 1 {
		start = s
	} else {
		start = 1
	}

	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}
