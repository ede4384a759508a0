package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Invariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		page, limit     int
		total           int
		wantTotalPages  int
		wantHasNext     bool
		wantHasPrevious bool
	}{
		{"empty set", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 3, 1, false, false},
		{"exact boundary", 1, 10, 10, 1, false, false},
		{"one over boundary", 1, 10, 11, 2, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
		{"limit one", 7, 1, 9, 9, true, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := New([]int{}, tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.wantTotalPages, p.TotalPages)
			assert.Equal(t, tc.wantHasNext, p.HasNext)
			assert.Equal(t, tc.wantHasPrevious, p.HasPrevious)
		})
	}
}

func TestSlice_ItemCount(t *testing.T) {
	t.Parallel()

	all := make([]int, 35)
	for i := range all {
		all[i] = i
	}

	// len(items) = min(limit, total-(page-1)*limit) clamped to >= 0.
	cases := []struct {
		page, limit, wantLen int
	}{
		{1, 10, 10},
		{3, 10, 10},
		{4, 10, 5},
		{5, 10, 0},
		{50, 10, 0},
		{1, 100, 35},
	}
	for _, tc := range cases {
		p := Slice(all, tc.page, tc.limit)
		assert.Len(t, p.Items, tc.wantLen, "page=%d limit=%d", tc.page, tc.limit)
		assert.Equal(t, 35, p.Total)
		assert.LessOrEqual(t, len(p.Items), p.Limit)
	}

	// Items keep the source order.
	p := Slice(all, 2, 10)
	assert.Equal(t, 10, p.Items[0])
	assert.Equal(t, 19, p.Items[9])
}

func TestSlice_DefaultsLimit(t *testing.T) {
	t.Parallel()

	all := make([]int, 25)
	p := Slice(all, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Len(t, p.Items, DefaultLimit)
}

func TestWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name             string
		current, total   int
		size             int
		want             []int
	}{
		{"centered", 5, 9, 5, []int{3, 4, 5, 6, 7}},
		{"clamped left", 1, 9, 5, []int{1, 2, 3, 4, 5}},
		{"clamped right recenters", 9, 9, 5, []int{5, 6, 7, 8, 9}},
		{"near right edge", 8, 9, 5, []int{5, 6, 7, 8, 9}},
		{"fewer pages than window", 2, 3, 5, []int{1, 2, 3}},
		{"single page", 1, 1, 5, []int{1}},
		{"no pages", 1, 0, 5, nil},
		{"current beyond total clamps", 42, 6, 5, []int{2, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Window(tc.current, tc.total, tc.size))
		})
	}
}
