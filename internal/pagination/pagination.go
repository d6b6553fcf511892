// Package pagination slices ordered result sets into fixed-size page windows.
package pagination

import "strconv"

// PageSize is the number of items on every listing page.
const PageSize = 10

// Window describes one page of a result set of Total items. Number is always
// a valid 1-based page: requests below the first page clamp to 1, requests
// beyond the last clamp to the last page.
type Window struct {
	Number     int
	TotalPages int
	Total      int64
	Offset     int
	Limit      int
}

// FromQuery builds a window from the raw "page" query value. Absent or
// non-numeric values resolve to page 1.
func FromQuery(total int64, raw string) Window {
	n, err := strconv.Atoi(raw)
	if err != nil {
		n = 1
	}
	return New(total, n)
}

// New builds a clamped window for the given 1-based page number.
func New(total int64, number int) Window {
	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		// an empty set still renders one empty page
		pages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	return Window{
		Number:     number,
		TotalPages: pages,
		Total:      total,
		Offset:     (number - 1) * PageSize,
		Limit:      PageSize,
	}
}

func (w Window) HasNext() bool     { return w.Number < w.TotalPages }
func (w Window) HasPrevious() bool { return w.Number > 1 }
func (w Window) NextNumber() int   { return w.Number + 1 }
func (w Window) PrevNumber() int   { return w.Number - 1 }
