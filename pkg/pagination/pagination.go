// Package pagination provides the page-state math for the tabular view:
// a zero-based page index over a fixed page size, clamped against the
// current total so a shrinking result set can never leave the view on an
// out-of-range page.
package pagination

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSizes are the selectable page sizes, in presentation order.
var PageSizes = []int{10, 20, 30, 40, 50}

// State holds the paging axis of the view: current page index and page
// size. The zero value is usable and means "first page, default size"
// once normalized through Clamp.
type State struct {
	Index int `json:"page_index"`
	Size  int `json:"page_size"`
}

// New returns a State on the first page with the given size, falling
// back to DefaultPageSize for non-positive sizes.
func New(size int) State {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return State{Index: 0, Size: size}
}

// PageCount returns ceil(total/Size) for the given total, 0 for an
// empty set.
func (s State) PageCount(total int) int {
	if total <= 0 || s.Size <= 0 {
		return 0
	}
	return (total + s.Size - 1) / s.Size
}

// Clamp snaps the index into [0, pageCount-1] for the given total. An
// empty set clamps to index 0.
func (s State) Clamp(total int) State {
	if s.Size <= 0 {
		s.Size = DefaultPageSize
	}
	last := s.PageCount(total) - 1
	if last < 0 {
		last = 0
	}
	if s.Index > last {
		s.Index = last
	}
	if s.Index < 0 {
		s.Index = 0
	}
	return s
}

// Bounds returns the half-open slice bounds [lo, hi) of the current
// page within a set of the given total, after clamping.
func (s State) Bounds(total int) (int, int) {
	s = s.Clamp(total)
	lo := s.Index * s.Size
	if lo > total {
		lo = total
	}
	hi := lo + s.Size
	if hi > total {
		hi = total
	}
	return lo, hi
}

// First returns the state moved to the first page.
func (s State) First() State {
	s.Index = 0
	return s
}

// Prev returns the state moved back one page, not before the first.
func (s State) Prev() State {
	if s.Index > 0 {
		s.Index--
	}
	return s
}

// Next returns the state moved forward one page, clamped to the last
// page of the given total.
func (s State) Next(total int) State {
	s.Index++
	return s.Clamp(total)
}

// Last returns the state moved to the last page of the given total.
func (s State) Last(total int) State {
	s.Index = s.PageCount(total) - 1
	return s.Clamp(total)
}

// JumpTo returns the state moved to the given index, clamped.
func (s State) JumpTo(index, total int) State {
	s.Index = index
	return s.Clamp(total)
}

// SetSize returns the state with a new page size and the index reset to
// the first page.
func (s State) SetSize(size int) State {
	return New(size)
}

// HasPrev reports whether a previous page exists.
func (s State) HasPrev() bool { return s.Index > 0 }

// HasNext reports whether a next page exists for the given total.
func (s State) HasNext(total int) bool {
	return s.Index < s.PageCount(total)-1
}

// Response wraps one rendered page for the HTTP view surface.
type Response struct {
	Data      interface{} `json:"data"`
	Total     int         `json:"total"`
	PageIndex int         `json:"page_index"`
	PageSize  int         `json:"page_size"`
	PageCount int         `json:"page_count"`
	HasPrev   bool        `json:"has_prev"`
	HasNext   bool        `json:"has_next"`
}

// NewResponse builds the page envelope for the given state and total.
func NewResponse(data interface{}, total int, s State) *Response {
	s = s.Clamp(total)
	return &Response{
		Data:      data,
		Total:     total,
		PageIndex: s.Index,
		PageSize:  s.Size,
		PageCount: s.PageCount(total),
		HasPrev:   s.HasPrev(),
		HasNext:   s.HasNext(total),
	}
}

// ParseIndex parses a page index from query-string text, -1 when the
// text is not a number.
func ParseIndex(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
