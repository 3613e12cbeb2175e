package pagination

import "testing"

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		total int
		want  int
	}{
		{"exact fit", 10, 30, 3},
		{"partial last page", 10, 25, 3},
		{"single short page", 10, 5, 1},
		{"empty", 10, 0, 0},
		{"one record", 10, 1, 1},
		{"zero size", 0, 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Size: tt.size}
			if got := s.PageCount(tt.total); got != tt.want {
				t.Errorf("PageCount(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		total     int
		wantIndex int
	}{
		{"in range", State{Index: 1, Size: 10}, 25, 1},
		{"past end snaps back", State{Index: 5, Size: 10}, 25, 2},
		{"negative snaps to zero", State{Index: -2, Size: 10}, 25, 0},
		{"empty set", State{Index: 3, Size: 10}, 0, 0},
		{"shrunk below current page", State{Index: 2, Size: 10}, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.Clamp(tt.total)
			if got.Index != tt.wantIndex {
				t.Errorf("Clamp index = %d, want %d", got.Index, tt.wantIndex)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		total  int
		wantLo int
		wantHi int
	}{
		{"first page", State{Index: 0, Size: 10}, 25, 0, 10},
		{"last partial page", State{Index: 2, Size: 10}, 25, 20, 25},
		{"empty", State{Index: 0, Size: 10}, 0, 0, 0},
		{"out of range clamps last", State{Index: 9, Size: 10}, 25, 20, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.state.Bounds(tt.total)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("Bounds = [%d, %d), want [%d, %d)", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	total := 45 // 5 pages of 10
	s := New(10)

	s = s.Next(total)
	if s.Index != 1 {
		t.Errorf("Next: index = %d, want 1", s.Index)
	}
	s = s.Last(total)
	if s.Index != 4 {
		t.Errorf("Last: index = %d, want 4", s.Index)
	}
	s = s.Next(total)
	if s.Index != 4 {
		t.Errorf("Next past last: index = %d, want 4", s.Index)
	}
	s = s.Prev()
	if s.Index != 3 {
		t.Errorf("Prev: index = %d, want 3", s.Index)
	}
	s = s.First()
	if s.Index != 0 {
		t.Errorf("First: index = %d, want 0", s.Index)
	}
	s = s.Prev()
	if s.Index != 0 {
		t.Errorf("Prev before first: index = %d, want 0", s.Index)
	}
	s = s.JumpTo(99, total)
	if s.Index != 4 {
		t.Errorf("JumpTo out of range: index = %d, want 4", s.Index)
	}
	s = s.JumpTo(2, total)
	if s.Index != 2 {
		t.Errorf("JumpTo: index = %d, want 2", s.Index)
	}
}

func TestSetSizeResetsIndex(t *testing.T) {
	s := State{Index: 3, Size: 10}
	s = s.SetSize(20)
	if s.Index != 0 {
		t.Errorf("SetSize should reset index, got %d", s.Index)
	}
	if s.Size != 20 {
		t.Errorf("Size = %d, want 20", s.Size)
	}
	s = s.SetSize(0)
	if s.Size != DefaultPageSize {
		t.Errorf("non-positive size should fall back to default, got %d", s.Size)
	}
	s = s.SetSize(5000)
	if s.Size != MaxPageSize {
		t.Errorf("oversized page should clamp to max, got %d", s.Size)
	}
}

func TestNewResponse(t *testing.T) {
	rows := []string{"a", "b", "c"}
	resp := NewResponse(rows, 25, State{Index: 1, Size: 10})

	if resp.Total != 25 || resp.PageIndex != 1 || resp.PageCount != 3 {
		t.Errorf("unexpected envelope: %+v", resp)
	}
	if !resp.HasPrev || !resp.HasNext {
		t.Errorf("middle page should have both neighbors: %+v", resp)
	}

	resp = NewResponse(nil, 0, State{Index: 4, Size: 10})
	if resp.PageIndex != 0 || resp.PageCount != 0 || resp.HasNext || resp.HasPrev {
		t.Errorf("empty set envelope: %+v", resp)
	}
}

func TestParseIndex(t *testing.T) {
	if got := ParseIndex("3"); got != 3 {
		t.Errorf("ParseIndex(3) = %d", got)
	}
	if got := ParseIndex("x"); got != -1 {
		t.Errorf("ParseIndex(x) = %d, want -1", got)
	}
}
