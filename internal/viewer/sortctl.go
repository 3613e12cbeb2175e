package viewer

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/ehiview/ehiview/internal/record"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// MarshalJSON renders the direction as its query-string form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the same text form.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDirection(s)
	return nil
}

// ParseDirection maps query-string text to a Direction, defaulting to
// ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

// SortState is the sorting axis of the view. An empty Column means no
// sort: rows stay in insertion order.
type SortState struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Toggle applies one column click: selecting the current column flips
// the direction, switching columns resets to ascending.
func (s SortState) Toggle(column string) SortState {
	column = record.CanonicalField(column)
	if column == "" {
		return SortState{}
	}
	if s.Column == column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return SortState{Column: column, Direction: Ascending}
}

// Sort orders records by the state's column with a stable tie-break:
// records with equal keys keep their relative order from the input. The
// column may be a dotted path into the raw document. The input slice is
// never mutated; with no column set it is returned as is. Records
// missing the sort field go to the end in either direction.
func Sort(records []*record.Record, s SortState) []*record.Record {
	if s.Column == "" {
		return records
	}

	out := make([]*record.Record, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		vi, oki := record.Resolve(out[i], s.Column)
		vj, okj := record.Resolve(out[j], s.Column)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		c := compareValues(vi, vj)
		if s.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compareValues orders two present values by their underlying type:
// dates by timestamp, numbers numerically, everything else as
// case-insensitive text. Mixed-type pairs fall back to text so a batch
// with drifting value types still orders deterministically.
func compareValues(a, b record.Value) int {
	if a.Kind == record.KindDate && b.Kind == record.KindDate {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	}
	if a.Kind == record.KindNumber && b.Kind == record.KindNumber {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}
