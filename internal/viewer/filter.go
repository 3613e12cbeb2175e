// Package viewer implements the table-view core over the fetched
// patient set: free-text filtering, type-aware stable sorting, page
// state, detail projection, and the view session that ties the three
// state axes together.
package viewer

import (
	"strings"

	"github.com/ehiview/ehiview/internal/record"
)

// IdentityFields is the narrow search allow-list used when the view is
// configured for identity search instead of search-all.
var IdentityFields = []string{"firstname", "lastname", "athenapatientid", "ssn"}

// Filter returns the subset of records whose searched fields contain
// term as a case-folded substring. A nil or empty field list means
// search-all: every field on each record is searched. An allow-list
// entry may be a dotted path reaching into the raw document. An empty
// term is a no-op and returns the input unchanged in membership and
// order. Absent fields never match and never error.
func Filter(records []*record.Record, term string, fields []string) []*record.Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	out := make([]*record.Record, 0, len(records))
	for _, r := range records {
		if matches(r, needle, fields) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *record.Record, needle string, fields []string) bool {
	if len(fields) == 0 {
		fields = r.Fields()
	}
	for _, f := range fields {
		v, ok := record.Resolve(r, f)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}
