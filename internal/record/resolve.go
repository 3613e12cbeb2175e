package record

import (
	"strings"

	"github.com/ohler55/ojg/jp"
)

// Resolve looks a logical field name up on a record. Plain names go
// through the canonical field map; dotted paths are evaluated against
// the raw document with a JSONPath expression, so callers can reach
// into the nested details object ("patientdetails.city") or any other
// substructure without knowing the record's shape variant. Anything
// that does not resolve yields the absent Value.
func Resolve(r *Record, field string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	if v, ok := r.Get(field); ok {
		return v, true
	}
	if !strings.Contains(field, ".") {
		return Value{}, false
	}
	expr, err := jp.ParseString(field)
	if err != nil {
		return Value{}, false
	}
	results := expr.Get(r.raw)
	if len(results) == 0 {
		return Value{}, false
	}
	v := classify(CanonicalField(leafName(field)), results[0])
	if v.Absent() {
		return Value{}, false
	}
	return v, true
}

func leafName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
