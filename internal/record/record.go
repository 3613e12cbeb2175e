// Package record defines the normalized patient record and the typed
// field-access boundary over the historical document shapes kept in the
// backing store. All shape inspection lives here; callers see one uniform
// read contract regardless of which era a document was ingested in.
package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Variant identifies which historical document shape a record was
// ingested from.
type Variant int

const (
	// VariantUnknown covers shapes none of the classifiers recognize.
	// Lookups on such records resolve to absent rather than failing.
	VariantUnknown Variant = iota
	// VariantFlat is the original shape: upper-case demographic fields
	// directly on the document (FIRSTNAME, LASTNAME, DOB, ...).
	VariantFlat
	// VariantNested carries a patientdetails object plus a
	// patientdemographics array of time-ordered snapshots.
	VariantNested
	// VariantItemized carries per-category arrays (medications,
	// allergies, ...) alongside flat or nested demographics.
	VariantItemized
)

func (v Variant) String() string {
	switch v {
	case VariantFlat:
		return "flat"
	case VariantNested:
		return "nested"
	case VariantItemized:
		return "itemized"
	default:
		return "unknown"
	}
}

// Kind discriminates the value sum type.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindNested // array or object value, displayed as serialized JSON
)

// Value is one field value on a normalized record: string, number,
// boolean, date, or a nested structure. Absent is the zero Value.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Date time.Time
	Raw  any
}

// Absent reports whether the value is missing.
func (v Value) Absent() bool { return v.Kind == KindAbsent }

// String returns the search/compare form of the value. Dates keep their
// raw ingested text here so that filtering and ordering never operate on
// a formatted string.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Str
	case KindNested:
		b, err := json.Marshal(v.Raw)
		if err != nil {
			return fmt.Sprintf("%v", v.Raw)
		}
		return string(b)
	default:
		return ""
	}
}

// DisplayDateLayout is the locale date form used at the presentation
// boundary.
const DisplayDateLayout = "01/02/2006"

// Display returns the presentation form of the value. Only here are
// dates rendered as a locale date string; malformed values were never
// classified as dates, so they fall through as their raw text.
func (v Value) Display() string {
	if v.Kind == KindDate {
		return v.Date.Format(DisplayDateLayout)
	}
	return v.String()
}

// Record is the canonical normalized patient record. Fields is an open
// set: different ingested batches carry different subsets of the known
// superset, and unrecognized extras are preserved.
type Record struct {
	// ID is the stable UI key: a supplied identifier when the document
	// has one, otherwise the positional index assigned at ingestion.
	// Positional IDs are stable only for the lifetime of one batch.
	ID      string
	Variant Variant

	fields map[string]Value
	order  []string
	raw    map[string]any
}

// Fields returns the canonical field names in ingestion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Raw returns the original document the record was normalized from.
func (r *Record) Raw() map[string]any { return r.raw }

// Get resolves a logical field name to its value. Lookup is
// case-insensitive and tolerant of underscores, so "last name",
// "LASTNAME" and "lastname" all resolve the same field. A missing field
// yields the absent Value, never an error.
func (r *Record) Get(field string) (Value, bool) {
	if r == nil || r.fields == nil {
		return Value{}, false
	}
	v, ok := r.fields[CanonicalField(field)]
	if !ok || v.Absent() {
		return Value{}, false
	}
	return v, true
}

func (r *Record) set(field string, v Value) {
	key := CanonicalField(field)
	if key == "" || v.Absent() {
		return
	}
	if _, exists := r.fields[key]; !exists {
		r.order = append(r.order, key)
	}
	r.fields[key] = v
}

// CanonicalField folds a logical field name to its canonical form:
// lower case with spaces and underscores removed.
func CanonicalField(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// dateLayouts are the ingested date forms seen across batches.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate attempts to interpret s as a date. The bool result is false
// for anything that does not match a known layout; callers fall back to
// the raw string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateField reports whether a canonical field name is date-carrying.
// Only these fields are eligible for date classification; everything
// else keeps its raw string so identifiers like SSNs never turn into
// timestamps.
func dateField(name string) bool {
	return name == "dob" || name == "lastupdated" ||
		strings.HasSuffix(name, "date") || strings.HasSuffix(name, "datetime")
}

// classify converts a raw JSON value into a typed Value for the given
// canonical field name.
func classify(name string, raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case string:
		if dateField(name) {
			if t, ok := ParseDate(v); ok {
				return Value{Kind: KindDate, Date: t, Str: v, Raw: raw}
			}
		}
		return Value{Kind: KindString, Str: v, Raw: raw}
	case bool:
		return Value{Kind: KindBool, Bool: v, Raw: raw}
	case float64:
		return Value{Kind: KindNumber, Num: v, Raw: raw}
	case int:
		return Value{Kind: KindNumber, Num: float64(v), Raw: raw}
	case int64:
		return Value{Kind: KindNumber, Num: float64(v), Raw: raw}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{Kind: KindString, Str: v.String(), Raw: raw}
		}
		return Value{Kind: KindNumber, Num: f, Raw: raw}
	case map[string]any, []any:
		return Value{Kind: KindNested, Raw: raw}
	default:
		return Value{Kind: KindString, Str: fmt.Sprintf("%v", raw), Raw: raw}
	}
}

// snapshotTime extracts the lastupdated instant of one demographics
// snapshot, zero when missing or unparseable.
func snapshotTime(snap map[string]any) time.Time {
	for k, v := range snap {
		if CanonicalField(k) != "lastupdated" {
			continue
		}
		if s, ok := v.(string); ok {
			if t, ok := ParseDate(s); ok {
				return t
			}
		}
	}
	return time.Time{}
}

// sortSnapshots returns the snapshots in chronological order by
// lastupdated, preserving ingestion order for equal or missing stamps.
func sortSnapshots(raws []any) []map[string]any {
	snaps := make([]map[string]any, 0, len(raws))
	for _, r := range raws {
		if m, ok := r.(map[string]any); ok {
			snaps = append(snaps, m)
		}
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		return snapshotTime(snaps[i]).Before(snapshotTime(snaps[j]))
	})
	return snaps
}
