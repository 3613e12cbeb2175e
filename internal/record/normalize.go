package record

import (
	"sort"
	"strconv"
	"strings"
)

// Keys that mark a document as the nested snapshot shape.
const (
	detailsKey      = "patientdetails"
	demographicsKey = "patientdemographics"
)

// identityFields are tried in order when picking a record's stable ID.
var identityFields = []string{"athenapatientid", "enterpriseid", "patientid", "id"}

// Normalize classifies a raw ingested document into one of the known
// shape variants and builds the canonical Record. pos is the document's
// position in the fetched batch; it becomes the ID when the document
// carries no identifier field. No shape is rejected: anything
// unrecognized degrades to a record whose lookups resolve absent.
func Normalize(raw map[string]any, pos int) *Record {
	r := &Record{
		Variant: classifyShape(raw),
		fields:  make(map[string]Value),
		raw:     raw,
	}

	switch r.Variant {
	case VariantNested:
		normalizeNested(r, raw)
	case VariantItemized:
		normalizeItemized(r, raw)
	case VariantFlat:
		normalizeFlat(r, raw)
	}

	r.ID = pickIdentity(r, raw, pos)
	return r
}

// NormalizeAll normalizes one fetched batch, assigning positional
// indices in order.
func NormalizeAll(raws []map[string]any) []*Record {
	records := make([]*Record, 0, len(raws))
	for i, raw := range raws {
		records = append(records, Normalize(raw, i))
	}
	return records
}

func classifyShape(raw map[string]any) Variant {
	if raw == nil {
		return VariantUnknown
	}
	if _, ok := raw[detailsKey]; ok {
		return VariantNested
	}
	if _, ok := raw[demographicsKey]; ok {
		return VariantNested
	}
	categories := 0
	scalars := 0
	for k, v := range raw {
		if isMetaKey(k) {
			continue
		}
		switch v.(type) {
		case []any:
			categories++
		case map[string]any:
		default:
			scalars++
		}
	}
	if categories > 0 {
		return VariantItemized
	}
	if scalars > 0 {
		return VariantFlat
	}
	return VariantUnknown
}

// isMetaKey filters store-assigned bookkeeping keys out of the field
// set. They still participate in identity selection.
func isMetaKey(k string) bool {
	switch CanonicalField(k) {
	case "v", "createdat", "updatedat":
		return true
	}
	return strings.HasPrefix(k, "__")
}

func normalizeFlat(r *Record, raw map[string]any) {
	for _, k := range stableKeys(raw) {
		if isMetaKey(k) {
			continue
		}
		r.set(k, classify(CanonicalField(k), raw[k]))
	}
}

func normalizeNested(r *Record, raw map[string]any) {
	if details, ok := raw[detailsKey].(map[string]any); ok {
		for _, k := range stableKeys(details) {
			r.set(k, classify(CanonicalField(k), details[k]))
		}
	}
	if snaps, ok := raw[demographicsKey].([]any); ok {
		// Chronological walk: each snapshot overwrites the fields it
		// carries, so a field ends at its most recent snapshot that has
		// it present.
		for _, snap := range sortSnapshots(snaps) {
			for _, k := range stableKeys(snap) {
				r.set(k, classify(CanonicalField(k), snap[k]))
			}
		}
		r.set(demographicsKey, Value{Kind: KindNested, Raw: raw[demographicsKey]})
	}
	// Scalars alongside the nested containers (legacy identifiers).
	for _, k := range stableKeys(raw) {
		if k == detailsKey || k == demographicsKey || isMetaKey(k) {
			continue
		}
		switch raw[k].(type) {
		case map[string]any, []any:
		default:
			r.set(k, classify(CanonicalField(k), raw[k]))
		}
	}
}

func normalizeItemized(r *Record, raw map[string]any) {
	for _, k := range stableKeys(raw) {
		if isMetaKey(k) {
			continue
		}
		r.set(k, classify(CanonicalField(k), raw[k]))
	}
}

func pickIdentity(r *Record, raw map[string]any, pos int) string {
	// Store-assigned _id wins when present.
	if id, ok := raw["_id"].(string); ok && id != "" {
		return id
	}
	for _, f := range identityFields {
		if v, ok := r.Get(f); ok {
			if s := v.String(); s != "" {
				return s
			}
		}
	}
	return strconv.Itoa(pos)
}

// stableKeys returns map keys in a deterministic order so field order,
// and with it positional tie-breaks downstream, do not wobble between
// normalizations of the same document.
func stableKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
