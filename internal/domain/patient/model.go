package patient

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Patient is one stored document in the patients collection. The
// document body is schemaless on purpose: batches ingested over the
// years carry different shapes, and the store accepts them all.
// Normalization into one canonical record happens at the viewer's
// ingestion boundary, not here.
type Patient struct {
	ID        uuid.UUID      `json:"-"`
	Doc       map[string]any `json:"-"`
	CreatedAt time.Time      `json:"-"`
}

// MarshalJSON flattens the raw document with the server-assigned
// identity, which is how the wire format has always looked: the
// document's own fields at the top level plus _id.
func (p *Patient) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Doc)+1)
	for k, v := range p.Doc {
		out[k] = v
	}
	out["_id"] = p.ID.String()
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object as the document body. A client
// supplied _id is dropped; identity is server-assigned.
func (p *Patient) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	delete(doc, "_id")
	p.Doc = doc
	return nil
}
