package patient

import "context"

// Repository is the schemaless collection surface the original store
// exposed: bulk insert, wipe, full scan, and single-document save. No
// document shape validation happens at this layer.
type Repository interface {
	InsertMany(ctx context.Context, docs []map[string]any) (int, error)
	DeleteAll(ctx context.Context) (int, error)
	Find(ctx context.Context) ([]*Patient, error)
	Save(ctx context.Context, doc map[string]any) (*Patient, error)
}
