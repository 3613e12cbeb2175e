package patient

import (
	"context"
	"fmt"
)

// Service sits between the HTTP surface and the collection. The store
// is schemaless, so the only gate here is rejecting documents with
// nothing in them.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every stored patient document.
func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.Find(ctx)
}

// Create appends one brand-new document. Existing records are never
// edited through this path.
func (s *Service) Create(ctx context.Context, doc map[string]any) (*Patient, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("patient document must not be empty")
	}
	return s.repo.Save(ctx, doc)
}

// Reseed wipes the collection and loads the given documents, returning
// counts of deleted and inserted records.
func (s *Service) Reseed(ctx context.Context, docs []map[string]any) (deleted, inserted int, err error) {
	deleted, err = s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("clear patients: %w", err)
	}
	inserted, err = s.repo.InsertMany(ctx, docs)
	if err != nil {
		return deleted, inserted, fmt.Errorf("insert patients: %w", err)
	}
	return deleted, inserted, nil
}
