package patient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memRepo is the in-memory collection used by tests and seed dry runs.
type memRepo struct {
	mu       sync.Mutex
	patients []*Patient
}

// NewRepoMem returns an empty in-memory Repository.
func NewRepoMem() Repository {
	return &memRepo{}
}

func (r *memRepo) InsertMany(ctx context.Context, docs []map[string]any) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range docs {
		r.patients = append(r.patients, &Patient{
			ID:        uuid.New(),
			Doc:       doc,
			CreatedAt: time.Now(),
		})
	}
	return len(docs), nil
}

func (r *memRepo) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.patients)
	r.patients = nil
	return n, nil
}

func (r *memRepo) Find(ctx context.Context) ([]*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

func (r *memRepo) Save(ctx context.Context, doc map[string]any) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &Patient{ID: uuid.New(), Doc: doc, CreatedAt: time.Now()}
	r.patients = append(r.patients, p)
	return p, nil
}
