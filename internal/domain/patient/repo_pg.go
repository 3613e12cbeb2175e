package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the PostgreSQL-backed collection: one jsonb
// document column per patient, full-scan retrieval in insertion order.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) InsertMany(ctx context.Context, docs []map[string]any) (int, error) {
	batch := &pgx.Batch{}
	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("marshal patient document: %w", err)
		}
		batch.Queue(`INSERT INTO patients (id, doc) VALUES ($1, $2)`, uuid.New(), body)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("insert patient %d: %w", i, err)
		}
	}
	return batch.Len(), nil
}

func (r *patientRepoPG) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients`)
	if err != nil {
		return 0, fmt.Errorf("delete patients: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *patientRepoPG) Find(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, doc, created_at FROM patients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		var (
			p    Patient
			body []byte
		)
		if err := rows.Scan(&p.ID, &body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		if err := json.Unmarshal(body, &p.Doc); err != nil {
			return nil, fmt.Errorf("decode patient %s: %w", p.ID, err)
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepoPG) Save(ctx context.Context, doc map[string]any) (*Patient, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal patient document: %w", err)
	}

	p := &Patient{ID: uuid.New(), Doc: doc}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO patients (id, doc) VALUES ($1, $2) RETURNING created_at`,
		p.ID, body)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return p, nil
}
