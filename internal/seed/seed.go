// Package seed loads patient documents from a JSON file and replaces the
// contents of the patient store with them. It backs the `seed` command,
// which mirrors the reseed endpoint for local development and demos.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"

	"github.com/ehiview/ehiview/internal/domain/patient"
)

// Load reads a JSON file containing an array of patient documents. The
// documents are schemaless: any JSON object is accepted.
func Load(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	list, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("seed file %s: expected a JSON array of objects", path)
	}

	docs := make([]map[string]any, 0, len(list))
	for i, item := range list {
		doc, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("seed file %s: element %d is not an object", path, i)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// Run loads the seed file at path and reseeds the patient store with its
// contents, discarding whatever was there before.
func Run(ctx context.Context, svc *patient.Service, path string, log zerolog.Logger) error {
	docs, err := Load(path)
	if err != nil {
		return err
	}

	deleted, inserted, err := svc.Reseed(ctx, docs)
	if err != nil {
		return fmt.Errorf("reseed patient store: %w", err)
	}

	log.Info().
		Str("file", path).
		Int("deleted", deleted).
		Int("inserted", inserted).
		Msg("patient store reseeded")

	return nil
}
