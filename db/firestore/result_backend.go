// Package firestore use a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jacobpatterson1549/codenames/db"
	"github.com/jacobpatterson1549/codenames/game"
)

const finishedAtField = "finishedAt"

// ResultBackend is a backend manager for a results collection.
type ResultBackend struct {
	client *firestore.Client
	db.Config
}

func (rb *ResultBackend) resultsCollection() *firestore.CollectionRef {
	return rb.client.Collection("services").Doc("codenames").Collection("results")
}

// NewResultBackend creates a backend manager for results.
func NewResultBackend(ctx context.Context, cfg db.Config, projectID string) (*ResultBackend, error) {
	if cfg.QueryPeriod <= 0 {
		return nil, fmt.Errorf("creating firestore result backend: validation: positive query period required")
	}
	rb := ResultBackend{
		Config: cfg,
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client is used by the backend
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	rb.client = client
	return &rb, nil
}

// withTimeoutContext configures the context to timeout when running the function.
func (rb *ResultBackend) withTimeoutContext(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, rb.QueryPeriod)
	defer cancelFunc()
	return f(ctx)
}

// Create adds the result, keyed by the id of the game.
func (rb *ResultBackend) Create(ctx context.Context, r game.Result) error {
	if err := rb.withTimeoutContext(ctx, func(ctx context.Context) error {
		docRef := rb.resultsCollection().Doc(string(r.GameID))
		_, err := docRef.Create(ctx, r) // returns an error if the result already exists
		return err
	}); err != nil {
		return fmt.Errorf("creating result: %w", err)
	}
	return nil
}

// List reads the newest results.
func (rb *ResultBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	results := []game.Result{}
	if err := rb.withTimeoutContext(ctx, func(ctx context.Context) error {
		q := rb.resultsCollection().OrderBy(finishedAtField, firestore.Desc).Limit(limit)
		snapshots, err := q.Documents(ctx).GetAll()
		if err != nil {
			return err
		}
		for _, s := range snapshots {
			var r game.Result
			if err := s.DataTo(&r); err != nil {
				return err
			}
			r.FinishedAt = r.FinishedAt.UTC()
			results = append(results, r)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return results, nil
}

// Close closes the client.
func (rb *ResultBackend) Close() error {
	return rb.client.Close()
}
