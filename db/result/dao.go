// Package result saves and reads the results of finished games.
package result

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// Dao validates results before they are stored in the backend.
	Dao struct {
		backend Backend
	}

	// Backend stores results.
	Backend interface {
		// Create adds the result.
		Create(ctx context.Context, r game.Result) error
		// List reads the most recently finished results, newest first.
		List(ctx context.Context, limit int) ([]game.Result, error)
	}
)

// NewDao creates a Dao on the specified backend.
func NewDao(b Backend) (*Dao, error) {
	if b == nil {
		return nil, fmt.Errorf("creating result dao: validation: backend required")
	}
	d := Dao{
		backend: b,
	}
	return &d, nil
}

// SaveResult stores the result of a finished game.
func (d Dao) SaveResult(ctx context.Context, r game.Result) error {
	switch {
	case len(r.GameID) == 0:
		return fmt.Errorf("saving result: game id required")
	case !r.Winner.Valid():
		return fmt.Errorf("saving result: invalid winner: %q", r.Winner)
	case r.FinishedAt.IsZero():
		return fmt.Errorf("saving result: finish time required")
	}
	if err := d.backend.Create(ctx, r); err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// Results reads up to limit of the most recent results.
func (d Dao) Results(ctx context.Context, limit int) ([]game.Result, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("reading results: positive limit required")
	}
	results, err := d.backend.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return results, nil
}

// Backend is the storage of the dao.
func (d Dao) Backend() Backend {
	return d.backend
}

// EncodeNames joins the player names into text that can be stored in a single column.
func EncodeNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("encoding names: %w", err)
	}
	return string(b), nil
}

// DecodeNames splits the text of EncodeNames back into names.
func DecodeNames(text string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("decoding names: %w", err)
	}
	return names, nil
}
