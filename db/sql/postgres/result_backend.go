// Package postgres stores results in a Postgres SQL Database.
package postgres

import (
	"bytes"
	"context"
	_ "embed" // setup.sql
	"fmt"
	"io"

	"github.com/jacobpatterson1549/codenames/db/result"
	"github.com/jacobpatterson1549/codenames/db/sql"
	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// ResultBackend manages results with functions of a Postgres SQL Database.
	ResultBackend struct {
		Database
	}

	// Database contains methods to read and change data.
	Database interface {
		// Setup initializes the database by reading the files.
		Setup(ctx context.Context, files []io.Reader) error
		// Query reads rows from the database without updating it.
		Query(ctx context.Context, q sql.Query, scanRow func(s sql.Scanner) error) error
		// Exec makes a change to existing data, creating/modifying/removing it.
		Exec(ctx context.Context, queries ...sql.Query) error
	}
)

//go:embed setup.sql
var setupSQL []byte

// resultCols are the columns of the rows of results_read.
var resultCols = []string{
	"game_id",
	"winner",
	"red_players",
	"blue_players",
	"finished_at",
}

// Setup creates the results table and the functions to access it.
func (rb *ResultBackend) Setup(ctx context.Context) error {
	files := []io.Reader{
		bytes.NewReader(setupSQL),
	}
	return rb.Database.Setup(ctx, files)
}

// Create adds the result.
func (rb *ResultBackend) Create(ctx context.Context, r game.Result) error {
	red, err := result.EncodeNames(r.RedPlayers)
	if err != nil {
		return err
	}
	blue, err := result.EncodeNames(r.BluePlayers)
	if err != nil {
		return err
	}
	q := sql.NewExecFunction("result_create", string(r.GameID), string(r.Winner), red, blue, r.FinishedAt)
	if err := rb.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("creating result: %w", err)
	}
	return nil
}

// List reads the newest results.
func (rb *ResultBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	q := sql.NewQueryFunction("results_read", resultCols, limit)
	results := []game.Result{}
	scanRow := func(s sql.Scanner) error {
		var r game.Result
		var red, blue string
		if err := s.Scan(&r.GameID, &r.Winner, &red, &blue, &r.FinishedAt); err != nil {
			return err
		}
		var err error
		if r.RedPlayers, err = result.DecodeNames(red); err != nil {
			return err
		}
		if r.BluePlayers, err = result.DecodeNames(blue); err != nil {
			return err
		}
		r.FinishedAt = r.FinishedAt.UTC()
		results = append(results, r)
		return nil
	}
	if err := rb.Database.Query(ctx, q, scanRow); err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return results, nil
}
