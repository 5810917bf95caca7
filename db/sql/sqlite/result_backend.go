// Package sqlite stores results in an embedded SQLite database file.
package sqlite

import (
	"bytes"
	"context"
	_ "embed" // setup.sql
	"fmt"
	"io"
	"time"

	"github.com/jacobpatterson1549/codenames/db/result"
	"github.com/jacobpatterson1549/codenames/db/sql"
	"github.com/jacobpatterson1549/codenames/game"
)

type (
	// ResultBackend manages results in a SQLite database.
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

// DriverName is the name the modernc.org/sqlite driver registers.
const DriverName = "sqlite"

const (
	insertResult  = "INSERT INTO results (game_id, winner, red_players, blue_players, finished_at) VALUES (?, ?, ?, ?, ?)"
	selectResults = "SELECT game_id, winner, red_players, blue_players, finished_at FROM results ORDER BY finished_at DESC, rowid DESC LIMIT ?"
)

//go:embed setup.sql
var setupSQL []byte

// Setup creates the results table.
func (rb *ResultBackend) Setup(ctx context.Context) error {
	files := []io.Reader{
		bytes.NewReader(setupSQL),
	}
	return rb.Database.Setup(ctx, files)
}

// Create adds the result.  Finish times are stored as seconds since the unix epoch.
func (rb *ResultBackend) Create(ctx context.Context, r game.Result) error {
	red, err := result.EncodeNames(r.RedPlayers)
	if err != nil {
		return err
	}
	blue, err := result.EncodeNames(r.BluePlayers)
	if err != nil {
		return err
	}
	q := sql.NewStatement(insertResult, string(r.GameID), string(r.Winner), red, blue, r.FinishedAt.Unix())
	if err := rb.Database.Exec(ctx, q); err != nil {
		return fmt.Errorf("creating result: %w", err)
	}
	return nil
}

// List reads the newest results.
func (rb *ResultBackend) List(ctx context.Context, limit int) ([]game.Result, error) {
	q := sql.NewStatement(selectResults, limit)
	results := []game.Result{}
	scanRow := func(s sql.Scanner) error {
		var r game.Result
		var red, blue string
		var finishedSec int64
		if err := s.Scan(&r.GameID, &r.Winner, &red, &blue, &finishedSec); err != nil {
			return err
		}
		var err error
		if r.RedPlayers, err = result.DecodeNames(red); err != nil {
			return err
		}
		if r.BluePlayers, err = result.DecodeNames(blue); err != nil {
			return err
		}
		r.FinishedAt = time.Unix(finishedSec, 0).UTC()
		results = append(results, r)
		return nil
	}
	if err := rb.Database.Query(ctx, q, scanRow); err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return results, nil
}
