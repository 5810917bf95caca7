// Package sql implements a SQL database.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/codenames/db"
)

type (
	// Database is a SQL database with additional configuration.
	Database struct {
		DB *sql.DB
		db.Config
	}

	// DatabaseConfig contains the properties to open a Database.
	DatabaseConfig struct {
		// DriverName is the name of the registered driver, such as postgres or sqlite.
		DriverName string
		// DatabaseURL is the data source the driver connects to.
		DatabaseURL string
		// MaxOpenConns limits the connections to the database if positive.
		MaxOpenConns int
		db.Config
	}

	// Scanner reads a row from the database.
	Scanner interface {
		// Scan reads the columns of the row into the destination array.
		Scan(dest ...interface{}) error
	}
)

// NewDatabase opens a Database with the driver.
func (cfg DatabaseConfig) NewDatabase() (*Database, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating sql database: validation: %w", err)
	}
	sqlDB, err := sql.Open(cfg.DriverName, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	d := Database{
		DB:     sqlDB,
		Config: cfg.Config,
	}
	return &d, nil
}

// validate ensures the configuration has no errors.
func (cfg DatabaseConfig) validate() error {
	switch {
	case len(cfg.DriverName) == 0:
		return fmt.Errorf("driver name required")
	case cfg.QueryPeriod <= 0:
		return fmt.Errorf("positive query period required")
	}
	return nil
}

// Setup initializes the database by reading the files and executing their contents as raw queries.
func (db Database) Setup(ctx context.Context, files []io.Reader) error {
	queries := make([]Query, len(files))
	for i, f := range files {
		b, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading sql setup query %v: %w", i, err)
		}
		queries[i] = RawQuery(b)
	}
	if err := db.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("running setup queries %w", err)
	}
	return nil
}

// Query reads the rows of the query, calling the scan function for each one.
func (db Database) Query(ctx context.Context, q Query, scanRow func(s Scanner) error) error {
	ctx, cancelFunc := context.WithTimeout(ctx, db.QueryPeriod)
	defer cancelFunc()
	rows, err := db.DB.QueryContext(ctx, q.Cmd(), q.Args()...)
	if err != nil {
		return fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scanRow(rows); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading rows: %w", err)
	}
	return nil
}

// Exec evaluates multiple queries in a transaction, ensuring each ExecFunction only updates one row.
func (db Database) Exec(ctx context.Context, queries ...Query) error {
	ctx, cancelFunc := context.WithTimeout(ctx, db.QueryPeriod)
	defer cancelFunc()
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for i, q := range queries {
		result, err := tx.ExecContext(ctx, q.Cmd(), q.Args()...)
		if f, ok := q.(ExecFunction); err == nil && ok {
			var n int64
			n, err = result.RowsAffected()
			if err == nil && n != 1 {
				err = fmt.Errorf("wanted to update 1 row, but updated %d when calling %s", n, f.name)
			}
		}
		if err != nil {
			err = fmt.Errorf("executing query %v: %w", i, err)
			if err2 := tx.Rollback(); err2 != nil {
				return fmt.Errorf("rolling back transaction due to %v: %w", err, err2)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database.
func (db Database) Close() error {
	return db.DB.Close()
}
