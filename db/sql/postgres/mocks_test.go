package postgres

import (
	"context"
	"io"
	"time"

	"github.com/jacobpatterson1549/codenames/db/sql"
	"github.com/jacobpatterson1549/codenames/game"
)

type mockDatabase struct {
	SetupFunc func(ctx context.Context, files []io.Reader) error
	QueryFunc func(ctx context.Context, q sql.Query, scanRow func(s sql.Scanner) error) error
	ExecFunc  func(ctx context.Context, queries ...sql.Query) error
}

func (m mockDatabase) Setup(ctx context.Context, files []io.Reader) error {
	return m.SetupFunc(ctx, files)
}

func (m mockDatabase) Query(ctx context.Context, q sql.Query, scanRow func(s sql.Scanner) error) error {
	return m.QueryFunc(ctx, q, scanRow)
}

func (m mockDatabase) Exec(ctx context.Context, queries ...sql.Query) error {
	return m.ExecFunc(ctx, queries...)
}

// mockScanner copies its values into the destinations of scans.
type mockScanner []interface{}

func (m mockScanner) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch d := d.(type) {
		case *game.ID:
			*d = m[i].(game.ID)
		case *game.Team:
			*d = m[i].(game.Team)
		case *string:
			*d = m[i].(string)
		case *time.Time:
			*d = m[i].(time.Time)
		}
	}
	return nil
}
