package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate creates missing tables, constraints and indexes. Every statement is
// idempotent so it is safe to run on each start.
func Migrate(ctx context.Context, db PgxIface) error {
	// no arguments: pgx uses the simple protocol, which accepts several statements
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
