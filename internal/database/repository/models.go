package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Property represents a properties row with its ordered features.
type Property struct {
	ID               string
	Title            string
	Description      string
	Location         string
	Contact          string
	Price            string
	ImageURL         string
	FundedPercentage int
	SortOrder        int
	Features         []string
	UpdatedAt        time.Time
}
