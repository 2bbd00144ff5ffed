package snowflakeclient

import (
	"context"
)

// SnowflakeClient is the statement execution surface used by the orchestrator.
type SnowflakeClient interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	Exec(ctx context.Context, query string) error
	Query(ctx context.Context, query string) ([]Row, error)
	Close() error
}

var _ SnowflakeClient = (*Session)(nil)
