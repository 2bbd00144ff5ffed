package dbops

import (
	"context"
	"fmt"

	"github.com/pingcap/errors"
	"github.com/rs/zerolog"

	"github.com/anglinb/snowforge/internal/querybuilder"
	"github.com/anglinb/snowforge/internal/snowflakeclient"
)

type impl struct {
	snowflakeClient snowflakeclient.SnowflakeClient
	logger          zerolog.Logger
}

func NewClient(snowflakeClient snowflakeclient.SnowflakeClient, logger zerolog.Logger) (Client, error) {
	if snowflakeClient == nil {
		return nil, errors.New("snowflake client cannot be nil")
	}
	return &impl{
		snowflakeClient: snowflakeClient,
		logger:          logger,
	}, nil
}

// exec runs a rendered statement in its own transaction, or joins the enclosing
// one when called from a workflow.
func (i *impl) exec(ctx context.Context, kind StepKind, name string, statement querybuilder.Statement) error {
	sql := statement.SQL()
	logger := i.logger.With().Str("kind", string(kind)).Str("entity", name).Logger()
	logger.Debug().Str("statement", sql).Msg("running statement")

	err := i.snowflakeClient.Transaction(ctx, func(ctx context.Context) error {
		return i.snowflakeClient.Exec(ctx, sql)
	})
	if err != nil {
		logger.Error().Err(err).Str("statement", sql).Msg("statement failed")
		return errors.WithMessage(err, fmt.Sprintf("error running %s for %q", kind, name))
	}

	logger.Info().Msg("statement succeeded")
	return nil
}

func (i *impl) ExecuteSQL(ctx context.Context, sql string) ([]snowflakeclient.Row, error) {
	var rows []snowflakeclient.Row
	err := i.snowflakeClient.Transaction(ctx, func(ctx context.Context) error {
		var err error
		rows, err = i.snowflakeClient.Query(ctx, sql)
		return err
	})
	if err != nil {
		i.logger.Error().Err(err).Str("statement", sql).Msg("query failed")
		return nil, errors.WithMessage(err, "error running query")
	}
	return rows, nil
}

func (i *impl) Close() error {
	return i.snowflakeClient.Close()
}
