package snowflakeclient

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"

	"github.com/pingcap/errors"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/snowflakedb/gosnowflake"
)

const (
	errNumConnectionReset  = 250001
	errNumConnectionClosed = 250002
	errNumNetworkError     = 90100
)

// Session owns at most one live Snowflake connection. The connection is
// acquired lazily by the outermost Transaction and released when it returns.
//
// A Session is not safe for concurrent use.
type Session struct {
	db     *sql.DB
	config Config
	logger zerolog.Logger

	conn      *sql.Conn
	tx        *sql.Tx
	sessionID string
	depth     int
}

// New opens a Session backed by the gosnowflake driver.
func New(config Config, logger zerolog.Logger) (*Session, error) {
	dsn, err := config.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, errors.WithMessage(err, "error opening snowflake connection")
	}
	if config.AbortSessionOnClose {
		// An aborted session must never go back to the pool.
		db.SetMaxIdleConns(0)
	}

	return NewWithDB(db, config, logger), nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sql.DB, config Config, logger zerolog.Logger) *Session {
	return &Session{
		db:     db,
		config: config.withDefaults(),
		logger: logger,
	}
}

// InTransaction reports whether a Transaction scope is currently open.
func (s *Session) InTransaction() bool {
	return s.depth > 0
}

// Transaction runs fn inside a transaction. Nested calls join the enclosing
// transaction; only the outermost scope begins, commits or rolls back, and
// only the outermost scope is retried on transient connection errors.
func (s *Session) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.depth > 0 {
		s.depth++
		defer func() { s.depth-- }()
		return fn(ctx)
	}

	backoff := retry.WithMaxRetries(uint64(s.config.MaxRetries), retry.NewConstant(s.config.RetryBackoff))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := s.runTransaction(ctx, fn)
		if err != nil && IsRetryable(err) {
			s.logger.Warn().Err(err).Int("attempt", attempt).Msg("transient snowflake error, retrying transaction")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Session) runTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer s.release(ctx)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithMessage(err, "error beginning transaction")
	}
	s.tx = tx
	s.depth = 1
	defer func() {
		s.tx = nil
		s.depth = 0
	}()

	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn().Err(rbErr).Msg("error rolling back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.WithMessage(err, "error committing transaction")
	}
	return nil
}

// Exec runs a statement inside the open transaction, or in a transaction of its
// own when none is open.
func (s *Session) Exec(ctx context.Context, query string) error {
	if s.tx == nil {
		return s.Transaction(ctx, func(ctx context.Context) error {
			return s.Exec(ctx, query)
		})
	}

	s.logger.Debug().Str("statement", query).Msg("executing statement")
	if _, err := s.tx.ExecContext(ctx, query); err != nil {
		s.logger.Error().Err(err).Str("statement", query).Msg("statement failed")
		return err
	}
	return nil
}

// Query runs a statement and returns every result row keyed by column name.
func (s *Session) Query(ctx context.Context, query string) ([]Row, error) {
	if s.tx == nil {
		var result []Row
		err := s.Transaction(ctx, func(ctx context.Context) error {
			var err error
			result, err = s.Query(ctx, query)
			return err
		})
		return result, err
	}

	s.logger.Debug().Str("statement", query).Msg("executing query")
	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("statement", query).Msg("query failed")
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// Close releases any held connection and closes the underlying database handle.
func (s *Session) Close() error {
	s.release(context.Background())
	if err := s.db.Close(); err != nil {
		return errors.WithMessage(err, "error closing snowflake connection")
	}
	return nil
}

func (s *Session) connect(ctx context.Context) (*sql.Conn, error) {
	if s.conn != nil {
		return s.conn, nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "error connecting to snowflake")
	}
	s.conn = conn

	if s.config.AbortSessionOnClose {
		if err := conn.QueryRowContext(ctx, "SELECT CURRENT_SESSION()").Scan(&s.sessionID); err != nil {
			s.logger.Warn().Err(err).Msg("unable to read session id, session will not be aborted on close")
			s.sessionID = ""
		}
	}

	return conn, nil
}

// release aborts the session when configured and closes the connection.
// Failures are logged and never returned so they cannot mask the original error.
func (s *Session) release(ctx context.Context) {
	if s.conn == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	if s.config.AbortSessionOnClose && s.sessionID != "" {
		if _, err := s.conn.ExecContext(ctx, "SELECT SYSTEM$ABORT_SESSION(?)", s.sessionID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", s.sessionID).Msg("failed to abort session")
		}
	}
	if err := s.conn.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close connection")
	}

	s.conn = nil
	s.sessionID = ""
}

// IsRetryable reports whether err is a transient connection failure.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	cause := errors.Cause(err)
	if stderrors.Is(cause, driver.ErrBadConn) {
		return true
	}
	var sfErr *gosnowflake.SnowflakeError
	if stderrors.As(cause, &sfErr) {
		switch sfErr.Number {
		case errNumConnectionReset, errNumConnectionClosed, errNumNetworkError:
			return true
		}
	}
	return false
}
