package snowflakeclient

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pingcap/errors"
	"github.com/rs/zerolog"
	"github.com/snowflakedb/gosnowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSession(t *testing.T, config Config) (*Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if config.RetryBackoff == 0 {
		config.RetryBackoff = time.Millisecond
	}
	return NewWithDB(db, config, zerolog.Nop()), mock
}

func TestSession_TransactionCommits(t *testing.T) {
	session, mock := newMockSession(t, Config{})

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE t (a STRING)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		assert.True(t, session.InTransaction())
		return session.Exec(ctx, "CREATE TABLE t (a STRING)")
	})

	require.NoError(t, err)
	assert.False(t, session.InTransaction())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_TransactionRollsBackOnError(t *testing.T) {
	session, mock := newMockSession(t, Config{})

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE t (a STRING)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO t VALUES ('x')").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		if err := session.Exec(ctx, "CREATE TABLE t (a STRING)"); err != nil {
			return err
		}
		return session.Exec(ctx, "INSERT INTO t VALUES ('x')")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_NestedTransactionsShareOneBoundary(t *testing.T) {
	session, mock := newMockSession(t, Config{})

	mock.ExpectBegin()
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SELECT 2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		if err := session.Exec(ctx, "SELECT 1"); err != nil {
			return err
		}
		return session.Transaction(ctx, func(ctx context.Context) error {
			assert.Equal(t, 2, session.depth)
			return session.Exec(ctx, "SELECT 2")
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RetriesTransientErrors(t *testing.T) {
	session, mock := newMockSession(t, Config{MaxRetries: 3})

	mock.ExpectBegin()
	mock.ExpectExec("SELECT 1").WillReturnError(&gosnowflake.SnowflakeError{Number: errNumConnectionReset})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		return session.Exec(ctx, "SELECT 1")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RetriesAreBounded(t *testing.T) {
	session, mock := newMockSession(t, Config{MaxRetries: 2})

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("SELECT 1").WillReturnError(&gosnowflake.SnowflakeError{Number: errNumNetworkError})
		mock.ExpectRollback()
	}

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		return session.Exec(ctx, "SELECT 1")
	})

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_NonRetryableErrorIsNotRetried(t *testing.T) {
	session, mock := newMockSession(t, Config{MaxRetries: 3})

	syntaxErr := &gosnowflake.SnowflakeError{Number: 1003, Message: "syntax error"}
	mock.ExpectBegin()
	mock.ExpectExec("SELEC 1").WillReturnError(syntaxErr)
	mock.ExpectRollback()

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		return session.Exec(ctx, "SELEC 1")
	})

	require.Error(t, err)
	assert.False(t, IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_AbortsSessionOnRelease(t *testing.T) {
	session, mock := newMockSession(t, Config{AbortSessionOnClose: true})

	mock.ExpectQuery("SELECT CURRENT_SESSION()").
		WillReturnRows(sqlmock.NewRows([]string{"CURRENT_SESSION()"}).AddRow("12345"))
	mock.ExpectBegin()
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec("SELECT SYSTEM$ABORT_SESSION(?)").WithArgs("12345").WillReturnResult(sqlmock.NewResult(0, 0))

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		return session.Exec(ctx, "SELECT 1")
	})

	require.NoError(t, err)
	assert.Nil(t, session.conn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_AbortFailureDoesNotMaskError(t *testing.T) {
	session, mock := newMockSession(t, Config{AbortSessionOnClose: true, MaxRetries: -1})

	mock.ExpectQuery("SELECT CURRENT_SESSION()").
		WillReturnRows(sqlmock.NewRows([]string{"CURRENT_SESSION()"}).AddRow("777"))
	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE missing").WillReturnError(assert.AnError)
	mock.ExpectRollback()
	mock.ExpectExec("SELECT SYSTEM$ABORT_SESSION(?)").WithArgs("777").WillReturnError(fmt.Errorf("session already gone"))

	err := session.Transaction(context.Background(), func(ctx context.Context) error {
		return session.Exec(ctx, "DROP TABLE missing")
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_Query(t *testing.T) {
	session, mock := newMockSession(t, Config{})

	mock.ExpectBegin()
	mock.ExpectQuery("SHOW STAGES").
		WillReturnRows(sqlmock.NewRows([]string{"name", "owner"}).AddRow("landing", "SYSADMIN").AddRow("exports", nil))
	mock.ExpectCommit()

	rows, err := session.Query(context.Background(), "SHOW STAGES")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	name, err := rows[0].GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "landing", name)

	owner, err := rows[1].GetString("owner")
	require.NoError(t, err)
	assert.Equal(t, "", owner)

	_, err = rows[0].GetString("missing")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_Close(t *testing.T) {
	session, mock := newMockSession(t, Config{})
	mock.ExpectClose()

	require.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "bad conn", err: driver.ErrBadConn, want: true},
		{name: "connection reset", err: &gosnowflake.SnowflakeError{Number: errNumConnectionReset}, want: true},
		{name: "connection closed", err: &gosnowflake.SnowflakeError{Number: errNumConnectionClosed}, want: true},
		{name: "wrapped with message", err: errors.WithMessage(&gosnowflake.SnowflakeError{Number: errNumNetworkError}, "error running query"), want: true},
		{name: "wrapped with %w", err: fmt.Errorf("exec: %w", &gosnowflake.SnowflakeError{Number: errNumNetworkError}), want: true},
		{name: "statement error", err: &gosnowflake.SnowflakeError{Number: 2003}, want: false},
		{name: "plain error", err: assert.AnError, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	_, err := Config{User: "u"}.DSN()
	assert.Error(t, err)

	dsn, err := Config{
		Account:           "acme-xy12345",
		User:              "loader",
		Password:          "secret",
		Database:          "RAW",
		Schema:            "PUBLIC",
		Warehouse:         "LOAD_WH",
		SessionParameters: map[string]string{"QUERY_TAG": "snowforge"},
	}.DSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "loader")
	assert.Contains(t, dsn, "warehouse=LOAD_WH")
}
