package dbops

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pingcap/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anglinb/snowforge/internal/querybuilder"
	"github.com/anglinb/snowforge/internal/snowflakeclient"
)

func newMockClient(t *testing.T) (*impl, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	session := snowflakeclient.NewWithDB(db, snowflakeclient.Config{MaxRetries: -1, RetryBackoff: time.Millisecond}, zerolog.Nop())
	client, err := NewClient(session, zerolog.Nop())
	require.NoError(t, err)
	return client.(*impl), mock
}

func customersTable(t *testing.T) *querybuilder.Table {
	t.Helper()
	table, err := querybuilder.NewTable("customers").
		WithCreateOrReplace().
		WithColumns(
			querybuilder.Column{Name: "id", Type: querybuilder.DataType{Type: querybuilder.ColumnTypeNumber}, NotNull: true, Identity: true},
			querybuilder.Column{Name: "email", Type: querybuilder.DataType{Type: querybuilder.ColumnTypeString}},
		).
		Build()
	require.NoError(t, err)
	return table
}

func TestNewClient_RejectsNilSession(t *testing.T) {
	_, err := NewClient(nil, zerolog.Nop())
	require.Error(t, err)
}

func TestClient_CreateTable(t *testing.T) {
	client, mock := newMockClient(t)
	table := customersTable(t)

	mock.ExpectBegin()
	mock.ExpectExec(table.SQL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, client.CreateTable(context.Background(), table))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_CreateStageWrapsErrors(t *testing.T) {
	client, mock := newMockClient(t)
	stage, err := querybuilder.NewStage("raw_stage").Build()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(stage.SQL()).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = client.CreateStage(context.Background(), stage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `error running create_stage for "raw_stage"`)
	assert.Equal(t, assert.AnError, errors.Cause(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_NilEntities(t *testing.T) {
	client, _ := newMockClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "table", call: func() error { return client.CreateTable(ctx, nil) }},
		{name: "stage", call: func() error { return client.CreateStage(ctx, nil) }},
		{name: "file format", call: func() error { return client.CreateFileFormat(ctx, nil) }},
		{name: "stream", call: func() error { return client.CreateStream(ctx, nil) }},
		{name: "task", call: func() error { return client.CreateTask(ctx, nil) }},
		{name: "put", call: func() error { return client.PutFile(ctx, nil) }},
		{name: "copy into", call: func() error { return client.CopyInto(ctx, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.call())
		})
	}
}

func TestClient_PutAndCopy(t *testing.T) {
	client, mock := newMockClient(t)

	put, err := querybuilder.NewPut().
		WithFilePath("/tmp/customers.csv").
		WithStage(querybuilder.NamedStage("raw_stage")).
		Build()
	require.NoError(t, err)

	copyInto, err := querybuilder.NewCopyInto().
		WithTarget(querybuilder.TargetTable("customers")).
		WithSource(querybuilder.SourceStage("raw_stage")).
		WithOptions(querybuilder.CopyOptions{OnError: querybuilder.SkipFile}).
		Build()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(put.SQL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(copyInto.SQL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ctx := context.Background()
	require.NoError(t, client.PutFile(ctx, put))
	require.NoError(t, client.CopyInto(ctx, copyInto))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_ExecuteSQL(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SHOW STAGES").WillReturnRows(
		sqlmock.NewRows([]string{"name", "type"}).
			AddRow("raw_stage", "INTERNAL").
			AddRow("s3_stage", "EXTERNAL"),
	)
	mock.ExpectCommit()

	rows, err := client.ExecuteSQL(context.Background(), "SHOW STAGES")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	name, err := rows[0].GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "raw_stage", name)
	typ, err := rows[1].GetString("type")
	require.NoError(t, err)
	assert.Equal(t, "EXTERNAL", typ)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_ExecuteSQLError(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT broken").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	rows, err := client.ExecuteSQL(context.Background(), "SELECT broken")
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, assert.AnError, errors.Cause(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_Close(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectClose()

	require.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
