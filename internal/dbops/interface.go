package dbops

import (
	"context"

	"github.com/anglinb/snowforge/internal/querybuilder"
	"github.com/anglinb/snowforge/internal/snowflakeclient"
)

type Client interface {
	CreateTable(ctx context.Context, table *querybuilder.Table) error
	CreateStage(ctx context.Context, stage *querybuilder.Stage) error
	CreateFileFormat(ctx context.Context, fileFormat *querybuilder.FileFormat) error
	CreateStream(ctx context.Context, stream *querybuilder.Stream) error
	CreateTask(ctx context.Context, task *querybuilder.Task) error

	PutFile(ctx context.Context, put *querybuilder.Put) error
	CopyInto(ctx context.Context, copyInto *querybuilder.CopyInto) error

	ExecuteSQL(ctx context.Context, sql string) ([]snowflakeclient.Row, error)

	Workflow() *Workflow
	Close() error
}
