package dbops

import (
	"context"

	"github.com/pingcap/errors"

	"github.com/anglinb/snowforge/internal/querybuilder"
)

func (i *impl) CreateTable(ctx context.Context, table *querybuilder.Table) error {
	if table == nil {
		return errors.New("table cannot be nil")
	}
	return i.exec(ctx, StepCreateTable, table.Name(), table)
}

func (i *impl) CreateStage(ctx context.Context, stage *querybuilder.Stage) error {
	if stage == nil {
		return errors.New("stage cannot be nil")
	}
	return i.exec(ctx, StepCreateStage, stage.Name(), stage)
}

func (i *impl) CreateFileFormat(ctx context.Context, fileFormat *querybuilder.FileFormat) error {
	if fileFormat == nil {
		return errors.New("file format cannot be nil")
	}
	return i.exec(ctx, StepCreateFileFormat, fileFormat.Name(), fileFormat)
}

func (i *impl) CreateStream(ctx context.Context, stream *querybuilder.Stream) error {
	if stream == nil {
		return errors.New("stream cannot be nil")
	}
	return i.exec(ctx, StepCreateStream, stream.Name(), stream)
}

func (i *impl) CreateTask(ctx context.Context, task *querybuilder.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	return i.exec(ctx, StepCreateTask, task.Name(), task)
}
