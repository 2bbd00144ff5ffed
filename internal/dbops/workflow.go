package dbops

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pingcap/errors"

	"github.com/anglinb/snowforge/internal/querybuilder"
)

var ErrWorkflowAlreadyExecuted = errors.New("workflow has already been executed")

type StepKind string

const (
	StepCreateTable      StepKind = "create_table"
	StepCreateStage      StepKind = "create_stage"
	StepCreateFileFormat StepKind = "create_file_format"
	StepCreateStream     StepKind = "create_stream"
	StepCreateTask       StepKind = "create_task"
	StepPutFile          StepKind = "put_file"
	StepCopyInto         StepKind = "copy_into"
)

// Step is one queued workflow operation. The set of steps is closed: only the
// types declared in this package implement it.
type Step interface {
	Kind() StepKind
	EntityName() string
	Statement() querybuilder.Statement
	isStep()
}

type CreateTableStep struct{ Table *querybuilder.Table }
type CreateStageStep struct{ Stage *querybuilder.Stage }
type CreateFileFormatStep struct{ FileFormat *querybuilder.FileFormat }
type CreateStreamStep struct{ Stream *querybuilder.Stream }
type CreateTaskStep struct{ Task *querybuilder.Task }
type PutFileStep struct{ Put *querybuilder.Put }
type CopyIntoStep struct{ CopyInto *querybuilder.CopyInto }

func (CreateTableStep) Kind() StepKind      { return StepCreateTable }
func (CreateStageStep) Kind() StepKind      { return StepCreateStage }
func (CreateFileFormatStep) Kind() StepKind { return StepCreateFileFormat }
func (CreateStreamStep) Kind() StepKind     { return StepCreateStream }
func (CreateTaskStep) Kind() StepKind       { return StepCreateTask }
func (PutFileStep) Kind() StepKind          { return StepPutFile }
func (CopyIntoStep) Kind() StepKind         { return StepCopyInto }

func (s CreateTableStep) EntityName() string      { return s.Table.Name() }
func (s CreateStageStep) EntityName() string      { return s.Stage.Name() }
func (s CreateFileFormatStep) EntityName() string { return s.FileFormat.Name() }
func (s CreateStreamStep) EntityName() string     { return s.Stream.Name() }
func (s CreateTaskStep) EntityName() string       { return s.Task.Name() }
func (s PutFileStep) EntityName() string          { return s.Put.FilePath() }
func (s CopyIntoStep) EntityName() string         { return s.CopyInto.Target().Name }

func (s CreateTableStep) Statement() querybuilder.Statement      { return s.Table }
func (s CreateStageStep) Statement() querybuilder.Statement      { return s.Stage }
func (s CreateFileFormatStep) Statement() querybuilder.Statement { return s.FileFormat }
func (s CreateStreamStep) Statement() querybuilder.Statement     { return s.Stream }
func (s CreateTaskStep) Statement() querybuilder.Statement       { return s.Task }
func (s PutFileStep) Statement() querybuilder.Statement          { return s.Put }
func (s CopyIntoStep) Statement() querybuilder.Statement         { return s.CopyInto }

func (CreateTableStep) isStep()      {}
func (CreateStageStep) isStep()      {}
func (CreateFileFormatStep) isStep() {}
func (CreateStreamStep) isStep()     {}
func (CreateTaskStep) isStep()       {}
func (PutFileStep) isStep()          {}
func (CopyIntoStep) isStep()         {}

type WorkflowState int

const (
	WorkflowIdle WorkflowState = iota
	WorkflowExecuting
	WorkflowCommitted
	WorkflowRolledBack
)

func (s WorkflowState) String() string {
	switch s {
	case WorkflowIdle:
		return "idle"
	case WorkflowExecuting:
		return "executing"
	case WorkflowCommitted:
		return "committed"
	case WorkflowRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("WorkflowState(%d)", int(s))
	}
}

// Workflow queues steps and executes them in order inside a single
// transaction. A Workflow can be executed once.
type Workflow struct {
	client *impl
	steps  []Step
	state  WorkflowState
	runID  string
	err    error
}

func (i *impl) Workflow() *Workflow {
	return &Workflow{client: i}
}

func (w *Workflow) CreateTable(table *querybuilder.Table) *Workflow {
	return w.AddStep(CreateTableStep{Table: table})
}

func (w *Workflow) CreateStage(stage *querybuilder.Stage) *Workflow {
	return w.AddStep(CreateStageStep{Stage: stage})
}

func (w *Workflow) CreateFileFormat(fileFormat *querybuilder.FileFormat) *Workflow {
	return w.AddStep(CreateFileFormatStep{FileFormat: fileFormat})
}

func (w *Workflow) CreateStream(stream *querybuilder.Stream) *Workflow {
	return w.AddStep(CreateStreamStep{Stream: stream})
}

func (w *Workflow) CreateTask(task *querybuilder.Task) *Workflow {
	return w.AddStep(CreateTaskStep{Task: task})
}

func (w *Workflow) PutFile(put *querybuilder.Put) *Workflow {
	return w.AddStep(PutFileStep{Put: put})
}

func (w *Workflow) CopyInto(copyInto *querybuilder.CopyInto) *Workflow {
	return w.AddStep(CopyIntoStep{CopyInto: copyInto})
}

// AddStep queues step. An invalid step is not queued; the first such error is
// returned by Execute.
func (w *Workflow) AddStep(step Step) *Workflow {
	if err := checkStep(step); err != nil {
		if w.err == nil {
			w.err = errors.WithMessage(err, fmt.Sprintf("workflow step %d", len(w.steps)+1))
		}
		return w
	}
	w.steps = append(w.steps, step)
	return w
}

// Err returns the first error recorded while queueing steps.
func (w *Workflow) Err() error {
	return w.err
}

func (w *Workflow) Steps() []Step {
	return append([]Step(nil), w.steps...)
}

func (w *Workflow) State() WorkflowState {
	return w.state
}

// RunID identifies the last execution in log output. Empty until Execute is called.
func (w *Workflow) RunID() string {
	return w.runID
}

// Statements renders every queued step without executing anything.
func (w *Workflow) Statements() []string {
	statements := make([]string, 0, len(w.steps))
	for _, step := range w.steps {
		statements = append(statements, step.Statement().SQL())
	}
	return statements
}

// Execute runs all queued steps in one transaction. The first failing step
// rolls the transaction back and its error is returned.
func (w *Workflow) Execute(ctx context.Context) error {
	if w.state != WorkflowIdle {
		return ErrWorkflowAlreadyExecuted
	}
	if w.err != nil {
		return w.err
	}
	w.state = WorkflowExecuting
	w.runID = uuid.NewString()

	logger := w.client.logger.With().Str("run_id", w.runID).Logger()
	logger.Info().Int("steps", len(w.steps)).Msg("executing workflow")

	err := w.client.snowflakeClient.Transaction(ctx, func(ctx context.Context) error {
		for idx, step := range w.steps {
			if err := w.client.runStep(ctx, step); err != nil {
				return errors.WithMessage(err, fmt.Sprintf("workflow step %d (%s %s) failed", idx+1, step.Kind(), step.EntityName()))
			}
		}
		return nil
	})
	if err != nil {
		w.state = WorkflowRolledBack
		logger.Error().Err(err).Msg("workflow rolled back")
		return err
	}

	w.state = WorkflowCommitted
	logger.Info().Msg("workflow committed")
	return nil
}

func (i *impl) runStep(ctx context.Context, step Step) error {
	switch s := step.(type) {
	case CreateTableStep:
		return i.CreateTable(ctx, s.Table)
	case CreateStageStep:
		return i.CreateStage(ctx, s.Stage)
	case CreateFileFormatStep:
		return i.CreateFileFormat(ctx, s.FileFormat)
	case CreateStreamStep:
		return i.CreateStream(ctx, s.Stream)
	case CreateTaskStep:
		return i.CreateTask(ctx, s.Task)
	case PutFileStep:
		return i.PutFile(ctx, s.Put)
	case CopyIntoStep:
		return i.CopyInto(ctx, s.CopyInto)
	default:
		return errors.Errorf("unsupported workflow step %T", step)
	}
}

func checkStep(step Step) error {
	var missing bool
	switch s := step.(type) {
	case nil:
		return errors.New("step cannot be nil")
	case CreateTableStep:
		missing = s.Table == nil
	case CreateStageStep:
		missing = s.Stage == nil
	case CreateFileFormatStep:
		missing = s.FileFormat == nil
	case CreateStreamStep:
		missing = s.Stream == nil
	case CreateTaskStep:
		missing = s.Task == nil
	case PutFileStep:
		missing = s.Put == nil
	case CopyIntoStep:
		missing = s.CopyInto == nil
	}
	if missing {
		return errors.Errorf("%s step has no statement", step.Kind())
	}
	return nil
}
