package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pingcap/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/anglinb/snowforge/internal/dbops"
)

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		if errors.Cause(err) == io.EOF {
			return nil, errors.New("manifest is empty")
		}
		return nil, errors.WithMessage(err, "error decoding manifest")
	}
	if len(m.Steps) == 0 {
		return nil, errors.New("manifest has no steps")
	}
	return &m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "error reading manifest")
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return m, nil
}

// Steps validates every entry and converts it into a workflow step, in
// manifest order.
func (m *Manifest) Steps() ([]dbops.Step, error) {
	steps := make([]dbops.Step, 0, len(m.Steps))
	for idx, entry := range m.Steps {
		step, err := entry.step()
		if err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("step %d", idx+1))
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Statements renders the SQL of every step without a connection.
func (m *Manifest) Statements() ([]string, error) {
	steps, err := m.Steps()
	if err != nil {
		return nil, err
	}
	return lo.Map(steps, func(step dbops.Step, _ int) string {
		return step.Statement().SQL()
	}), nil
}

// Apply queues every step on wf.
func (m *Manifest) Apply(wf *dbops.Workflow) error {
	steps, err := m.Steps()
	if err != nil {
		return err
	}
	for _, step := range steps {
		wf.AddStep(step)
	}
	return wf.Err()
}

func (e Entry) keys() []string {
	var keys []string
	if e.FileFormat != nil {
		keys = append(keys, "file_format")
	}
	if e.Table != nil {
		keys = append(keys, "table")
	}
	if e.Stage != nil {
		keys = append(keys, "stage")
	}
	if e.Stream != nil {
		keys = append(keys, "stream")
	}
	if e.Task != nil {
		keys = append(keys, "task")
	}
	if e.Put != nil {
		keys = append(keys, "put")
	}
	if e.CopyInto != nil {
		keys = append(keys, "copy_into")
	}
	return keys
}

func (e Entry) step() (dbops.Step, error) {
	if keys := e.keys(); len(keys) != 1 {
		if len(keys) == 0 {
			return nil, errors.New("entry must set one of file_format, table, stage, stream, task, put, copy_into")
		}
		return nil, errors.Errorf("entry sets more than one step: %s", strings.Join(keys, ", "))
	}

	switch {
	case e.FileFormat != nil:
		fileFormat, err := e.FileFormat.build()
		if err != nil {
			return nil, err
		}
		return dbops.CreateFileFormatStep{FileFormat: fileFormat}, nil
	case e.Table != nil:
		table, err := e.Table.build()
		if err != nil {
			return nil, err
		}
		return dbops.CreateTableStep{Table: table}, nil
	case e.Stage != nil:
		stage, err := e.Stage.build()
		if err != nil {
			return nil, err
		}
		return dbops.CreateStageStep{Stage: stage}, nil
	case e.Stream != nil:
		stream, err := e.Stream.build()
		if err != nil {
			return nil, err
		}
		return dbops.CreateStreamStep{Stream: stream}, nil
	case e.Task != nil:
		task, err := e.Task.build()
		if err != nil {
			return nil, err
		}
		return dbops.CreateTaskStep{Task: task}, nil
	case e.Put != nil:
		put, err := e.Put.build()
		if err != nil {
			return nil, err
		}
		return dbops.PutFileStep{Put: put}, nil
	default:
		copyInto, err := e.CopyInto.build()
		if err != nil {
			return nil, err
		}
		return dbops.CopyIntoStep{CopyInto: copyInto}, nil
	}
}
