package dbops

import (
	"context"

	"github.com/pingcap/errors"

	"github.com/anglinb/snowforge/internal/querybuilder"
)

func (i *impl) PutFile(ctx context.Context, put *querybuilder.Put) error {
	if put == nil {
		return errors.New("put cannot be nil")
	}
	return i.exec(ctx, StepPutFile, put.FilePath(), put)
}

func (i *impl) CopyInto(ctx context.Context, copyInto *querybuilder.CopyInto) error {
	if copyInto == nil {
		return errors.New("copy into cannot be nil")
	}
	return i.exec(ctx, StepCopyInto, copyInto.Target().Name, copyInto)
}
