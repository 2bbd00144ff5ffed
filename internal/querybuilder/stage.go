package querybuilder

import (
	"strings"
)

// StageBuilder is an interface to build CREATE STAGE statements.
type StageBuilder interface {
	WithCreateOrReplace() StageBuilder
	WithCreateIfNotExists() StageBuilder
	WithTemporary() StageBuilder
	WithStageParams(params StageParams) StageBuilder
	WithDirectory(params DirectoryTableParams) StageBuilder
	WithFileFormat(spec FileFormatSpec) StageBuilder
	WithComment(comment string) StageBuilder
	WithTags(tags map[string]string) StageBuilder
	Build() (*Stage, error)
}

type Stage struct {
	name       string
	mode       CreateMode
	temporary  bool
	params     string
	directory  string
	fileFormat *FileFormatSpec
	comment    *string
	tags       map[string]string
}

func (s *Stage) Name() string { return s.name }

func (s *Stage) SQL() string {
	kind := ""
	if s.temporary {
		kind = "TEMPORARY"
	}

	var sb strings.Builder
	sb.WriteString(createClause(s.mode, kind, "STAGE"))
	sb.WriteString(" ")
	sb.WriteString(s.name)

	var c clauses
	c.add(s.params)
	c.add(s.directory)
	c.add(s.fileFormat.clause())
	c.addComment(s.comment)
	c.add(formatTags(s.tags))
	if len(c) > 0 {
		sb.WriteString(" ")
		sb.WriteString(c.join(" "))
	}

	return sb.String()
}

type stageBuilder struct {
	stage     Stage
	params    StageParams
	directory DirectoryTableParams
}

func NewStage(name string) StageBuilder {
	return &stageBuilder{stage: Stage{name: name}}
}

func (b *stageBuilder) WithCreateOrReplace() StageBuilder {
	b.stage.mode.OrReplace = true
	return b
}

func (b *stageBuilder) WithCreateIfNotExists() StageBuilder {
	b.stage.mode.IfNotExists = true
	return b
}

func (b *stageBuilder) WithTemporary() StageBuilder {
	b.stage.temporary = true
	return b
}

func (b *stageBuilder) WithStageParams(params StageParams) StageBuilder {
	b.params = params
	return b
}

func (b *stageBuilder) WithDirectory(params DirectoryTableParams) StageBuilder {
	b.directory = params
	return b
}

func (b *stageBuilder) WithFileFormat(spec FileFormatSpec) StageBuilder {
	b.stage.fileFormat = &spec
	return b
}

func (b *stageBuilder) WithComment(comment string) StageBuilder {
	b.stage.comment = &comment
	return b
}

func (b *stageBuilder) WithTags(tags map[string]string) StageBuilder {
	b.stage.tags = copyTags(tags)
	return b
}

func (b *stageBuilder) Build() (*Stage, error) {
	if b.stage.name == "" {
		return nil, missing("stage", "name")
	}
	s := b.stage
	if b.params != nil {
		s.params = b.params.SQL()
	}
	if b.directory != nil {
		s.directory = b.directory.SQL()
	}
	return &s, nil
}

func copyTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
