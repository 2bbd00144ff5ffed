package querybuilder

import (
	"strings"
)

// StreamBuilder is an interface to build CREATE STREAM statements.
type StreamBuilder interface {
	WithCreateOrReplace() StreamBuilder
	WithCreateIfNotExists() StreamBuilder
	OnTable(table string) StreamBuilder
	OnView(view string) StreamBuilder
	WithMode(mode StreamMode) StreamBuilder
	WithType(streamType StreamType) StreamBuilder
	WithAppendOnly(appendOnly bool) StreamBuilder
	WithInsertOnly(insertOnly bool) StreamBuilder
	WithShowInitialRows(show bool) StreamBuilder
	WithComment(comment string) StreamBuilder
	WithTags(tags map[string]string) StreamBuilder
	Build() (*Stream, error)
}

type Stream struct {
	name            string
	mode            CreateMode
	sourceKind      string
	source          string
	streamMode      StreamMode
	streamType      StreamType
	appendOnly      bool
	insertOnly      bool
	showInitialRows bool
	comment         *string
	tags            map[string]string
}

func (s *Stream) Name() string { return s.name }
func (s *Stream) Source() string { return s.source }
func (s *Stream) Type() StreamType { return s.streamType }

func (s *Stream) SQL() string {
	var sb strings.Builder
	sb.WriteString(createClause(s.mode, "", "STREAM"))
	sb.WriteString(" ")
	sb.WriteString(s.name)

	var c clauses
	c.add(formatTags(s.tags))
	c.add("ON " + s.sourceKind + " " + s.source)
	c.addFlag("APPEND_ONLY", s.appendOnly || s.streamMode == StreamModeAppendOnly)
	c.addFlag("INSERT_ONLY", s.insertOnly || s.streamMode == StreamModeInsertOnly)
	c.addFlag("SHOW_INITIAL_ROWS", s.showInitialRows)
	c.addComment(s.comment)
	sb.WriteString(" ")
	sb.WriteString(c.join(" "))

	return sb.String()
}

type streamBuilder struct {
	stream Stream
}

func NewStream(name string) StreamBuilder {
	return &streamBuilder{stream: Stream{name: name, sourceKind: "TABLE"}}
}

func (b *streamBuilder) WithCreateOrReplace() StreamBuilder {
	b.stream.mode.OrReplace = true
	return b
}

func (b *streamBuilder) WithCreateIfNotExists() StreamBuilder {
	b.stream.mode.IfNotExists = true
	return b
}

func (b *streamBuilder) OnTable(table string) StreamBuilder {
	b.stream.sourceKind = "TABLE"
	b.stream.source = table
	return b
}

func (b *streamBuilder) OnView(view string) StreamBuilder {
	b.stream.sourceKind = "VIEW"
	b.stream.source = view
	return b
}

func (b *streamBuilder) WithMode(mode StreamMode) StreamBuilder {
	b.stream.streamMode = mode
	return b
}

func (b *streamBuilder) WithType(streamType StreamType) StreamBuilder {
	b.stream.streamType = streamType
	return b
}

func (b *streamBuilder) WithAppendOnly(appendOnly bool) StreamBuilder {
	b.stream.appendOnly = appendOnly
	return b
}

func (b *streamBuilder) WithInsertOnly(insertOnly bool) StreamBuilder {
	b.stream.insertOnly = insertOnly
	return b
}

func (b *streamBuilder) WithShowInitialRows(show bool) StreamBuilder {
	b.stream.showInitialRows = show
	return b
}

func (b *streamBuilder) WithComment(comment string) StreamBuilder {
	b.stream.comment = &comment
	return b
}

func (b *streamBuilder) WithTags(tags map[string]string) StreamBuilder {
	b.stream.tags = copyTags(tags)
	return b
}

func (b *streamBuilder) Build() (*Stream, error) {
	if b.stream.name == "" {
		return nil, missing("stream", "name")
	}
	if b.stream.source == "" {
		return nil, missing("stream", "source")
	}
	s := b.stream
	return &s, nil
}
