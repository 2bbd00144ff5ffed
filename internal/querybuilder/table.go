package querybuilder

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// DataType is a column base type with optional precision/length parameters,
// e.g. NUMBER(10,2) or STRING(255).
type DataType struct {
	Type   ColumnType `yaml:"type"`
	Params []int      `yaml:"params"`
}

func (d DataType) String() string {
	if len(d.Params) == 0 {
		return string(d.Type)
	}
	return string(d.Type) + "(" + strings.Join(lo.Map(d.Params, func(p int, _ int) string {
		return strconv.Itoa(p)
	}), ",") + ")"
}

type Column struct {
	Name       string
	Type       DataType
	NotNull    bool
	Default    *string
	Identity   bool
	PrimaryKey bool
	Unique     bool
	References *string
	Comment    *string
	Collate    *string
}

// SQL renders the column definition. Clause order is fixed: name, type,
// NOT NULL, DEFAULT, IDENTITY, PRIMARY KEY, UNIQUE, REFERENCES, COMMENT, COLLATE.
func (c Column) SQL() string {
	parts := []string{c.Name, c.Type.String()}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != nil && *c.Default != "" {
		parts = append(parts, "DEFAULT "+*c.Default)
	}
	if c.Identity {
		parts = append(parts, "IDENTITY")
	}
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if c.Unique {
		parts = append(parts, "UNIQUE")
	}
	if c.References != nil && *c.References != "" {
		parts = append(parts, "REFERENCES "+*c.References)
	}
	if c.Comment != nil && *c.Comment != "" {
		parts = append(parts, "COMMENT "+QuoteComment(*c.Comment))
	}
	if c.Collate != nil && *c.Collate != "" {
		parts = append(parts, "COLLATE "+QuoteString(*c.Collate))
	}
	return strings.Join(parts, " ")
}

func (c Column) clone() Column {
	c.Type.Params = append([]int(nil), c.Type.Params...)
	c.Default = clonePtr(c.Default)
	c.References = clonePtr(c.References)
	c.Comment = clonePtr(c.Comment)
	c.Collate = clonePtr(c.Collate)
	return c
}

func cloneColumns(columns []Column) []Column {
	return lo.Map(columns, func(c Column, _ int) Column { return c.clone() })
}

// Policy attaches a row access or aggregation policy to a set of columns.
type Policy struct {
	Name string   `yaml:"name"`
	On   []string `yaml:"on"`
}

func (p *Policy) render(keyword string) string {
	if p == nil || p.Name == "" {
		return ""
	}
	return "WITH " + keyword + " " + p.Name + " ON (" + strings.Join(p.On, ", ") + ")"
}

// TableBuilder is an interface to build CREATE TABLE statements.
type TableBuilder interface {
	WithCreateOrReplace() TableBuilder
	WithCreateIfNotExists() TableBuilder
	WithKind(kind TableKind) TableBuilder
	WithColumns(columns ...Column) TableBuilder
	WithClusterBy(columns ...string) TableBuilder
	WithDataRetentionTimeInDays(days int) TableBuilder
	WithMaxDataExtensionTimeInDays(days int) TableBuilder
	WithChangeTracking(enabled bool) TableBuilder
	WithDefaultDDLCollation(collation string) TableBuilder
	WithCopyGrants() TableBuilder
	WithComment(comment string) TableBuilder
	WithRowAccessPolicy(policy Policy) TableBuilder
	WithAggregationPolicy(policy Policy) TableBuilder
	WithTags(tags map[string]string) TableBuilder
	Build() (*Table, error)
}

type Table struct {
	name                string
	mode                CreateMode
	kind                TableKind
	columns             []Column
	clusterBy           []string
	retentionDays       *int
	maxExtensionDays    *int
	changeTracking      *bool
	defaultDDLCollation *string
	copyGrants          bool
	comment             *string
	rowAccessPolicy     *Policy
	aggregationPolicy   *Policy
	tags                map[string]string
}

func (t *Table) Name() string { return t.name }
func (t *Table) Columns() []Column { return cloneColumns(t.columns) }

func (t *Table) SQL() string {
	kind := ""
	if t.kind != "" && t.kind != TableKindPermanent {
		kind = string(t.kind)
	}

	var sb strings.Builder
	sb.WriteString(createClause(t.mode, kind, "TABLE"))
	sb.WriteString(" ")
	sb.WriteString(t.name)

	sb.WriteString(" (")
	for i, col := range t.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.SQL())
	}
	sb.WriteString(")")

	var c clauses
	c.addComment(t.comment)
	c.addInt("DATA_RETENTION_TIME_IN_DAYS", t.retentionDays)
	c.addInt("MAX_DATA_EXTENSION_TIME_IN_DAYS", t.maxExtensionDays)
	c.addBool("CHANGE_TRACKING", t.changeTracking)
	c.addString("DEFAULT_DDL_COLLATION", t.defaultDDLCollation)
	if t.copyGrants {
		c.add("COPY GRANTS")
	}
	if len(t.clusterBy) > 0 {
		c.add("CLUSTER BY (" + strings.Join(t.clusterBy, ", ") + ")")
	}
	c.add(t.rowAccessPolicy.render("ROW ACCESS POLICY"))
	c.add(t.aggregationPolicy.render("AGGREGATION POLICY"))
	c.add(formatTags(t.tags))
	if len(c) > 0 {
		sb.WriteString(" ")
		sb.WriteString(c.join(" "))
	}

	return sb.String()
}

type tableBuilder struct {
	table Table
}

func NewTable(name string) TableBuilder {
	return &tableBuilder{table: Table{name: name, kind: TableKindPermanent}}
}

func (b *tableBuilder) WithCreateOrReplace() TableBuilder {
	b.table.mode.OrReplace = true
	return b
}

func (b *tableBuilder) WithCreateIfNotExists() TableBuilder {
	b.table.mode.IfNotExists = true
	return b
}

func (b *tableBuilder) WithKind(kind TableKind) TableBuilder {
	b.table.kind = kind
	return b
}

func (b *tableBuilder) WithColumns(columns ...Column) TableBuilder {
	b.table.columns = append(b.table.columns, cloneColumns(columns)...)
	return b
}

func (b *tableBuilder) WithClusterBy(columns ...string) TableBuilder {
	b.table.clusterBy = append([]string(nil), columns...)
	return b
}

func (b *tableBuilder) WithDataRetentionTimeInDays(days int) TableBuilder {
	b.table.retentionDays = &days
	return b
}

func (b *tableBuilder) WithMaxDataExtensionTimeInDays(days int) TableBuilder {
	b.table.maxExtensionDays = &days
	return b
}

func (b *tableBuilder) WithChangeTracking(enabled bool) TableBuilder {
	b.table.changeTracking = &enabled
	return b
}

func (b *tableBuilder) WithDefaultDDLCollation(collation string) TableBuilder {
	b.table.defaultDDLCollation = &collation
	return b
}

func (b *tableBuilder) WithCopyGrants() TableBuilder {
	b.table.copyGrants = true
	return b
}

func (b *tableBuilder) WithComment(comment string) TableBuilder {
	b.table.comment = &comment
	return b
}

func (b *tableBuilder) WithRowAccessPolicy(policy Policy) TableBuilder {
	policy.On = append([]string(nil), policy.On...)
	b.table.rowAccessPolicy = &policy
	return b
}

func (b *tableBuilder) WithAggregationPolicy(policy Policy) TableBuilder {
	policy.On = append([]string(nil), policy.On...)
	b.table.aggregationPolicy = &policy
	return b
}

func (b *tableBuilder) WithTags(tags map[string]string) TableBuilder {
	b.table.tags = copyTags(tags)
	return b
}

func (b *tableBuilder) Build() (*Table, error) {
	if b.table.name == "" {
		return nil, missing("table", "name")
	}
	if len(b.table.columns) == 0 {
		return nil, missing("table", "columns")
	}
	for _, col := range b.table.columns {
		if col.Name == "" {
			return nil, missing("column", "name")
		}
	}

	t := b.table
	t.columns = cloneColumns(b.table.columns)
	t.clusterBy = append([]string(nil), b.table.clusterBy...)
	return &t, nil
}
