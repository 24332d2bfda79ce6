package query

import (
	"fmt"
	"strings"
)

type projected struct {
	column string
	field  string
}

// ProjectionMap maps logical field names to qualified SQL columns for a
// table and its joined relations.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	joins   []string
	columns []projected
	fields  map[string]string
}

// NewProjectionMap creates a projection for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps a column to a logical field name. Columns without an
// explicit qualifier are qualified with the table alias, so joined
// columns can be projected as "o.name".
func (m *ProjectionMap) Project(column, field string) *ProjectionMap {
	if !strings.Contains(column, ".") {
		column = m.alias + "." + column
	}
	m.columns = append(m.columns, projected{column: column, field: field})
	m.fields[field] = column
	return m
}

// Join appends a join clause included in every query against this projection.
func (m *ProjectionMap) Join(clause string) *ProjectionMap {
	m.joins = append(m.joins, clause)
	return m
}

// Table returns the FROM target including any join clauses.
func (m *ProjectionMap) Table() string {
	from := fmt.Sprintf("%s.%s %s", m.schema, m.table, m.alias)
	if len(m.joins) > 0 {
		from += " " + strings.Join(m.joins, " ")
	}
	return from
}

// Columns returns the comma-separated projected column list.
func (m *ProjectionMap) Columns() string {
	cols := make([]string, len(m.columns))
	for i, c := range m.columns {
		cols[i] = c.column
	}
	return strings.Join(cols, ", ")
}

// Column returns the qualified column for a logical field, or an empty
// string when the field is not projected.
func (m *ProjectionMap) Column(field string) string {
	return m.fields[field]
}
