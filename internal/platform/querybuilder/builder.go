// Package querybuilder assembles parameterized Postgres statements for
// the repository layer. Placeholders are numbered ($1, $2, ...) in the
// order arguments are appended.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate. Multiple conditions are joined
// with AND.
type Condition func(w *writer)

type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) placeholder(value any) string {
	w.args = append(w.args, value)
	return "$" + strconv.Itoa(len(w.args))
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" = ")
		w.sql.WriteString(w.placeholder(value))
	}
}

// IsNull matches column IS NULL. Soft-deleted rows are filtered with
// IsNull("deleted_at").
func IsNull(column string) Condition {
	return func(w *writer) {
		w.sql.WriteString(column)
		w.sql.WriteString(" IS NULL")
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select needs columns")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select needs a table")
	}

	w := &writer{}
	w.sql.WriteString("SELECT ")
	w.sql.WriteString(strings.Join(b.columns, ", "))
	w.sql.WriteString(" FROM ")
	w.sql.WriteString(b.table)
	writeWhere(w, b.where)
	if len(b.orderBy) > 0 {
		w.sql.WriteString(" ORDER BY ")
		w.sql.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.sql.WriteString(" LIMIT ")
		w.sql.WriteString(strconv.Itoa(b.limit))
	}

	return w.sql.String(), w.args, nil
}

type assignment struct {
	column string
	value  any
	// raw SQL on the right-hand side instead of a placeholder
	expr string
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds column = $n to value.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr writes the expression verbatim, e.g. SetExpr("uses", "uses + 1")
// or SetExpr("updated_at", "NOW()"). The expression must not embed
// caller-supplied data.
func (b *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update needs a table")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update needs at least one assignment")
	}

	w := &writer{}
	w.sql.WriteString("UPDATE ")
	w.sql.WriteString(b.table)
	w.sql.WriteString(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.sql.WriteString(", ")
		}
		w.sql.WriteString(set.column)
		w.sql.WriteString(" = ")
		if set.expr != "" {
			w.sql.WriteString(set.expr)
			continue
		}
		w.sql.WriteString(w.placeholder(set.value))
	}
	writeWhere(w, b.where)

	return w.sql.String(), w.args, nil
}

func writeWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.sql.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.sql.WriteString(" AND ")
		}
		c(w)
	}
}
