package postgres

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Row is a set of column values for inserts and updates. Columns are
// written in sorted order so generated SQL is stable.
type Row map[string]any

func (r Row) columns() []string {
	cols := make([]string, 0, len(r))
	for c := range r {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

type cond struct {
	col string
	op  string
	val any
}

// Query is a single-table read in the style of a REST table endpoint:
// equality and range filters, ordering and a limit. Rows are returned as
// JSON objects (to_jsonb of the row) so optional columns need no scanning
// code.
type Query struct {
	table  string
	sel    string
	joins  []string
	conds  []cond
	orders []string
	limit  int
}

// rowJSON is the default projection: the whole row as a JSON object.
const rowJSON = "to_jsonb(t)"

// From starts a query on table, aliased t.
func From(table string) *Query {
	return &Query{table: table, sel: rowJSON}
}

// Select replaces the selected expression.
func (q *Query) Select(expr string) *Query {
	q.sel = expr
	return q
}

// Join appends a raw join clause.
func (q *Query) Join(clause string) *Query {
	q.joins = append(q.joins, clause)
	return q
}

func (q *Query) Eq(col string, v any) *Query  { return q.where(col, "=", v) }
func (q *Query) Gte(col string, v any) *Query { return q.where(col, ">=", v) }

// EqFold matches col case-insensitively.
func (q *Query) EqFold(col string, v string) *Query {
	return q.where(col, "ilike", v)
}

// IsNull matches rows where col is null (v false matches not null).
func (q *Query) IsNull(col string, v bool) *Query {
	if v {
		return q.where(col, "is null", nil)
	}
	return q.where(col, "is not null", nil)
}

func (q *Query) where(col, op string, v any) *Query {
	q.conds = append(q.conds, cond{col: col, op: op, val: v})
	return q
}

// Order appends an ordering on col.
func (q *Query) Order(col string, desc bool) *Query {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	q.orders = append(q.orders, ident(col)+" "+dir)
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// whereSQL renders the filter starting at placeholder $start.
func (q *Query) whereSQL(start int) (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.conds))
	args := make([]any, 0, len(q.conds))
	n := start
	for _, c := range q.conds {
		switch c.op {
		case "is null", "is not null":
			parts = append(parts, ident(c.col)+" "+strings.ToUpper(c.op))
		case "ilike":
			parts = append(parts, fmt.Sprintf("lower(%s) = lower($%d)", ident(c.col), n))
			args = append(args, c.val)
			n++
		default:
			parts = append(parts, fmt.Sprintf("%s %s $%d", ident(c.col), c.op, n))
			args = append(args, c.val)
			n++
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// SQL renders the SELECT statement and its arguments.
func (q *Query) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(q.sel)
	b.WriteString(" FROM ")
	b.WriteString(pgx.Identifier{q.table}.Sanitize())
	b.WriteString(" t")
	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	where, args := q.whereSQL(1)
	b.WriteString(where)
	if len(q.orders) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orders, ", "))
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
	}
	return b.String(), args
}

// ident qualifies a bare column with the row alias t.
func ident(col string) string {
	if strings.Contains(col, ".") {
		table, c, _ := strings.Cut(col, ".")
		return pgx.Identifier{table, c}.Sanitize()
	}
	return "t." + pgx.Identifier{col}.Sanitize()
}

func insertSQL(table string, row Row, returning string) (string, []any) {
	cols := row.columns()
	names := make([]string, len(cols))
	holders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = pgx.Identifier{c}.Sanitize()
		holders[i] = "$" + strconv.Itoa(i+1)
		args[i] = row[c]
	}
	return fmt.Sprintf("INSERT INTO %s AS t (%s) VALUES (%s) RETURNING %s",
		pgx.Identifier{table}.Sanitize(), strings.Join(names, ", "), strings.Join(holders, ", "), returning), args
}

// upsertSQL inserts row or, on a conflict on the key column, overwrites every
// other column.
func upsertSQL(table, key string, row Row) (string, []any) {
	ins, args := insertSQL(table, row, rowJSON)
	ins = strings.TrimSuffix(ins, " RETURNING "+rowJSON)
	sets := make([]string, 0, len(row))
	for _, c := range row.columns() {
		if c == key {
			continue
		}
		n := pgx.Identifier{c}.Sanitize()
		sets = append(sets, n+" = EXCLUDED."+n)
	}
	action := "DO NOTHING"
	if len(sets) > 0 {
		action = "DO UPDATE SET " + strings.Join(sets, ", ")
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) %s RETURNING %s", ins, pgx.Identifier{key}.Sanitize(), action, rowJSON), args
}

func updateSQL(table string, set Row, filter *Query, returning string) (string, []any) {
	cols := set.columns()
	parts := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{c}.Sanitize(), i+1)
		args = append(args, set[c])
	}
	where, wargs := filter.whereSQL(len(cols) + 1)
	return fmt.Sprintf("UPDATE %s AS t SET %s%s RETURNING %s",
		pgx.Identifier{table}.Sanitize(), strings.Join(parts, ", "), where, returning), append(args, wargs...)
}

func deleteSQL(table string, filter *Query) (string, []any) {
	where, args := filter.whereSQL(1)
	return fmt.Sprintf("DELETE FROM %s AS t%s", pgx.Identifier{table}.Sanitize(), where), args
}
