package translate

import (
	"strconv"
	"strings"

	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
)

// renderMode is a scoped rendering override. Modes form a stack so nested
// contexts compose; each QuerySpec consumes the top-of-stack mode for its
// own select list and shields its children from it.
type renderMode uint8

const (
	modeDefault renderMode = iota
	// modeSelectAsRow renders the select list as a single row/array
	// constructor. Used when emulating tuple IN-subquery predicates.
	modeSelectAsRow
)

// Translator renders one statement for one dialect. Instances are
// single-use and must not be shared across goroutines; construct with New
// per translation.
type Translator struct {
	d    *Dialect
	sb   strings.Builder
	prms []Param

	modes      []renderMode
	fetchStyle FetchStyle
	used       bool
}

// New returns a translator for one statement translation against d.
func New(d *Dialect) *Translator {
	return &Translator{d: d}
}

// Translate renders the statement into SQL text plus an ordered parameter
// list. On error no partial result is returned. A translator can translate
// exactly one statement; further calls fail.
func (t *Translator) Translate(s ast.Statement) (*Result, error) {
	if t.used {
		return nil, sqlast.NewInvalidASTError("translator instances are single-use")
	}
	t.used = true

	var err error
	switch s := s.(type) {
	case *ast.SelectStatement:
		err = t.selectStatement(s)
	case *ast.InsertStatement:
		err = t.insertStatement(s)
	case *ast.UpdateStatement:
		err = t.updateStatement(s)
	case *ast.DeleteStatement:
		err = t.deleteStatement(s)
	default:
		err = sqlast.NewInvalidASTError("unknown statement type %T", s)
	}
	if err != nil {
		return nil, err
	}
	return &Result{SQL: t.sb.String(), Params: t.prms, FetchStyle: t.fetchStyle}, nil
}

func (t *Translator) w(s string) { t.sb.WriteString(s) }

func (t *Translator) pushMode(m renderMode) { t.modes = append(t.modes, m) }

func (t *Translator) popMode() { t.modes = t.modes[:len(t.modes)-1] }

func (t *Translator) mode() renderMode {
	if len(t.modes) == 0 {
		return modeDefault
	}
	return t.modes[len(t.modes)-1]
}

// unsupported builds the package error for a construct against the active
// dialect.
func (t *Translator) unsupported(construct string) error {
	return sqlast.NewUnsupportedConstructError(construct, t.d.Name())
}

func (t *Translator) supports(c dialect.Capability) bool {
	return t.d.caps.Supports(c)
}

func (t *Translator) selectStatement(s *ast.SelectStatement) error {
	if s.With != nil {
		if err := t.withClause(s.With); err != nil {
			return err
		}
	}
	return t.queryPart(s.Query, true)
}

func (t *Translator) insertStatement(s *ast.InsertStatement) error {
	if s.Table == nil {
		return sqlast.NewInvalidASTError("insert without target table")
	}
	if s.With != nil {
		if err := t.withClause(s.With); err != nil {
			return err
		}
	}
	t.w("INSERT INTO ")
	t.w(s.Table.Name)
	if len(s.Columns) > 0 {
		t.w(" (")
		for i, c := range s.Columns {
			if i > 0 {
				t.w(", ")
			}
			t.w(c.Name)
		}
		t.w(")")
	}
	switch {
	case len(s.Rows) > 0 && s.Source != nil:
		return sqlast.NewInvalidASTError("insert has both literal rows and a select source")
	case len(s.Rows) > 0:
		t.w(" VALUES ")
		for i, row := range s.Rows {
			if len(s.Columns) > 0 && len(row) != len(s.Columns) {
				return sqlast.NewInvalidASTError("insert row %d has %d values for %d columns", i, len(row), len(s.Columns))
			}
			if i > 0 {
				t.w(", ")
			}
			t.w("(")
			for j, e := range row {
				if j > 0 {
					t.w(", ")
				}
				if err := t.expression(e); err != nil {
					return err
				}
			}
			t.w(")")
		}
		return nil
	case s.Source != nil:
		t.w(" ")
		return t.queryPart(s.Source, false)
	}
	return sqlast.NewInvalidASTError("insert has neither rows nor a select source")
}

func (t *Translator) updateStatement(s *ast.UpdateStatement) error {
	if s.Table == nil {
		return sqlast.NewInvalidASTError("update without target table")
	}
	if len(s.Assignments) == 0 {
		return sqlast.NewInvalidASTError("update without assignments")
	}
	if s.With != nil {
		if err := t.withClause(s.With); err != nil {
			return err
		}
	}
	t.w("UPDATE ")
	t.w(s.Table.Name)
	if s.Table.Alias != "" {
		t.w(" ")
		t.w(s.Table.Alias)
	}
	t.w(" SET ")
	for i, a := range s.Assignments {
		if i > 0 {
			t.w(", ")
		}
		t.w(a.Column.Name)
		t.w(" = ")
		if err := t.expression(a.Value); err != nil {
			return err
		}
	}
	if s.Where != nil {
		t.w(" WHERE ")
		if err := t.predicate(s.Where); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) deleteStatement(s *ast.DeleteStatement) error {
	if s.Table == nil {
		return sqlast.NewInvalidASTError("delete without target table")
	}
	if s.With != nil {
		if err := t.withClause(s.With); err != nil {
			return err
		}
	}
	t.w("DELETE FROM ")
	t.w(s.Table.Name)
	if s.Table.Alias != "" {
		t.w(" ")
		t.w(s.Table.Alias)
	}
	if s.Where != nil {
		t.w(" WHERE ")
		if err := t.predicate(s.Where); err != nil {
			return err
		}
	}
	return nil
}

// queryPart renders a query part. top marks the statement's outermost
// part; only its fetch clause determines Result.FetchStyle.
func (t *Translator) queryPart(p ast.QueryPart, top bool) error {
	switch p := p.(type) {
	case *ast.QuerySpec:
		return t.querySpec(p, top)
	case *ast.SetOperation:
		return t.setOperation(p, top)
	}
	return sqlast.NewInvalidASTError("unknown query part type %T", p)
}

func (t *Translator) querySpec(q *ast.QuerySpec, top bool) error {
	// Consume the scoped rendering mode: it applies to this select list
	// only, never to nested subqueries.
	asRow := t.mode() == modeSelectAsRow
	t.pushMode(modeDefault)
	defer t.popMode()

	t.w("SELECT ")
	if q.Distinct {
		t.w("DISTINCT ")
	}
	if len(q.Selections) == 0 {
		return sqlast.NewInvalidASTError("query spec with empty select list")
	}
	if asRow {
		exprs := make([]ast.Expression, len(q.Selections))
		for i := range q.Selections {
			exprs[i] = q.Selections[i].Expr
		}
		if err := t.arrayConstructor(exprs); err != nil {
			return err
		}
	} else {
		for i, sel := range q.Selections {
			if i > 0 {
				t.w(", ")
			}
			if err := t.expression(sel.Expr); err != nil {
				return err
			}
			if sel.Alias != "" {
				t.w(" AS ")
				t.w(sel.Alias)
			}
		}
	}

	if len(q.From) > 0 {
		t.w(" FROM ")
		for i, src := range q.From {
			if i > 0 {
				t.w(", ")
			}
			if err := t.tableSource(src); err != nil {
				return err
			}
		}
	} else if !t.supports(dialect.SelectWithoutFrom) {
		if t.d.hooks.singleRowFromTable == "" {
			return t.unsupported("SELECT without FROM clause")
		}
		t.w(" FROM ")
		t.w(t.d.hooks.singleRowFromTable)
	}

	if q.Where != nil {
		t.w(" WHERE ")
		if err := t.predicate(q.Where); err != nil {
			return err
		}
	}
	if len(q.GroupBy) > 0 {
		if err := t.groupBy(q.GroupBy); err != nil {
			return err
		}
	}
	if q.Having != nil {
		t.w(" HAVING ")
		if err := t.predicate(q.Having); err != nil {
			return err
		}
	}
	if len(q.OrderBy) > 0 {
		t.w(" ORDER BY ")
		if err := t.sortItems(q.OrderBy); err != nil {
			return err
		}
	}
	return t.fetch(q.Fetch, top)
}

func (t *Translator) setOperation(s *ast.SetOperation, top bool) error {
	la, ra := ast.SelectionArity(s.Left), ast.SelectionArity(s.Right)
	if la != ra {
		return sqlast.NewInvalidASTError("%s operand arity mismatch: %d != %d", s.Op, la, ra)
	}
	if err := t.setOperand(s.Left, true); err != nil {
		return err
	}
	t.w(" ")
	t.w(s.Op.String())
	t.w(" ")
	if err := t.setOperand(s.Right, false); err != nil {
		return err
	}
	if len(s.OrderBy) > 0 {
		t.w(" ORDER BY ")
		if err := t.sortItems(s.OrderBy); err != nil {
			return err
		}
	}
	return t.fetch(s.Fetch, top)
}

// setOperand renders one operand of a set operation. A nested set
// operation, or a spec carrying its own ORDER BY or fetch, must be
// parenthesized: without parentheses the emitted text regroups under the
// parser's precedence rules. Dialects that cannot parse a parenthesized
// operand combine operands left to right at equal precedence, so a
// left-nested operation without its own ordering renders flat there;
// anything else is unsupported rather than emitted wrong.
func (t *Translator) setOperand(p ast.QueryPart, left bool) error {
	var parens bool
	switch p := p.(type) {
	case *ast.SetOperation:
		parens = t.d.hooks.parenthesizedSetOperands ||
			!left || len(p.OrderBy) > 0 || p.Fetch != nil
	case *ast.QuerySpec:
		parens = len(p.OrderBy) > 0 || p.Fetch != nil
	}
	if !parens {
		return t.queryPart(p, false)
	}
	if !t.d.hooks.parenthesizedSetOperands {
		return t.unsupported("parenthesized set operation operand")
	}
	t.w("(")
	if err := t.queryPart(p, false); err != nil {
		return err
	}
	t.w(")")
	return nil
}

func (t *Translator) tableSource(src ast.TableSource) error {
	switch src := src.(type) {
	case *ast.NamedTable:
		t.w(src.Name)
		if src.Alias != "" {
			t.w(" ")
			t.w(src.Alias)
		}
	case *ast.DerivedTable:
		t.w("(")
		if err := t.queryPart(src.Query, false); err != nil {
			return err
		}
		t.w(")")
		if src.Alias != "" {
			t.w(" ")
			t.w(src.Alias)
		}
	case *ast.Join:
		if err := t.tableSource(src.Left); err != nil {
			return err
		}
		t.w(" ")
		t.w(src.Kind.String())
		t.w(" ")
		if err := t.tableSource(src.Right); err != nil {
			return err
		}
		if src.Kind != ast.CrossJoin {
			if src.On == nil {
				return sqlast.NewInvalidASTError("%s without ON condition", src.Kind)
			}
			t.w(" ON ")
			if err := t.predicate(src.On); err != nil {
				return err
			}
		}
	default:
		return sqlast.NewInvalidASTError("unknown table source type %T", src)
	}
	return nil
}

func (t *Translator) groupBy(items []ast.Expression) error {
	if len(items) > 1 && !t.supports(dialect.SummarizationNative) {
		// A suffix spelling (WITH ROLLUP) covers the whole grouping list;
		// mixing it with plain items would summarize over those too.
		for _, g := range items {
			if _, ok := g.(*ast.Summarization); ok {
				return t.unsupported("Summarization mixed with plain grouping items")
			}
		}
	}
	t.w(" GROUP BY ")
	for i, g := range items {
		if i > 0 {
			t.w(", ")
		}
		if s, ok := g.(*ast.Summarization); ok {
			if err := t.summarization(s); err != nil {
				return err
			}
			continue
		}
		if err := t.expression(g); err != nil {
			return err
		}
	}
	return nil
}

// summarization renders ROLLUP/CUBE grouping: natively when the dialect
// has the prefix spelling, through the dialect hook when it spells
// summarization differently, and as a hard error otherwise. Guessing at
// plausible SQL here would silently change aggregation results.
func (t *Translator) summarization(s *ast.Summarization) error {
	if len(s.Groupings) == 0 {
		return sqlast.NewInvalidASTError("empty %s grouping list", s.Kind)
	}
	if t.supports(dialect.SummarizationNative) {
		t.w(s.Kind.String())
		t.w(" (")
		for i, g := range s.Groupings {
			if i > 0 {
				t.w(", ")
			}
			if err := t.expression(g); err != nil {
				return err
			}
		}
		t.w(")")
		return nil
	}
	if t.d.hooks.groupBySummarization != nil {
		return t.d.hooks.groupBySummarization(t, s)
	}
	return t.unsupported("Summarization (" + s.Kind.String() + ")")
}

func (t *Translator) sortItems(items []ast.SortItem) error {
	for i, it := range items {
		if i > 0 {
			t.w(", ")
		}
		if err := t.expression(it.Expr); err != nil {
			return err
		}
		if it.Order == ast.Desc {
			t.w(" DESC")
		}
		switch it.Nulls {
		case ast.NullsFirst:
			t.w(" NULLS FIRST")
		case ast.NullsLast:
			t.w(" NULLS LAST")
		}
	}
	return nil
}

// fetch renders the row-limiting clause. The decision tree is: rows-only
// fetches render the ANSI clause when the dialect has it and fall back to
// the vendor LIMIT emulation; PERCENT and WITH TIES variants render only
// natively, because no emulation preserves their semantics.
func (t *Translator) fetch(f *ast.FetchClause, top bool) error {
	if f == nil {
		return nil
	}
	if f.Offset != nil && *f.Offset < 0 {
		return sqlast.NewInvalidASTError("negative fetch offset: %d", *f.Offset)
	}
	if f.Count != nil && *f.Count < 0 {
		return sqlast.NewInvalidASTError("negative fetch count: %d", *f.Count)
	}
	if f.Offset == nil && f.Count == nil {
		return nil
	}

	style := FetchStyleNone
	switch f.Type {
	case ast.RowsOnly:
		switch {
		case t.supports(dialect.OffsetFetchClause):
			t.offsetFetch(f, "ROWS ONLY")
			style = FetchStyleOffsetFetch
		case t.supports(dialect.LimitClause):
			if t.d.hooks.limit != nil {
				t.d.hooks.limit(t, f.Offset, f.Count)
			} else {
				t.limitOffset(f.Offset, f.Count)
			}
			style = FetchStyleLimitOffset
		default:
			return t.unsupported("OFFSET/FETCH row limiting")
		}
	case ast.RowsWithTies:
		if !t.supports(dialect.FetchClauseTies) {
			return t.unsupported("FETCH ... WITH TIES")
		}
		t.offsetFetch(f, "ROWS WITH TIES")
		style = FetchStyleOffsetFetch
	case ast.PercentOnly:
		if !t.supports(dialect.FetchClausePercent) {
			return t.unsupported("FETCH ... PERCENT")
		}
		t.offsetFetch(f, "PERCENT ROWS ONLY")
		style = FetchStyleOffsetFetch
	case ast.PercentWithTies:
		if !t.supports(dialect.FetchClausePercent) || !t.supports(dialect.FetchClauseTies) {
			return t.unsupported("FETCH ... PERCENT WITH TIES")
		}
		t.offsetFetch(f, "PERCENT ROWS WITH TIES")
		style = FetchStyleOffsetFetch
	default:
		return sqlast.NewInvalidASTError("unknown fetch clause type %d", f.Type)
	}
	if top {
		t.fetchStyle = style
	}
	return nil
}

// offsetFetch renders the ANSI clause. Counts are rendered as literal
// tokens, exactly as given: an Integer.MAX_VALUE-sized count must survive
// unclipped.
func (t *Translator) offsetFetch(f *ast.FetchClause, suffix string) {
	if f.Offset != nil {
		t.w(" OFFSET ")
		t.w(strconv.FormatInt(*f.Offset, 10))
		t.w(" ROWS")
	}
	if f.Count != nil {
		t.w(" FETCH FIRST ")
		t.w(strconv.FormatInt(*f.Count, 10))
		t.w(" ")
		t.w(suffix)
	}
}

// limitOffset is the default vendor emulation.
func (t *Translator) limitOffset(offset, count *int64) {
	if count != nil {
		t.w(" LIMIT ")
		t.w(strconv.FormatInt(*count, 10))
	}
	if offset != nil {
		t.w(" OFFSET ")
		t.w(strconv.FormatInt(*offset, 10))
	}
}

// arrayConstructor renders exprs as one array/row value through the
// dialect hook.
func (t *Translator) arrayConstructor(exprs []ast.Expression) error {
	if t.d.hooks.arrayConstructor == nil {
		return t.unsupported("array constructor")
	}
	return t.d.hooks.arrayConstructor(t, exprs)
}

// placeholder appends a parameter and writes its bind placeholder.
func (t *Translator) placeholder(p *ast.Parameter) {
	t.prms = append(t.prms, Param{Name: p.Name, Value: p.Value, Type: typeOf(p.Value)})
	if t.d.hooks.placeholder != nil {
		t.w(t.d.hooks.placeholder(len(t.prms), p.Name))
		return
	}
	t.w("?")
}
