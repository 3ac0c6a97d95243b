package translate

import (
	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
)

func (t *Translator) predicate(p ast.Predicate) error {
	switch p := p.(type) {
	case *ast.Comparison:
		return t.comparison(p)
	case *ast.Junction:
		return t.junction(p)
	case *ast.Not:
		t.w("NOT (")
		if err := t.predicate(p.Inner); err != nil {
			return err
		}
		t.w(")")
	case *ast.InList:
		return t.inList(p)
	case *ast.InSubquery:
		return t.inSubquery(p)
	case *ast.Exists:
		if p.Negated {
			t.w("NOT ")
		}
		t.w("EXISTS (")
		if err := t.queryPart(p.Query, false); err != nil {
			return err
		}
		t.w(")")
	case *ast.Between:
		if err := t.expression(p.Expr); err != nil {
			return err
		}
		if p.Negated {
			t.w(" NOT")
		}
		t.w(" BETWEEN ")
		if err := t.expression(p.Low); err != nil {
			return err
		}
		t.w(" AND ")
		if err := t.expression(p.High); err != nil {
			return err
		}
	case *ast.NullCheck:
		if err := t.expression(p.Expr); err != nil {
			return err
		}
		if p.Negated {
			t.w(" IS NOT NULL")
		} else {
			t.w(" IS NULL")
		}
	case *ast.BooleanExpressionPredicate:
		return t.expression(p.Expr)
	default:
		return sqlast.NewInvalidASTError("unknown predicate type %T", p)
	}
	return nil
}

func (t *Translator) junction(j *ast.Junction) error {
	// Empty junctions reduce to their identity element.
	if len(j.Predicates) == 0 {
		if j.Op == ast.And {
			t.w("1 = 1")
		} else {
			t.w("1 = 0")
		}
		return nil
	}
	if len(j.Predicates) == 1 {
		return t.predicate(j.Predicates[0])
	}
	for i, in := range j.Predicates {
		if i > 0 {
			t.w(" ")
			t.w(j.Op.String())
			t.w(" ")
		}
		if _, nested := in.(*ast.Junction); nested {
			t.w("(")
			if err := t.predicate(in); err != nil {
				return err
			}
			t.w(")")
			continue
		}
		if err := t.predicate(in); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) comparison(c *ast.Comparison) error {
	lt, lok := c.Left.(*ast.Tuple)
	rt, rok := c.Right.(*ast.Tuple)
	switch {
	case lok && rok:
		if len(lt.Exprs) != len(rt.Exprs) {
			return sqlast.NewInvalidASTError("tuple arity mismatch: %d != %d", len(lt.Exprs), len(rt.Exprs))
		}
		if t.supports(dialect.RowValueComparison) {
			break
		}
		return t.emulateTupleComparison(c.Op, lt.Exprs, rt.Exprs)
	case lok != rok:
		// A tuple against a subquery is row-valued and needs the native
		// constructor; a tuple against anything else is malformed.
		other := c.Right
		if rok {
			other = c.Left
		}
		if _, sub := other.(*ast.Subquery); !sub {
			return sqlast.NewInvalidASTError("tuple compared to non-tuple operand")
		}
		if !t.supports(dialect.RowValueComparison) {
			return t.unsupported("row-value comparison with subquery")
		}
	}
	if err := t.expression(c.Left); err != nil {
		return err
	}
	t.w(" ")
	t.w(c.Op.String())
	t.w(" ")
	return t.expression(c.Right)
}

// emulateTupleComparison expands a row-value comparison into scalar
// comparisons: conjunction for equality, disjunction for inequality, and
// the lexicographic expansion for ordering operators.
func (t *Translator) emulateTupleComparison(op ast.ComparisonOp, left, right []ast.Expression) error {
	scalar := func(op ast.ComparisonOp, i int) error {
		if err := t.expression(left[i]); err != nil {
			return err
		}
		t.w(" ")
		t.w(op.String())
		t.w(" ")
		return t.expression(right[i])
	}
	switch op {
	case ast.Eq, ast.Ne:
		join := " AND "
		each := ast.Eq
		if op == ast.Ne {
			join = " OR "
			each = ast.Ne
		}
		t.w("(")
		for i := range left {
			if i > 0 {
				t.w(join)
			}
			if err := scalar(each, i); err != nil {
				return err
			}
		}
		t.w(")")
		return nil
	}
	// Ordering: (a, b) < (x, y) becomes (a < x OR (a = x AND b < y)).
	strict := op
	if op == ast.Le {
		strict = ast.Lt
	} else if op == ast.Ge {
		strict = ast.Gt
	}
	var expand func(i int) error
	expand = func(i int) error {
		if i == len(left)-1 {
			return scalar(op, i)
		}
		t.w("(")
		if err := scalar(strict, i); err != nil {
			return err
		}
		t.w(" OR (")
		if err := scalar(ast.Eq, i); err != nil {
			return err
		}
		t.w(" AND ")
		if err := expand(i + 1); err != nil {
			return err
		}
		t.w("))")
		return nil
	}
	return expand(0)
}

func (t *Translator) inList(p *ast.InList) error {
	if len(p.List) == 0 {
		// IN over an empty list matches nothing.
		if p.Negated {
			t.w("1 = 1")
		} else {
			t.w("1 = 0")
		}
		return nil
	}
	tuple, isTuple := p.Test.(*ast.Tuple)
	if isTuple && !t.supports(dialect.RowValueComparison) {
		return t.emulateTupleInList(tuple, p)
	}
	if isTuple {
		for _, item := range p.List {
			it, ok := item.(*ast.Tuple)
			if !ok {
				return sqlast.NewInvalidASTError("tuple IN list contains non-tuple item")
			}
			if len(it.Exprs) != len(tuple.Exprs) {
				return sqlast.NewInvalidASTError("tuple arity mismatch: %d != %d", len(tuple.Exprs), len(it.Exprs))
			}
		}
	}
	if err := t.expression(p.Test); err != nil {
		return err
	}
	if p.Negated {
		t.w(" NOT")
	}
	t.w(" IN (")
	for i, item := range p.List {
		if i > 0 {
			t.w(", ")
		}
		if err := t.expression(item); err != nil {
			return err
		}
	}
	t.w(")")
	return nil
}

// emulateTupleInList expands a tuple IN-list into an OR-chain of pairwise
// equality conjunctions, one per constructed row. The expansion accepts
// exactly the tuples the native form accepts.
func (t *Translator) emulateTupleInList(tuple *ast.Tuple, p *ast.InList) error {
	if p.Negated {
		t.w("NOT ")
	}
	t.w("(")
	for i, item := range p.List {
		it, ok := item.(*ast.Tuple)
		if !ok {
			return sqlast.NewInvalidASTError("tuple IN list contains non-tuple item")
		}
		if len(it.Exprs) != len(tuple.Exprs) {
			return sqlast.NewInvalidASTError("tuple arity mismatch: %d != %d", len(tuple.Exprs), len(it.Exprs))
		}
		if i > 0 {
			t.w(" OR ")
		}
		if err := t.emulateTupleComparison(ast.Eq, tuple.Exprs, it.Exprs); err != nil {
			return err
		}
	}
	t.w(")")
	return nil
}

// inSubquery renders an IN (subquery) predicate. Multi-column tuple tests
// follow the try-native / emulate / fail ladder: the native row-value
// form, then rendering both sides as array values with the subquery select
// list collapsed under a scoped mode, then inlining the subquery into an
// EXISTS with pairwise equality.
func (t *Translator) inSubquery(p *ast.InSubquery) error {
	tuple, isTuple := p.Test.(*ast.Tuple)
	arity := ast.SelectionArity(p.Query)
	if isTuple {
		if arity != len(tuple.Exprs) {
			return sqlast.NewInvalidASTError("tuple arity mismatch: %d != %d", len(tuple.Exprs), arity)
		}
	} else if arity != 1 {
		return sqlast.NewInvalidASTError("IN subquery selects %d columns for a scalar test", arity)
	}

	if !isTuple || t.supports(dialect.RowValueInSubquery) {
		if err := t.expression(p.Test); err != nil {
			return err
		}
		if p.Negated {
			t.w(" NOT")
		}
		t.w(" IN (")
		if err := t.queryPart(p.Query, false); err != nil {
			return err
		}
		t.w(")")
		return nil
	}

	if t.supports(dialect.ArrayConstructor) && t.d.hooks.arrayConstructor != nil {
		if err := t.arrayConstructor(tuple.Exprs); err != nil {
			return err
		}
		if p.Negated {
			t.w(" NOT")
		}
		t.w(" IN (")
		t.pushMode(modeSelectAsRow)
		err := t.queryPart(p.Query, false)
		t.popMode()
		if err != nil {
			return err
		}
		t.w(")")
		return nil
	}

	return t.emulateTupleInSubquery(tuple, p)
}

// emulateTupleInSubquery inlines a simple subquery body into an EXISTS
// with pairwise equality between the test tuple and the subquery's select
// items. Shapes that cannot be inlined without changing semantics
// (set operations, DISTINCT, grouping, row limiting) are rejected.
func (t *Translator) emulateTupleInSubquery(tuple *ast.Tuple, p *ast.InSubquery) error {
	q, ok := p.Query.(*ast.QuerySpec)
	if !ok || q.Distinct || len(q.GroupBy) > 0 || q.Having != nil || q.Fetch != nil || len(q.From) == 0 {
		return t.unsupported("row-value IN subquery")
	}
	if p.Negated {
		t.w("NOT ")
	}
	t.w("EXISTS (SELECT 1 FROM ")
	for i, src := range q.From {
		if i > 0 {
			t.w(", ")
		}
		if err := t.tableSource(src); err != nil {
			return err
		}
	}
	t.w(" WHERE ")
	if q.Where != nil {
		t.w("(")
		if err := t.predicate(q.Where); err != nil {
			return err
		}
		t.w(") AND ")
	}
	for i := range tuple.Exprs {
		if i > 0 {
			t.w(" AND ")
		}
		if err := t.expression(tuple.Exprs[i]); err != nil {
			return err
		}
		t.w(" = ")
		if err := t.expression(q.Selections[i].Expr); err != nil {
			return err
		}
	}
	t.w(")")
	return nil
}
