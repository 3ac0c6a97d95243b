package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/froque/sqlast/ast"
)

func selectIDFrom(table string) *ast.QuerySpec {
	return &ast.QuerySpec{
		Selections: []ast.Selection{{Expr: ast.Col("a", "id")}},
		From:       []ast.TableSource{&ast.NamedTable{Name: table, Alias: "a"}},
	}
}

func TestSelectionArity(t *testing.T) {
	t.Parallel()

	t.Run("QuerySpec", func(t *testing.T) {
		q := &ast.QuerySpec{Selections: []ast.Selection{
			{Expr: ast.Col("id")},
			{Expr: ast.Col("name")},
		}}
		assert.Equal(t, 2, ast.SelectionArity(q))
	})

	t.Run("SetOperation", func(t *testing.T) {
		op := &ast.SetOperation{
			Op:    ast.Union,
			Left:  selectIDFrom("tbl_a"),
			Right: selectIDFrom("tbl_b"),
		}
		assert.Equal(t, 1, ast.SelectionArity(op))
	})

	t.Run("NestedSetOperation", func(t *testing.T) {
		op := &ast.SetOperation{
			Op: ast.Except,
			Left: &ast.SetOperation{
				Op:    ast.Union,
				Left:  selectIDFrom("tbl_a"),
				Right: selectIDFrom("tbl_b"),
			},
			Right: selectIDFrom("tbl_c"),
		}
		assert.Equal(t, 1, ast.SelectionArity(op))
	})
}

func TestParentReference(t *testing.T) {
	t.Parallel()

	outer := selectIDFrom("tbl_a")
	inner := selectIDFrom("tbl_b")
	assert.Nil(t, inner.Parent())

	inner.SetParent(outer)
	assert.Same(t, ast.QueryPart(outer), inner.Parent())
}

func TestCol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, &ast.ColumnReference{Name: "id"}, ast.Col("id"))
	assert.Equal(t, &ast.ColumnReference{Qualifier: "a", Name: "id"}, ast.Col("a", "id"))
	assert.Panics(t, func() { ast.Col() })
	assert.Panics(t, func() { ast.Col("a", "b", "c") })
}

func TestOperatorSpellings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UNION", ast.Union.String())
	assert.Equal(t, "UNION ALL", ast.UnionAll.String())
	assert.Equal(t, "INTERSECT", ast.Intersect.String())
	assert.Equal(t, "EXCEPT", ast.Except.String())

	assert.Equal(t, "LEFT JOIN", ast.LeftJoin.String())
	assert.Equal(t, "CROSS JOIN", ast.CrossJoin.String())

	assert.Equal(t, "<>", ast.Ne.String())
	assert.Equal(t, ast.Ge, ast.Lt.Negate())
	assert.Equal(t, ast.Eq, ast.Ne.Negate())

	assert.Equal(t, "ROLLUP", ast.Rollup.String())
	assert.Equal(t, "CUBE", ast.Cube.String())

	assert.Equal(t, "PERCENT WITH TIES", ast.PercentWithTies.String())
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	base := func() ast.Statement {
		q := selectIDFrom("tbl_a")
		q.Where = &ast.Comparison{Op: ast.Eq, Left: ast.Col("a", "id"), Right: &ast.Parameter{Value: 7}}
		q.OrderBy = []ast.SortItem{{Expr: ast.Col("a", "id")}}
		q.Fetch = &ast.FetchClause{Offset: ast.Int64(1), Count: ast.Int64(10), Type: ast.RowsOnly}
		return &ast.SelectStatement{Query: q}
	}

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, ast.Fingerprint(base()), ast.Fingerprint(base()))
	})

	t.Run("DiffersByStructure", func(t *testing.T) {
		other := base().(*ast.SelectStatement)
		other.Query.(*ast.QuerySpec).Distinct = true
		assert.NotEqual(t, ast.Fingerprint(base()), ast.Fingerprint(other))
	})

	t.Run("DiffersByBinding", func(t *testing.T) {
		other := base().(*ast.SelectStatement)
		other.Query.(*ast.QuerySpec).Where = &ast.Comparison{
			Op:    ast.Eq,
			Left:  ast.Col("a", "id"),
			Right: &ast.Parameter{Value: 8},
		}
		assert.NotEqual(t, ast.Fingerprint(base()), ast.Fingerprint(other))
	})

	t.Run("DiffersByFetchType", func(t *testing.T) {
		other := base().(*ast.SelectStatement)
		other.Query.(*ast.QuerySpec).Fetch.Type = ast.RowsWithTies
		assert.NotEqual(t, ast.Fingerprint(base()), ast.Fingerprint(other))
	})

	t.Run("DiffersByMutationWith", func(t *testing.T) {
		del := func(w *ast.WithClause) ast.Statement {
			return &ast.DeleteStatement{
				With:  w,
				Table: &ast.NamedTable{Name: "tbl_b"},
			}
		}
		w := &ast.WithClause{CTEs: []*ast.CTE{{Name: "doomed", Body: selectIDFrom("tbl_a")}}}
		assert.NotEqual(t, ast.Fingerprint(del(nil)), ast.Fingerprint(del(w)))
	})
}
