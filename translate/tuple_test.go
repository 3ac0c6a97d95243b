package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
	"github.com/froque/sqlast/translate"
)

func pair(a, b ast.Expression) *ast.Tuple {
	return &ast.Tuple{Exprs: []ast.Expression{a, b}}
}

func whereStmt(p ast.Predicate) *ast.SelectStatement {
	q := selectFrom("tbl_a", "a", "id")
	q.Where = p
	return &ast.SelectStatement{Query: q}
}

func TestTupleComparison(t *testing.T) {
	t.Parallel()

	xy := pair(ast.Col("a", "x"), ast.Col("a", "y"))
	onetwo := pair(ast.Lit(1), ast.Lit(2))

	t.Run("NativeRowValue", func(t *testing.T) {
		res := mustSQL(t, pg(t, "14"), whereStmt(&ast.Comparison{Op: ast.Eq, Left: xy, Right: onetwo}))
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE (a.x, a.y) = (1, 2)", res.SQL)
	})

	t.Run("EmulatedEquality", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.Comparison{Op: ast.Eq, Left: xy, Right: onetwo}))
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE (a.x = 1 AND a.y = 2)", res.SQL)
	})

	t.Run("EmulatedInequality", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.Comparison{Op: ast.Ne, Left: xy, Right: onetwo}))
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE (a.x <> 1 OR a.y <> 2)", res.SQL)
	})

	t.Run("EmulatedOrderingIsLexicographic", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.Comparison{Op: ast.Lt, Left: xy, Right: onetwo}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x < 1 OR (a.x = 1 AND a.y < 2))",
			res.SQL)
	})

	t.Run("EmulatedOrderingInclusiveLastPosition", func(t *testing.T) {
		// <= stays strict on every position except the last.
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.Comparison{Op: ast.Le, Left: xy, Right: onetwo}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x < 1 OR (a.x = 1 AND a.y <= 2))",
			res.SQL)
	})

	t.Run("ThreeColumnOrdering", func(t *testing.T) {
		left := &ast.Tuple{Exprs: []ast.Expression{ast.Col("a"), ast.Col("b"), ast.Col("c")}}
		right := &ast.Tuple{Exprs: []ast.Expression{ast.Lit(1), ast.Lit(2), ast.Lit(3)}}
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.Comparison{Op: ast.Gt, Left: left, Right: right}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a > 1 OR (a = 1 AND (b > 2 OR (b = 2 AND c > 3))))",
			res.SQL)
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		bad := &ast.Comparison{Op: ast.Eq, Left: xy, Right: &ast.Tuple{Exprs: []ast.Expression{ast.Lit(1)}}}
		_, err := translate.New(pg(t, "14")).Translate(whereStmt(bad))
		assert.True(t, sqlast.IsInvalidAST(err))
	})

	t.Run("TupleAgainstScalarIsMalformed", func(t *testing.T) {
		bad := &ast.Comparison{Op: ast.Eq, Left: xy, Right: ast.Lit(1)}
		_, err := translate.New(pg(t, "14")).Translate(whereStmt(bad))
		assert.True(t, sqlast.IsInvalidAST(err))
	})

	t.Run("TupleAgainstSubqueryNeedsNativeSupport", func(t *testing.T) {
		cmp := &ast.Comparison{Op: ast.Eq, Left: xy, Right: &ast.Subquery{Query: selectFrom("tbl_b", "b", "x", "y")}}

		res := mustSQL(t, pg(t, "14"), whereStmt(cmp))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x, a.y) = (SELECT b.x, b.y FROM tbl_b b)",
			res.SQL)

		_, err := translate.New(lite(t, "3.8")).Translate(whereStmt(cmp))
		assert.True(t, sqlast.IsUnsupportedConstruct(err))
	})
}

func TestTupleInList(t *testing.T) {
	t.Parallel()

	test := pair(ast.Col("a", "x"), ast.Col("a", "y"))
	list := []ast.Expression{
		pair(ast.Lit(1), ast.Lit(2)),
		pair(ast.Lit(3), ast.Lit(4)),
	}

	t.Run("Native", func(t *testing.T) {
		res := mustSQL(t, pg(t, "14"), whereStmt(&ast.InList{Test: test, List: list}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x, a.y) IN ((1, 2), (3, 4))",
			res.SQL)
	})

	t.Run("EmulatedOrChain", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.InList{Test: test, List: list}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE ((a.x = 1 AND a.y = 2) OR (a.x = 3 AND a.y = 4))",
			res.SQL)
	})

	t.Run("EmulatedNegated", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.InList{Test: test, List: list, Negated: true}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE NOT ((a.x = 1 AND a.y = 2) OR (a.x = 3 AND a.y = 4))",
			res.SQL)
	})

	t.Run("EmptyListMatchesNothing", func(t *testing.T) {
		res := mustSQL(t, pg(t, "14"), whereStmt(&ast.InList{Test: ast.Col("a", "id")}))
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE 1 = 0", res.SQL)

		res = mustSQL(t, pg(t, "14"), whereStmt(&ast.InList{Test: ast.Col("a", "id"), Negated: true}))
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE 1 = 1", res.SQL)
	})

	t.Run("MixedItemsRejected", func(t *testing.T) {
		bad := &ast.InList{Test: test, List: []ast.Expression{pair(ast.Lit(1), ast.Lit(2)), ast.Lit(3)}}
		for _, d := range []*translate.Dialect{pg(t, "14"), lite(t, "3.8")} {
			_, err := translate.New(d).Translate(whereStmt(bad))
			assert.True(t, sqlast.IsInvalidAST(err), d.Name())
		}
	})
}

// arrayOnlySet builds a capability set for a dialect that lacks the native
// row-value IN form but has an array constructor, forcing the middle rung
// of the emulation ladder.
func arrayOnlySet(t *testing.T) *translate.Dialect {
	t.Helper()
	caps, err := dialect.NewSet(dialect.Postgres, dialect.MustParseVersion("14"), dialect.Table{
		dialect.ArrayConstructor:  {Enabled: true},
		dialect.SelectWithoutFrom: {Enabled: true},
	})
	require.NoError(t, err)
	return translate.ForSet(caps)
}

func TestTupleInSubquery(t *testing.T) {
	t.Parallel()

	test := pair(ast.Col("a", "x"), ast.Col("a", "y"))
	sub := func() *ast.QuerySpec {
		q := selectFrom("tbl_b", "b", "x", "y")
		q.Where = &ast.Comparison{Op: ast.Eq, Left: ast.Col("b", "z"), Right: ast.Lit(1)}
		return q
	}

	t.Run("Native", func(t *testing.T) {
		res := mustSQL(t, pg(t, "14"), whereStmt(&ast.InSubquery{Test: test, Query: sub()}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x, a.y) IN (SELECT b.x, b.y FROM tbl_b b WHERE b.z = 1)",
			res.SQL)
	})

	t.Run("ArrayConstructorRung", func(t *testing.T) {
		res := mustSQL(t, arrayOnlySet(t), whereStmt(&ast.InSubquery{Test: test, Query: sub()}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE ARRAY[a.x, a.y] IN (SELECT ARRAY[b.x, b.y] FROM tbl_b b WHERE b.z = 1)",
			res.SQL)
	})

	t.Run("ArrayModeDoesNotLeakIntoNestedSubqueries", func(t *testing.T) {
		q := sub()
		q.Where = &ast.InSubquery{Test: ast.Col("b", "z"), Query: selectFrom("tbl_c", "c", "z")}
		res := mustSQL(t, arrayOnlySet(t), whereStmt(&ast.InSubquery{Test: test, Query: q}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE ARRAY[a.x, a.y] IN"+
				" (SELECT ARRAY[b.x, b.y] FROM tbl_b b WHERE b.z IN (SELECT c.z FROM tbl_c c))",
			res.SQL)
	})

	t.Run("ExistsRewriteRung", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.InSubquery{Test: test, Query: sub()}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE EXISTS"+
				" (SELECT 1 FROM tbl_b b WHERE (b.z = 1) AND a.x = b.x AND a.y = b.y)",
			res.SQL)
	})

	t.Run("ExistsRewriteNegated", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.InSubquery{Test: test, Query: sub(), Negated: true}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE NOT EXISTS"+
				" (SELECT 1 FROM tbl_b b WHERE (b.z = 1) AND a.x = b.x AND a.y = b.y)",
			res.SQL)
	})

	t.Run("ExistsRewriteWithoutInnerWhere", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.8"), whereStmt(&ast.InSubquery{Test: test, Query: selectFrom("tbl_b", "b", "x", "y")}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE EXISTS"+
				" (SELECT 1 FROM tbl_b b WHERE a.x = b.x AND a.y = b.y)",
			res.SQL)
	})

	t.Run("UninlinableShapesFail", func(t *testing.T) {
		distinct := sub()
		distinct.Distinct = true
		limited := sub()
		limited.Fetch = &ast.FetchClause{Count: ast.Int64(1), Type: ast.RowsOnly}
		grouped := sub()
		grouped.GroupBy = []ast.Expression{ast.Col("b", "x")}

		for name, q := range map[string]ast.QueryPart{
			"Distinct": distinct,
			"Limited":  limited,
			"Grouped":  grouped,
			"SetOperation": &ast.SetOperation{
				Op:    ast.Union,
				Left:  selectFrom("tbl_b", "b", "x", "y"),
				Right: selectFrom("tbl_c", "c", "x", "y"),
			},
		} {
			_, err := translate.New(lite(t, "3.8")).Translate(whereStmt(&ast.InSubquery{Test: test, Query: q}))
			require.Error(t, err, name)
			assert.True(t, sqlast.IsUnsupportedConstruct(err), name)

			var uc *sqlast.UnsupportedConstructError
			require.ErrorAs(t, err, &uc, name)
			assert.Equal(t, "row-value IN subquery", uc.Construct(), name)
		}
	})

	t.Run("ArityMismatch", func(t *testing.T) {
		_, err := translate.New(pg(t, "14")).Translate(
			whereStmt(&ast.InSubquery{Test: test, Query: selectFrom("tbl_b", "b", "x")}))
		assert.True(t, sqlast.IsInvalidAST(err))
	})

	t.Run("ScalarTestNeedsSingleColumn", func(t *testing.T) {
		_, err := translate.New(pg(t, "14")).Translate(
			whereStmt(&ast.InSubquery{Test: ast.Col("a", "id"), Query: selectFrom("tbl_b", "b", "x", "y")}))
		assert.True(t, sqlast.IsInvalidAST(err))
	})

	t.Run("ModernSQLiteIsNative", func(t *testing.T) {
		res := mustSQL(t, lite(t, "3.45"), whereStmt(&ast.InSubquery{Test: test, Query: sub()}))
		assert.Equal(t,
			"SELECT a.id FROM tbl_a a WHERE (a.x, a.y) IN (SELECT b.x, b.y FROM tbl_b b WHERE b.z = 1)",
			res.SQL)
	})
}
