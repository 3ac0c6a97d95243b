package plancache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
	"github.com/froque/sqlast/plancache"
	"github.com/froque/sqlast/translate"
)

func pgDialect(t *testing.T) *translate.Dialect {
	t.Helper()
	d, err := translate.Postgres(dialect.MustParseVersion("14"))
	require.NoError(t, err)
	return d
}

func idQuery(id int64) *ast.SelectStatement {
	q := &ast.QuerySpec{
		Selections: []ast.Selection{{Expr: ast.Col("a", "id")}},
		From:       []ast.TableSource{&ast.NamedTable{Name: "tbl_a", Alias: "a"}},
		Where:      &ast.Comparison{Op: ast.Eq, Left: ast.Col("a", "id"), Right: ast.Lit(id)},
	}
	return &ast.SelectStatement{Query: q}
}

func TestCacheHit(t *testing.T) {
	t.Parallel()

	c := plancache.New()
	d := pgDialect(t)

	first, err := c.Translate(d, idQuery(1))
	require.NoError(t, err)
	assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE a.id = 1", first.SQL)

	// A structurally identical statement hits the same entry.
	second, err := c.Translate(d, idQuery(1))
	require.NoError(t, err)
	assert.Same(t, first, second)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, c.Len())
}

func TestCacheKeysOnLiteralValues(t *testing.T) {
	t.Parallel()

	c := plancache.New()
	d := pgDialect(t)

	one, err := c.Translate(d, idQuery(1))
	require.NoError(t, err)
	two, err := c.Translate(d, idQuery(2))
	require.NoError(t, err)

	assert.NotEqual(t, one.SQL, two.SQL)
	assert.Equal(t, 2, c.Len())
}

func TestCacheKeysOnDialectAndVersion(t *testing.T) {
	t.Parallel()

	c := plancache.New()

	newer, err := translate.Postgres(dialect.MustParseVersion("14"))
	require.NoError(t, err)
	older, err := translate.Postgres(dialect.MustParseVersion("8.3"))
	require.NoError(t, err)

	q := idQuery(1)
	q.Query.(*ast.QuerySpec).Fetch = &ast.FetchClause{Count: ast.Int64(10), Type: ast.RowsOnly}

	a, err := c.Translate(newer, q)
	require.NoError(t, err)
	b, err := c.Translate(older, q)
	require.NoError(t, err)

	assert.Contains(t, a.SQL, "FETCH FIRST 10 ROWS ONLY")
	assert.Contains(t, b.SQL, "LIMIT 10")
	assert.Equal(t, 2, c.Len())
}

func TestCacheErrorsNotCached(t *testing.T) {
	t.Parallel()

	c := plancache.New()
	d := pgDialect(t)

	bad := idQuery(1)
	bad.Query.(*ast.QuerySpec).Fetch = &ast.FetchClause{Count: ast.Int64(10), Type: ast.PercentOnly}

	for i := 0; i < 2; i++ {
		_, err := c.Translate(d, bad)
		require.Error(t, err)
		assert.True(t, sqlast.IsUnsupportedConstruct(err))
	}
	assert.Equal(t, 0, c.Len())
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()

	c := plancache.New(plancache.WithMaxEntries(4))
	d := pgDialect(t)

	for i := int64(0); i < 10; i++ {
		_, err := c.Translate(d, idQuery(i))
		require.NoError(t, err)
	}
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, uint64(6), c.Stats().Evictions)
}

func TestCachePurge(t *testing.T) {
	t.Parallel()

	c := plancache.New()
	d := pgDialect(t)

	_, err := c.Translate(d, idQuery(1))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())

	// Repopulates after a purge.
	_, err = c.Translate(d, idQuery(1))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := plancache.New()
	d := pgDialect(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := int64(0); j < 50; j++ {
				res, err := c.Translate(d, idQuery(j%5))
				assert.NoError(t, err)
				assert.NotNil(t, res)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, c.Len())
}
