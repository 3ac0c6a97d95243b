package exec_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
	"github.com/froque/sqlast/exec"
	"github.com/froque/sqlast/plancache"
	"github.com/froque/sqlast/translate"
)

func newMockDriver(t *testing.T, opts ...exec.Option) (*exec.Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d, err := translate.Postgres(dialect.MustParseVersion("14"))
	require.NoError(t, err)
	return exec.OpenDB(d, db, opts...), mock
}

func byName(name string) *ast.SelectStatement {
	q := &ast.QuerySpec{
		Selections: []ast.Selection{{Expr: ast.Col("a", "id")}},
		From:       []ast.TableSource{&ast.NamedTable{Name: "tbl_a", Alias: "a"}},
		Where:      &ast.Comparison{Op: ast.Eq, Left: ast.Col("a", "name"), Right: &ast.Parameter{Name: "name", Value: name}},
	}
	return &ast.SelectStatement{Query: q}
}

func TestDriverQuery(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	mock.ExpectQuery("SELECT a.id FROM tbl_a a WHERE a.name = $1").
		WithArgs("alpha").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	rows, err := drv.Query(context.Background(), byName("alpha"))
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var id int64
	require.NoError(t, rows.Scan(&id))
	assert.Equal(t, int64(7), id)
	require.NoError(t, rows.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExec(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	mock.ExpectExec("INSERT INTO tbl_a (name) VALUES ($1)").
		WithArgs("beta").
		WillReturnResult(sqlmock.NewResult(1, 1))

	stmt := &ast.InsertStatement{
		Table:   &ast.NamedTable{Name: "tbl_a"},
		Columns: []*ast.ColumnReference{ast.Col("name")},
		Rows:    [][]ast.Expression{{&ast.Parameter{Value: "beta"}}},
	}
	res, err := drv.Exec(context.Background(), stmt)
	require.NoError(t, err)

	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverTx(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tbl_a WHERE id = $1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)

	del := &ast.DeleteStatement{
		Table: &ast.NamedTable{Name: "tbl_a"},
		Where: &ast.Comparison{Op: ast.Eq, Left: ast.Col("id"), Right: &ast.Parameter{Value: int64(3)}},
	}
	_, err = tx.Exec(context.Background(), del)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverTranslationErrorSkipsDatabase(t *testing.T) {
	t.Parallel()

	drv, mock := newMockDriver(t)

	q := byName("x")
	q.Query.(*ast.QuerySpec).Fetch = &ast.FetchClause{Count: ast.Int64(10), Type: ast.PercentOnly}

	_, err := drv.Query(context.Background(), q)
	require.Error(t, err)
	assert.True(t, sqlast.IsUnsupportedConstruct(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverSharesPlanCache(t *testing.T) {
	t.Parallel()

	cache := plancache.New()
	drv, mock := newMockDriver(t, exec.WithPlanCache(cache))

	for i := 0; i < 3; i++ {
		mock.ExpectQuery("SELECT a.id FROM tbl_a a WHERE a.name = $1").
			WithArgs("gamma").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}
	for i := 0; i < 3; i++ {
		rows, err := drv.Query(context.Background(), byName("gamma"))
		require.NoError(t, err)
		require.NoError(t, rows.Close())
	}

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(2), stats.Hits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriver(t *testing.T) {
	t.Parallel()

	t.Run("Counters", func(t *testing.T) {
		drv, mock := newMockDriver(t)
		stats := exec.NewStatsDriver(drv)

		mock.ExpectQuery("SELECT a.id FROM tbl_a a WHERE a.name = $1").
			WithArgs("delta").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec("DELETE FROM tbl_a").
			WillReturnResult(sqlmock.NewResult(0, 2))

		rows, err := stats.Query(context.Background(), byName("delta"))
		require.NoError(t, err)
		require.NoError(t, rows.Close())

		_, err = stats.Exec(context.Background(), &ast.DeleteStatement{Table: &ast.NamedTable{Name: "tbl_a"}})
		require.NoError(t, err)

		snap := stats.Stats().Snapshot()
		assert.Equal(t, int64(1), snap.Queries)
		assert.Equal(t, int64(1), snap.Execs)
		assert.Equal(t, int64(0), snap.Errors)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ErrorsCounted", func(t *testing.T) {
		drv, _ := newMockDriver(t)
		stats := exec.NewStatsDriver(drv)

		bad := byName("x")
		bad.Query.(*ast.QuerySpec).Fetch = &ast.FetchClause{Count: ast.Int64(1), Type: ast.PercentOnly}
		_, err := stats.Query(context.Background(), bad)
		require.Error(t, err)
		assert.Equal(t, int64(1), stats.Stats().Snapshot().Errors)
	})

	t.Run("SlowHook", func(t *testing.T) {
		drv, mock := newMockDriver(t)

		var slowSQL string
		stats := exec.NewStatsDriver(drv,
			exec.WithSlowThreshold(-time.Millisecond),
			exec.WithSlowHook(func(_ context.Context, sql string, args []any, _ time.Duration) {
				slowSQL = sql
			}),
		)

		mock.ExpectQuery("SELECT a.id FROM tbl_a a WHERE a.name = $1").
			WithArgs("epsilon").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rows, err := stats.Query(context.Background(), byName("epsilon"))
		require.NoError(t, err)
		require.NoError(t, rows.Close())

		assert.Equal(t, int64(1), stats.Stats().Snapshot().Slow)
		assert.Equal(t, "SELECT a.id FROM tbl_a a WHERE a.name = $1", slowSQL)
	})
}
