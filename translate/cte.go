package translate

import (
	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
)

func (t *Translator) withClause(w *ast.WithClause) error {
	if len(w.CTEs) == 0 {
		return sqlast.NewInvalidASTError("WITH clause without table expressions")
	}
	if !t.supports(dialect.WithClauseSupport) {
		return t.unsupported("WITH clause")
	}
	if w.Recursive && !t.supports(dialect.RecursiveCTE) {
		return t.unsupported("WITH RECURSIVE")
	}
	t.w("WITH ")
	if w.Recursive {
		t.w("RECURSIVE ")
	}
	for i, cte := range w.CTEs {
		if i > 0 {
			t.w(", ")
		}
		if err := t.cte(cte, w.Recursive); err != nil {
			return err
		}
	}
	t.w(" ")
	return nil
}

func (t *Translator) cte(c *ast.CTE, recursive bool) error {
	if c.Name == "" {
		return sqlast.NewInvalidASTError("common table expression without name")
	}
	t.w(c.Name)
	if len(c.Columns) > 0 {
		t.w(" (")
		for i, col := range c.Columns {
			if i > 0 {
				t.w(", ")
			}
			t.w(col)
		}
		t.w(")")
	}
	t.w(" AS (")
	if err := t.queryPart(c.Body, false); err != nil {
		return err
	}
	t.w(")")
	if c.Search != nil {
		if err := t.searchClause(c.Search, recursive); err != nil {
			return err
		}
	}
	if c.Cycle != nil {
		if err := t.cycleClause(c.Cycle, recursive); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) searchClause(s *ast.SearchClause, recursive bool) error {
	if !recursive {
		return sqlast.NewInvalidASTError("SEARCH clause on non-recursive CTE")
	}
	if !t.supports(dialect.CTESearchClause) {
		// SEARCH only orders the traversal; dialects may declare it a
		// droppable hint. CYCLE is never droppable (see cycleClause).
		if t.d.hooks.searchCycleIgnorable {
			return nil
		}
		return t.unsupported("recursive CTE SEARCH clause")
	}
	if s.DepthFirst {
		t.w(" SEARCH DEPTH FIRST BY ")
	} else {
		t.w(" SEARCH BREADTH FIRST BY ")
	}
	for i, b := range s.By {
		if i > 0 {
			t.w(", ")
		}
		t.w(b)
	}
	t.w(" SET ")
	t.w(s.SetColumn)
	return nil
}

func (t *Translator) cycleClause(c *ast.CycleClause, recursive bool) error {
	if !recursive {
		return sqlast.NewInvalidASTError("CYCLE clause on non-recursive CTE")
	}
	if !t.supports(dialect.CTECycleClause) {
		// Dropping cycle detection changes termination behavior, so the
		// ignorable-hint escape hatch does not apply here.
		return t.unsupported("recursive CTE CYCLE clause")
	}
	t.w(" CYCLE ")
	for i, col := range c.Columns {
		if i > 0 {
			t.w(", ")
		}
		t.w(col)
	}
	t.w(" SET ")
	t.w(c.MarkColumn)
	if c.PathColumn != "" {
		t.w(" USING ")
		t.w(c.PathColumn)
	}
	return nil
}
