package translate

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/froque/sqlast"
	"github.com/froque/sqlast/ast"
	"github.com/froque/sqlast/dialect"
)

func (t *Translator) expression(e ast.Expression) error {
	switch e := e.(type) {
	case *ast.Literal:
		return t.literal(e)
	case *ast.ColumnReference:
		t.columnReference(e)
	case *ast.Star:
		if e.Qualifier != "" {
			t.w(e.Qualifier)
			t.w(".")
		}
		t.w("*")
	case *ast.Tuple:
		return t.tuple(e)
	case *ast.Parameter:
		t.placeholder(e)
	case *ast.BinaryExpression:
		return t.binary(e)
	case *ast.FunctionCall:
		return t.functionCall(e)
	case *ast.Subquery:
		t.w("(")
		if err := t.queryPart(e.Query, false); err != nil {
			return err
		}
		t.w(")")
	case *ast.CaseSearched:
		return t.caseSearched(e)
	case *ast.CaseSimple:
		return t.caseSimple(e)
	case *ast.Summarization:
		return sqlast.NewInvalidASTError("summarization outside GROUP BY")
	default:
		return sqlast.NewInvalidASTError("unknown expression type %T", e)
	}
	return nil
}

func (t *Translator) columnReference(c *ast.ColumnReference) {
	if c.Qualifier != "" {
		t.w(c.Qualifier)
		t.w(".")
	}
	t.w(c.Name)
}

func (t *Translator) tuple(tp *ast.Tuple) error {
	if len(tp.Exprs) == 0 {
		return sqlast.NewInvalidASTError("empty tuple")
	}
	t.w("(")
	for i, e := range tp.Exprs {
		if i > 0 {
			t.w(", ")
		}
		if err := t.expression(e); err != nil {
			return err
		}
	}
	t.w(")")
	return nil
}

func (t *Translator) binary(b *ast.BinaryExpression) error {
	operand := func(e ast.Expression) error {
		if _, nested := e.(*ast.BinaryExpression); nested {
			t.w("(")
			if err := t.expression(e); err != nil {
				return err
			}
			t.w(")")
			return nil
		}
		return t.expression(e)
	}
	if err := operand(b.Left); err != nil {
		return err
	}
	t.w(" ")
	t.w(b.Op.String())
	t.w(" ")
	return operand(b.Right)
}

func (t *Translator) functionCall(f *ast.FunctionCall) error {
	t.w(f.Name)
	t.w("(")
	if f.Distinct {
		t.w("DISTINCT ")
	}
	for i, a := range f.Args {
		if i > 0 {
			t.w(", ")
		}
		if err := t.expression(a); err != nil {
			return err
		}
	}
	t.w(")")
	if f.Over != nil {
		return t.window(f.Over)
	}
	return nil
}

func (t *Translator) window(w *ast.Window) error {
	if !t.supports(dialect.WindowFunctions) {
		return t.unsupported("window functions")
	}
	t.w(" OVER (")
	wrote := false
	if len(w.PartitionBy) > 0 {
		t.w("PARTITION BY ")
		for i, p := range w.PartitionBy {
			if i > 0 {
				t.w(", ")
			}
			if err := t.partitionItem(p); err != nil {
				return err
			}
		}
		wrote = true
	}
	if len(w.OrderBy) > 0 {
		if wrote {
			t.w(" ")
		}
		t.w("ORDER BY ")
		if err := t.sortItems(w.OrderBy); err != nil {
			return err
		}
	}
	t.w(")")
	return nil
}

// partitionItem renders one window partition key. Dialects that reject a
// bare literal here get a synthesized expression that is provably constant
// without being a literal token.
func (t *Translator) partitionItem(e ast.Expression) error {
	lit, isLiteral := e.(*ast.Literal)
	if !isLiteral || t.supports(dialect.LiteralPartitionKey) {
		return t.expression(e)
	}
	if t.d.hooks.constantPartitionItem == nil {
		return t.unsupported("literal window partition key")
	}
	t.d.hooks.constantPartitionItem(t, lit)
	return nil
}

func (t *Translator) caseSearched(c *ast.CaseSearched) error {
	if len(c.Whens) == 0 {
		return sqlast.NewInvalidASTError("CASE without WHEN arms")
	}
	t.w("CASE")
	for _, wh := range c.Whens {
		t.w(" WHEN ")
		if err := t.predicate(wh.Condition); err != nil {
			return err
		}
		t.w(" THEN ")
		if err := t.expression(wh.Result); err != nil {
			return err
		}
	}
	if c.Else != nil {
		t.w(" ELSE ")
		if err := t.expression(c.Else); err != nil {
			return err
		}
	}
	t.w(" END")
	return nil
}

func (t *Translator) caseSimple(c *ast.CaseSimple) error {
	if len(c.Whens) == 0 {
		return sqlast.NewInvalidASTError("CASE without WHEN arms")
	}
	t.w("CASE ")
	if err := t.expression(c.Operand); err != nil {
		return err
	}
	for _, wh := range c.Whens {
		t.w(" WHEN ")
		if err := t.expression(wh.Value); err != nil {
			return err
		}
		t.w(" THEN ")
		if err := t.expression(wh.Result); err != nil {
			return err
		}
	}
	if c.Else != nil {
		t.w(" ELSE ")
		if err := t.expression(c.Else); err != nil {
			return err
		}
	}
	t.w(" END")
	return nil
}

func (t *Translator) literal(l *ast.Literal) error {
	switch v := l.Value.(type) {
	case nil:
		t.w("NULL")
	case bool:
		if v {
			t.w("TRUE")
		} else {
			t.w("FALSE")
		}
	case int:
		t.w(strconv.FormatInt(int64(v), 10))
	case int32:
		t.w(strconv.FormatInt(int64(v), 10))
	case int64:
		t.w(strconv.FormatInt(v, 10))
	case uint64:
		t.w(strconv.FormatUint(v, 10))
	case float32:
		t.w(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case float64:
		t.w(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		t.quoted(v)
	case []byte:
		t.w("X'")
		t.w(hex.EncodeToString(v))
		t.w("'")
	case time.Time:
		t.w("TIMESTAMP '")
		t.w(v.Format("2006-01-02 15:04:05"))
		t.w("'")
	case uuid.UUID:
		t.quoted(v.String())
	case decimal.Decimal:
		// Exact decimal text, never a float round-trip.
		t.w(v.String())
	default:
		return sqlast.NewInvalidASTError("literal value type %T has no SQL rendering", v)
	}
	return nil
}

// quoted writes a single-quoted SQL string, doubling embedded quotes.
func (t *Translator) quoted(s string) {
	t.w("'")
	t.w(strings.ReplaceAll(s, "'", "''"))
	t.w("'")
}
