package translate

import (
	"strconv"

	"github.com/froque/sqlast/ast"
)

// postgresHooks overrides only what PostgreSQL spells differently from the
// core rendering: numbered placeholders and the ARRAY constructor. Row
// limiting, summarization and SEARCH/CYCLE all render natively under the
// capability defaults.
func postgresHooks() hooks {
	return hooks{
		parenthesizedSetOperands: true,

		placeholder: func(i int, _ string) string {
			return "$" + strconv.Itoa(i)
		},
		arrayConstructor: func(t *Translator, exprs []ast.Expression) error {
			t.w("ARRAY[")
			for i, e := range exprs {
				if i > 0 {
					t.w(", ")
				}
				if err := t.expression(e); err != nil {
					return err
				}
			}
			t.w("]")
			return nil
		},
	}
}
