package translate

import (
	"strconv"

	"github.com/froque/sqlast/ast"
)

// mysqlMaxRowCount is the documented trick for an offset without a count:
// LIMIT requires a count operand, so "all remaining rows" is spelled as
// the largest unsigned 64-bit value.
const mysqlMaxRowCount = "18446744073709551615"

func mysqlHooks() hooks {
	return hooks{
		parenthesizedSetOperands: true,

		limit: func(t *Translator, offset, count *int64) {
			t.w(" LIMIT ")
			if offset != nil {
				t.w(strconv.FormatInt(*offset, 10))
				t.w(", ")
				if count != nil {
					t.w(strconv.FormatInt(*count, 10))
				} else {
					t.w(mysqlMaxRowCount)
				}
				return
			}
			t.w(strconv.FormatInt(*count, 10))
		},

		// MySQL spells ROLLUP as a suffix of the grouping list and has no
		// CUBE at all.
		groupBySummarization: func(t *Translator, s *ast.Summarization) error {
			if s.Kind != ast.Rollup {
				return t.unsupported("Summarization (CUBE)")
			}
			for i, g := range s.Groupings {
				if i > 0 {
					t.w(", ")
				}
				if err := t.expression(g); err != nil {
					return err
				}
			}
			t.w(" WITH ROLLUP")
			return nil
		},

		// MySQL rejects a bare literal as a window partition key; a
		// constant function call is accepted and partitions identically.
		constantPartitionItem: func(t *Translator, _ *ast.Literal) {
			t.w("CONCAT('', '')")
		},

		singleRowFromTable: "DUAL",
	}
}
