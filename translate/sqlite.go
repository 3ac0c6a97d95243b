package translate

import "strconv"

func sqliteHooks() hooks {
	return hooks{
		limit: func(t *Translator, offset, count *int64) {
			// OFFSET is only valid after a LIMIT; -1 means unlimited.
			t.w(" LIMIT ")
			if count != nil {
				t.w(strconv.FormatInt(*count, 10))
			} else {
				t.w("-1")
			}
			if offset != nil {
				t.w(" OFFSET ")
				t.w(strconv.FormatInt(*offset, 10))
			}
		},

		// SQLite has no SEARCH clause; its recursive CTE evaluation order
		// is already selectable with ORDER BY inside the recursive step,
		// so the clause is treated as a droppable traversal hint. CYCLE
		// is still rejected by the core translator.
		searchCycleIgnorable: true,
	}
}
