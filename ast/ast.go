package ast

// Node is implemented by every tree node.
type Node interface{}

// Statement is the root of a translatable tree.
type Statement interface {
	Node
	isStatement()
}

// QueryPart is either a single select body (QuerySpec) or a set operation
// combining two parts (SetOperation).
type QueryPart interface {
	Node
	isQueryPart()
}

// TableSource is a FROM-clause item: a named table, a derived table, or a
// join tree over two sources.
type TableSource interface {
	Node
	isTableSource()
}

// SelectStatement is a top-level query, optionally carrying a WITH clause.
type SelectStatement struct {
	With  *WithClause // Optional
	Query QueryPart
}

// InsertStatement inserts literal rows or the result of a query.
// Exactly one of Rows and Source is set.
type InsertStatement struct {
	With    *WithClause // Optional
	Table   *NamedTable
	Columns []*ColumnReference
	Rows    [][]Expression
	Source  QueryPart
}

// UpdateStatement updates a single table.
type UpdateStatement struct {
	With        *WithClause // Optional
	Table       *NamedTable
	Assignments []Assignment
	Where       Predicate // Optional
}

// Assignment is a single SET item of an update.
type Assignment struct {
	Column *ColumnReference
	Value  Expression
}

// DeleteStatement deletes from a single table.
type DeleteStatement struct {
	With  *WithClause // Optional
	Table *NamedTable
	Where Predicate // Optional
}

func (*SelectStatement) isStatement() {}
func (*InsertStatement) isStatement() {}
func (*UpdateStatement) isStatement() {}
func (*DeleteStatement) isStatement() {}

// QuerySpec is a single select body.
type QuerySpec struct {
	Distinct   bool
	Selections []Selection
	From       []TableSource
	Where      Predicate // Optional
	GroupBy    []Expression
	Having     Predicate // Optional
	OrderBy    []SortItem
	Fetch      *FetchClause // Optional

	// parent is a non-owning back-reference to the enclosing query part.
	// It exists only so correlated subqueries can resolve outer columns;
	// translation never walks it.
	parent QueryPart
}

// Selection is one select-list item. A zero Alias renders no AS clause.
type Selection struct {
	Expr  Expression
	Alias string
}

// SetParent records the enclosing query part. Called by tree builders when
// nesting a QuerySpec as a subquery.
func (q *QuerySpec) SetParent(p QueryPart) { q.parent = p }

// Parent returns the enclosing query part, or nil for a root spec.
func (q *QuerySpec) Parent() QueryPart { return q.parent }

// SetOp enumerates set operation kinds.
type SetOp int

// Set operation kinds.
const (
	Union SetOp = iota
	UnionAll
	Intersect
	Except
)

// String returns the SQL spelling of the operator.
func (op SetOp) String() string {
	switch op {
	case Union:
		return "UNION"
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	}
	return "UNKNOWN"
}

// SetOperation combines two query parts. Operand select lists must have
// equal arity; see SelectionArity.
type SetOperation struct {
	Op    SetOp
	Left  QueryPart
	Right QueryPart

	// OrderBy and Fetch apply to the combined result.
	OrderBy []SortItem
	Fetch   *FetchClause
}

func (*QuerySpec) isQueryPart()    {}
func (*SetOperation) isQueryPart() {}

// SelectionArity returns the number of select-list columns produced by a
// query part. For set operations the left operand is authoritative; the
// translator verifies both sides agree.
func SelectionArity(p QueryPart) int {
	switch p := p.(type) {
	case *QuerySpec:
		return len(p.Selections)
	case *SetOperation:
		return SelectionArity(p.Left)
	}
	return 0
}

// WithClause is a list of common table expressions.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE is a single common table expression.
type CTE struct {
	Name    string
	Columns []string // Optional column aliases
	Body    QueryPart

	// Search and Cycle apply to recursive CTEs only. Rendering is
	// capability-gated per dialect.
	Search *SearchClause
	Cycle  *CycleClause
}

// SearchClause is the SQL:2008 SEARCH clause of a recursive CTE.
type SearchClause struct {
	DepthFirst bool // false = BREADTH FIRST
	By         []string
	SetColumn  string
}

// CycleClause is the SQL:2008 CYCLE clause of a recursive CTE.
type CycleClause struct {
	Columns    []string
	MarkColumn string
	PathColumn string
}

// NamedTable references a base table, optionally aliased.
type NamedTable struct {
	Name  string
	Alias string
}

// DerivedTable is a subquery in the FROM clause.
type DerivedTable struct {
	Query QueryPart
	Alias string
}

// JoinKind enumerates join kinds.
type JoinKind int

// Join kinds.
const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// String returns the SQL spelling of the join keyword.
func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	}
	return "JOIN"
}

// Join combines two table sources. On is nil for cross joins.
type Join struct {
	Kind  JoinKind
	Left  TableSource
	Right TableSource
	On    Predicate
}

func (*NamedTable) isTableSource()   {}
func (*DerivedTable) isTableSource() {}
func (*Join) isTableSource()         {}

// SortOrder enumerates sort directions.
type SortOrder int

// Sort directions.
const (
	Asc SortOrder = iota
	Desc
)

// NullOrdering enumerates NULLS FIRST/LAST handling.
type NullOrdering int

// Null orderings. NullsDefault emits no NULLS clause.
const (
	NullsDefault NullOrdering = iota
	NullsFirst
	NullsLast
)

// SortItem is one ORDER BY item.
type SortItem struct {
	Expr  Expression
	Order SortOrder
	Nulls NullOrdering
}

// FetchType enumerates row-limiting semantics of a fetch clause.
type FetchType int

// Fetch clause types. Only RowsOnly can be emulated with vendor LIMIT
// syntax; the PERCENT and WITH TIES variants change result-set semantics
// and require native dialect support.
const (
	RowsOnly FetchType = iota
	RowsWithTies
	PercentOnly
	PercentWithTies
)

// String returns a diagnostic name for the fetch type.
func (t FetchType) String() string {
	switch t {
	case RowsOnly:
		return "ROWS ONLY"
	case RowsWithTies:
		return "ROWS WITH TIES"
	case PercentOnly:
		return "PERCENT ROWS ONLY"
	case PercentWithTies:
		return "PERCENT WITH TIES"
	}
	return "UNKNOWN"
}

// FetchClause is the row-limiting clause of a query part. Offset and Count
// are both optional; present values must be non-negative.
type FetchClause struct {
	Offset *int64
	Count  *int64
	Type   FetchType
}

// Int64 returns a pointer to v, for building fetch clauses inline.
func Int64(v int64) *int64 { return &v }
