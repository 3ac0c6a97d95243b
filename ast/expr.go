package ast

// Expression is a scalar-valued tree node.
type Expression interface {
	Node
	isExpression()
}

// Literal is a constant value. A nil Value renders as NULL.
type Literal struct {
	Value any
}

// ColumnReference names a column, optionally qualified by a table alias.
type ColumnReference struct {
	Qualifier string // Optional
	Name      string
}

// Star is the select-list wildcard, optionally qualified (a.*). It is a
// distinguished expression variant rather than a separate node family.
type Star struct {
	Qualifier string // Optional
}

// Tuple is an ordered group of expressions compared or selected as a unit
// (a row value). Arities of tuples on both sides of a comparison must
// match; the translator verifies this.
type Tuple struct {
	Exprs []Expression
}

// Parameter is a bind-parameter placeholder. The translator collects
// parameters in render order; Value travels with the placeholder so the
// execution layer can bind positionally.
type Parameter struct {
	Name  string // Optional, for named-placeholder dialects
	Value any
}

// BinaryOp enumerates binary scalar operators.
type BinaryOp int

// Binary operators.
const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Modulo
	Concat
)

// String returns the SQL spelling of the operator.
func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "%"
	case Concat:
		return "||"
	}
	return "?"
}

// BinaryExpression applies a binary operator to two operands.
type BinaryExpression struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

// FunctionCall invokes a SQL function, optionally windowed.
type FunctionCall struct {
	Name     string
	Args     []Expression
	Distinct bool    // COUNT(DISTINCT ...)
	Over     *Window // Optional window specification
}

// Window is an OVER clause.
type Window struct {
	PartitionBy []Expression
	OrderBy     []SortItem
}

// SummarizationKind enumerates grouping summarizations.
type SummarizationKind int

// Summarization kinds.
const (
	Rollup SummarizationKind = iota
	Cube
)

// String returns the SQL keyword of the summarization.
func (k SummarizationKind) String() string {
	switch k {
	case Rollup:
		return "ROLLUP"
	case Cube:
		return "CUBE"
	}
	return "UNKNOWN"
}

// Summarization wraps a grouping list in ROLLUP or CUBE. It appears only
// inside a GROUP BY list.
type Summarization struct {
	Kind      SummarizationKind
	Groupings []Expression
}

// Subquery embeds a query part as a scalar or row-valued expression.
type Subquery struct {
	Query QueryPart
}

// SearchedWhen is one WHEN arm of a searched CASE.
type SearchedWhen struct {
	Condition Predicate
	Result    Expression
}

// CaseSearched is CASE WHEN p THEN e ... [ELSE e] END.
type CaseSearched struct {
	Whens []SearchedWhen
	Else  Expression // Optional
}

// SimpleWhen is one WHEN arm of a simple CASE.
type SimpleWhen struct {
	Value  Expression
	Result Expression
}

// CaseSimple is CASE operand WHEN v THEN e ... [ELSE e] END.
type CaseSimple struct {
	Operand Expression
	Whens   []SimpleWhen
	Else    Expression // Optional
}

func (*Literal) isExpression()          {}
func (*ColumnReference) isExpression()  {}
func (*Star) isExpression()             {}
func (*Tuple) isExpression()            {}
func (*Parameter) isExpression()        {}
func (*BinaryExpression) isExpression() {}
func (*FunctionCall) isExpression()     {}
func (*Summarization) isExpression()    {}
func (*Subquery) isExpression()         {}
func (*CaseSearched) isExpression()     {}
func (*CaseSimple) isExpression()       {}

// Col returns a column reference. The first of two arguments is the
// qualifier; with one argument the reference is unqualified.
func Col(parts ...string) *ColumnReference {
	switch len(parts) {
	case 1:
		return &ColumnReference{Name: parts[0]}
	case 2:
		return &ColumnReference{Qualifier: parts[0], Name: parts[1]}
	}
	panic("ast: Col expects 1 or 2 arguments")
}

// Lit returns a literal expression.
func Lit(v any) *Literal { return &Literal{Value: v} }
