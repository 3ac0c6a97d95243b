package ast

// Predicate is a boolean-valued tree node.
type Predicate interface {
	Node
	isPredicate()
}

// ComparisonOp enumerates comparison operators.
type ComparisonOp int

// Comparison operators.
const (
	Eq ComparisonOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// String returns the SQL spelling of the operator.
func (op ComparisonOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	}
	return "="
}

// Negate returns the complementary operator.
func (op ComparisonOp) Negate() ComparisonOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Le:
		return Gt
	case Gt:
		return Le
	case Ge:
		return Lt
	}
	return op
}

// Comparison compares two operands. Operands may be tuples; tuple arities
// must match on both sides.
type Comparison struct {
	Op    ComparisonOp
	Left  Expression
	Right Expression
}

// JunctionOp enumerates junction operators.
type JunctionOp int

// Junction operators.
const (
	And JunctionOp = iota
	Or
)

// String returns the SQL spelling of the operator.
func (op JunctionOp) String() string {
	if op == Or {
		return "OR"
	}
	return "AND"
}

// Junction combines predicates with AND or OR. An empty AND junction
// renders as a tautology, an empty OR junction as a contradiction.
type Junction struct {
	Op         JunctionOp
	Predicates []Predicate
}

// Not negates a predicate.
type Not struct {
	Inner Predicate
}

// InList tests membership of an expression in a literal list.
type InList struct {
	Test    Expression
	List    []Expression
	Negated bool
}

// InSubquery tests membership of an expression, possibly a tuple, in the
// result of a subquery.
type InSubquery struct {
	Test    Expression
	Query   QueryPart
	Negated bool
}

// Exists tests whether a subquery returns any row.
type Exists struct {
	Query   QueryPart
	Negated bool
}

// Between tests containment in an inclusive range.
type Between struct {
	Expr    Expression
	Low     Expression
	High    Expression
	Negated bool
}

// NullCheck is IS [NOT] NULL.
type NullCheck struct {
	Expr    Expression
	Negated bool
}

// BooleanExpressionPredicate lifts a boolean-valued expression into
// predicate position, for dialects with no native boolean predicate form.
type BooleanExpressionPredicate struct {
	Expr Expression
}

func (*Comparison) isPredicate()                 {}
func (*Junction) isPredicate()                   {}
func (*Not) isPredicate()                        {}
func (*InList) isPredicate()                     {}
func (*InSubquery) isPredicate()                 {}
func (*Exists) isPredicate()                     {}
func (*Between) isPredicate()                    {}
func (*NullCheck) isPredicate()                  {}
func (*BooleanExpressionPredicate) isPredicate() {}
