package ast

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/dchest/siphash"
)

// fingerprintKey is a fixed key: fingerprints are structural identities,
// not MACs, and must be stable across processes.
var fingerprintKey = []byte("sqlast.fingerpnt")

// Fingerprint returns a deterministic structural hash of a statement.
// Two statements with equal fingerprints translate to byte-identical SQL
// with identical parameter order on any given dialect, which makes the
// fingerprint usable as a plan-cache key. Literal and parameter values are
// included, so the hash identifies the fully bound statement.
func Fingerprint(s Statement) uint64 {
	h := &hasher{h: siphash.New(fingerprintKey)}
	h.statement(s)
	return h.h.Sum64()
}

type hasher struct {
	h   hash.Hash64
	buf [8]byte
}

func (h *hasher) tag(t byte) {
	h.buf[0] = t
	h.h.Write(h.buf[:1])
}

func (h *hasher) i64(v int64) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	h.h.Write(h.buf[:])
}

func (h *hasher) str(s string) {
	h.i64(int64(len(s)))
	h.h.Write([]byte(s))
}

func (h *hasher) bool(v bool) {
	if v {
		h.tag(1)
	} else {
		h.tag(0)
	}
}

func (h *hasher) value(v any) {
	// Values are hashed through their printed form. This is stable for the
	// value types that reach literals and parameters (numbers, strings,
	// bools, time, uuid, decimal).
	h.str(fmt.Sprintf("%T:%v", v, v))
}

func (h *hasher) statement(s Statement) {
	switch s := s.(type) {
	case *SelectStatement:
		h.tag(0x01)
		if s.With != nil {
			h.with(s.With)
		}
		h.part(s.Query)
	case *InsertStatement:
		h.tag(0x02)
		if s.With != nil {
			h.with(s.With)
		}
		h.str(s.Table.Name)
		for _, c := range s.Columns {
			h.str(c.Name)
		}
		h.i64(int64(len(s.Rows)))
		for _, row := range s.Rows {
			for _, e := range row {
				h.expr(e)
			}
		}
		if s.Source != nil {
			h.part(s.Source)
		}
	case *UpdateStatement:
		h.tag(0x03)
		if s.With != nil {
			h.with(s.With)
		}
		h.str(s.Table.Name)
		for _, a := range s.Assignments {
			h.str(a.Column.Name)
			h.expr(a.Value)
		}
		if s.Where != nil {
			h.pred(s.Where)
		}
	case *DeleteStatement:
		h.tag(0x04)
		if s.With != nil {
			h.with(s.With)
		}
		h.str(s.Table.Name)
		if s.Where != nil {
			h.pred(s.Where)
		}
	default:
		panic(fmt.Sprintf("ast: unknown statement type %T", s))
	}
}

func (h *hasher) with(w *WithClause) {
	h.tag(0x10)
	h.bool(w.Recursive)
	for _, cte := range w.CTEs {
		h.str(cte.Name)
		for _, c := range cte.Columns {
			h.str(c)
		}
		h.part(cte.Body)
		if cte.Search != nil {
			h.tag(0x11)
			h.bool(cte.Search.DepthFirst)
			for _, b := range cte.Search.By {
				h.str(b)
			}
			h.str(cte.Search.SetColumn)
		}
		if cte.Cycle != nil {
			h.tag(0x12)
			for _, c := range cte.Cycle.Columns {
				h.str(c)
			}
			h.str(cte.Cycle.MarkColumn)
			h.str(cte.Cycle.PathColumn)
		}
	}
}

func (h *hasher) part(p QueryPart) {
	switch p := p.(type) {
	case *QuerySpec:
		h.tag(0x20)
		h.bool(p.Distinct)
		h.i64(int64(len(p.Selections)))
		for _, sel := range p.Selections {
			h.expr(sel.Expr)
			h.str(sel.Alias)
		}
		for _, src := range p.From {
			h.source(src)
		}
		if p.Where != nil {
			h.pred(p.Where)
		}
		for _, g := range p.GroupBy {
			h.expr(g)
		}
		if p.Having != nil {
			h.pred(p.Having)
		}
		h.sortItems(p.OrderBy)
		h.fetch(p.Fetch)
	case *SetOperation:
		h.tag(0x21)
		h.i64(int64(p.Op))
		h.part(p.Left)
		h.part(p.Right)
		h.sortItems(p.OrderBy)
		h.fetch(p.Fetch)
	default:
		panic(fmt.Sprintf("ast: unknown query part type %T", p))
	}
}

func (h *hasher) source(s TableSource) {
	switch s := s.(type) {
	case *NamedTable:
		h.tag(0x30)
		h.str(s.Name)
		h.str(s.Alias)
	case *DerivedTable:
		h.tag(0x31)
		h.part(s.Query)
		h.str(s.Alias)
	case *Join:
		h.tag(0x32)
		h.i64(int64(s.Kind))
		h.source(s.Left)
		h.source(s.Right)
		if s.On != nil {
			h.pred(s.On)
		}
	default:
		panic(fmt.Sprintf("ast: unknown table source type %T", s))
	}
}

func (h *hasher) sortItems(items []SortItem) {
	h.i64(int64(len(items)))
	for _, it := range items {
		h.expr(it.Expr)
		h.i64(int64(it.Order))
		h.i64(int64(it.Nulls))
	}
}

func (h *hasher) fetch(f *FetchClause) {
	if f == nil {
		h.tag(0x40)
		return
	}
	h.tag(0x41)
	h.i64(int64(f.Type))
	if f.Offset != nil {
		h.i64(*f.Offset)
	} else {
		h.tag(0)
	}
	if f.Count != nil {
		h.i64(*f.Count)
	} else {
		h.tag(0)
	}
}

func (h *hasher) expr(e Expression) {
	switch e := e.(type) {
	case *Literal:
		h.tag(0x50)
		h.value(e.Value)
	case *ColumnReference:
		h.tag(0x51)
		h.str(e.Qualifier)
		h.str(e.Name)
	case *Star:
		h.tag(0x52)
		h.str(e.Qualifier)
	case *Tuple:
		h.tag(0x53)
		h.i64(int64(len(e.Exprs)))
		for _, x := range e.Exprs {
			h.expr(x)
		}
	case *Parameter:
		h.tag(0x54)
		h.str(e.Name)
		h.value(e.Value)
	case *BinaryExpression:
		h.tag(0x55)
		h.i64(int64(e.Op))
		h.expr(e.Left)
		h.expr(e.Right)
	case *FunctionCall:
		h.tag(0x56)
		h.str(e.Name)
		h.bool(e.Distinct)
		h.i64(int64(len(e.Args)))
		for _, a := range e.Args {
			h.expr(a)
		}
		if e.Over != nil {
			h.tag(0x57)
			for _, p := range e.Over.PartitionBy {
				h.expr(p)
			}
			h.sortItems(e.Over.OrderBy)
		}
	case *Summarization:
		h.tag(0x58)
		h.i64(int64(e.Kind))
		for _, g := range e.Groupings {
			h.expr(g)
		}
	case *Subquery:
		h.tag(0x59)
		h.part(e.Query)
	case *CaseSearched:
		h.tag(0x5a)
		for _, w := range e.Whens {
			h.pred(w.Condition)
			h.expr(w.Result)
		}
		if e.Else != nil {
			h.expr(e.Else)
		}
	case *CaseSimple:
		h.tag(0x5b)
		h.expr(e.Operand)
		for _, w := range e.Whens {
			h.expr(w.Value)
			h.expr(w.Result)
		}
		if e.Else != nil {
			h.expr(e.Else)
		}
	default:
		panic(fmt.Sprintf("ast: unknown expression type %T", e))
	}
}

func (h *hasher) pred(p Predicate) {
	switch p := p.(type) {
	case *Comparison:
		h.tag(0x60)
		h.i64(int64(p.Op))
		h.expr(p.Left)
		h.expr(p.Right)
	case *Junction:
		h.tag(0x61)
		h.i64(int64(p.Op))
		h.i64(int64(len(p.Predicates)))
		for _, in := range p.Predicates {
			h.pred(in)
		}
	case *Not:
		h.tag(0x62)
		h.pred(p.Inner)
	case *InList:
		h.tag(0x63)
		h.bool(p.Negated)
		h.expr(p.Test)
		h.i64(int64(len(p.List)))
		for _, x := range p.List {
			h.expr(x)
		}
	case *InSubquery:
		h.tag(0x64)
		h.bool(p.Negated)
		h.expr(p.Test)
		h.part(p.Query)
	case *Exists:
		h.tag(0x65)
		h.bool(p.Negated)
		h.part(p.Query)
	case *Between:
		h.tag(0x66)
		h.bool(p.Negated)
		h.expr(p.Expr)
		h.expr(p.Low)
		h.expr(p.High)
	case *NullCheck:
		h.tag(0x67)
		h.bool(p.Negated)
		h.expr(p.Expr)
	case *BooleanExpressionPredicate:
		h.tag(0x68)
		h.expr(p.Expr)
	default:
		panic(fmt.Sprintf("ast: unknown predicate type %T", p))
	}
}
