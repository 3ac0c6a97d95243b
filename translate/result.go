package translate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FetchStyle reports which row-limiting form a translation emitted for the
// outermost query part.
type FetchStyle int

// Fetch styles.
const (
	// FetchStyleNone: the statement had no fetch clause.
	FetchStyleNone FetchStyle = iota
	// FetchStyleOffsetFetch: ANSI OFFSET ... FETCH was rendered.
	FetchStyleOffsetFetch
	// FetchStyleLimitOffset: vendor LIMIT/OFFSET emulation was rendered.
	FetchStyleLimitOffset
)

// String returns a diagnostic name for the style.
func (s FetchStyle) String() string {
	switch s {
	case FetchStyleNone:
		return "none"
	case FetchStyleOffsetFetch:
		return "offset-fetch"
	case FetchStyleLimitOffset:
		return "limit-offset"
	}
	return "unknown"
}

// TypeCode is the SQL target type of a bound parameter, derived from the
// bound Go value. The execution layer uses it to choose bind semantics.
type TypeCode int

// Type codes.
const (
	TypeUnknown TypeCode = iota
	TypeBool
	TypeInt64
	TypeFloat64
	TypeString
	TypeBytes
	TypeTime
	TypeUUID
	TypeDecimal
)

// String returns a diagnostic name for the type code.
func (c TypeCode) String() string {
	switch c {
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeTime:
		return "time"
	case TypeUUID:
		return "uuid"
	case TypeDecimal:
		return "decimal"
	}
	return "unknown"
}

// typeOf derives a TypeCode from a bound Go value.
func typeOf(v any) TypeCode {
	switch v.(type) {
	case bool:
		return TypeBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt64
	case float32, float64:
		return TypeFloat64
	case string:
		return TypeString
	case []byte:
		return TypeBytes
	case time.Time:
		return TypeTime
	case uuid.UUID:
		return TypeUUID
	case decimal.Decimal:
		return TypeDecimal
	}
	return TypeUnknown
}

// Param is one bound parameter in emitted order.
type Param struct {
	// Name is the upstream placeholder name, if any. Binding is positional
	// regardless; the name is metadata.
	Name  string
	Value any
	Type  TypeCode
}

// Result is a finished translation. On error no Result is produced; there
// is no partial SQL.
type Result struct {
	SQL        string
	Params     []Param
	FetchStyle FetchStyle
}

// Args returns the parameter values in emitted order, ready for
// database/sql positional binding.
func (r *Result) Args() []any {
	args := make([]any, len(r.Params))
	for i := range r.Params {
		args[i] = r.Params[i].Value
	}
	return args
}
