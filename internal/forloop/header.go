// Package forloop recognizes for-loops over progressions and arrays and
// rewrites them into counted loops.
//
// Recognition produces a Header: a normalized description of the loop with
// first and last bounds, a step, inclusivity flags and an overflow hint.
// LowerLoops consumes headers and replaces each recognized ForInStmt with
// an index-based loop that allocates no iterator.
package forloop

import (
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

// Overflow says whether stepping past a loop bound can wrap around.
type Overflow int

const (
	// Unknown is treated as Unsafe by the consumer.
	Unknown Overflow = iota
	Safe
	Unsafe
)

func (o Overflow) String() string {
	switch o {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// Header is implemented by *HeaderInfo and *ArrayHeaderInfo.
type Header interface {
	Info() *HeaderInfo
	header()
}

// HeaderInfo describes a counted loop. First and Last are evaluated
// exactly once each, in source order; AdditionalVariables are declared
// before either, in order.
type HeaderInfo struct {
	ElementType *types.Type
	First       ir.Expr
	Last        ir.Expr
	Step        ir.Expr

	FirstInclusive bool
	LastInclusive  bool
	// IsReversed is set after an odd number of reversals. First and Last
	// were then written in the opposite order in the source.
	IsReversed bool
	Overflow   Overflow

	AdditionalVariables []*ir.Variable
}

// Info returns h.
func (h *HeaderInfo) Info() *HeaderInfo { return h }
func (*HeaderInfo) header()             {}

// ArrayHeaderInfo iterates over the indices of an array held in
// ArrayVariable, which is also the first of AdditionalVariables.
type ArrayHeaderInfo struct {
	HeaderInfo
	ArrayVariable *ir.Variable
}

// reverse returns the header iterating h's elements backwards. Overflow
// goes back to Unknown since the bounds change roles.
func reverse(b *ir.Builder, h *HeaderInfo) *HeaderInfo {
	step := Negate(b, h.Step)
	if step == nil {
		return nil
	}
	return &HeaderInfo{
		ElementType:         h.ElementType,
		First:               h.Last,
		Last:                h.First,
		Step:                step,
		FirstInclusive:      h.LastInclusive,
		LastInclusive:       h.FirstInclusive,
		IsReversed:          !h.IsReversed,
		Overflow:            Unknown,
		AdditionalVariables: h.AdditionalVariables,
	}
}
