package forloop

import (
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

// HandlerKind names the idiom a header was recognized from.
type HandlerKind int

const (
	RangeTo HandlerKind = iota
	DownTo
	Until
	Indices
	Reversed
	ArrayIteration
)

var handlerNames = [...]string{
	RangeTo:        "rangeTo",
	DownTo:         "downTo",
	Until:          "until",
	Indices:        "indices",
	Reversed:       "reversed",
	ArrayIteration: "array",
}

func (k HandlerKind) String() string {
	if int(k) < len(handlerNames) {
		return handlerNames[k]
	}
	return "unknown"
}

// handler pairs a matcher with the builder it guards. A builder returns
// nil when the call has the right shape but cannot be lowered.
type handler struct {
	kind  HandlerKind
	match CallMatcher
	build func(b *ir.Builder, call *ir.Call, elem *types.Type) Header
}

var allowed = types.ProgressionElementTypes

var (
	rangeToHandler = handler{
		kind: RangeTo,
		match: All(
			ShortName("rangeTo"),
			DispatchReceiver(OneOf(allowed)),
			NoExtensionReceiver,
			ArgCount(1),
			Arg(0, OneOf(allowed)),
		),
		build: func(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
			return header(bounded(b, call, call.Dispatch, elem, 1, true))
		},
	}

	downToHandler = handler{
		kind:  DownTo,
		match: ExtensionWithOneArg("kotlin.ranges.downTo", allowed),
		build: func(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
			return header(bounded(b, call, call.Extension, elem, -1, true))
		},
	}

	untilHandler = handler{
		kind:  Until,
		match: ExtensionWithOneArg("kotlin.ranges.until", allowed),
		build: func(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
			h := bounded(b, call, call.Extension, elem, 1, false)
			if h == nil {
				return nil
			}
			h.Overflow = Safe
			return h
		},
	}

	indicesHandler = handler{
		kind: Indices,
		match: All(
			FqName("kotlin.collections.indices"),
			PropertyAccess,
			NoDispatchReceiver,
			ExtensionReceiver(IsArray),
			ArgCount(0),
		),
		build: buildIndices,
	}

	// reversedHandler re-enters Analyze and is registered in init.
	reversedHandler = handler{
		kind: Reversed,
		match: All(
			FqName("kotlin.ranges.reversed"),
			NoDispatchReceiver,
			ExtensionReceiver(IsProgression),
			ArgCount(0),
		),
	}

	arrayIterationHandler = handler{
		kind: ArrayIteration,
		match: All(
			ShortName("iterator"),
			DispatchReceiver(IsArray),
			NoExtensionReceiver,
			ArgCount(0),
		),
		build: buildArrayIteration,
	}
)

// progressionHandlers is tried in order on a loop's iterable.
var progressionHandlers []handler

func init() {
	reversedHandler.build = buildReversed
	progressionHandlers = []handler{
		rangeToHandler,
		downToHandler,
		untilHandler,
		indicesHandler,
		reversedHandler,
	}
}

// header converts a possibly nil *HeaderInfo without producing a non-nil
// interface holding a nil pointer.
func header(h *HeaderInfo) Header {
	if h == nil {
		return nil
	}
	return h
}

// progressionElement returns the element type of the progression a call
// produces, or nil when it is not an allow-listed progression.
func progressionElement(call *ir.Call) *types.Type {
	t := call.ExprType()
	if !t.IsProgression() || !types.IsProgressionElement(t.Elem) {
		return nil
	}
	return t.Elem
}

// bounded builds the header shared by rangeTo, downTo and until: receiver
// to the single argument with a unit step.
func bounded(b *ir.Builder, call *ir.Call, receiver ir.Expr, elem *types.Type, step int64, lastInclusive bool) *HeaderInfo {
	progElem := progressionElement(call)
	if progElem == nil || (elem != nil && !progElem.Equal(elem)) {
		return nil
	}
	first := b.Convert(receiver, progElem)
	last := b.Convert(call.Args[0], progElem)
	if first == nil || last == nil {
		return nil
	}
	return &HeaderInfo{
		ElementType:    progElem,
		First:          first,
		Last:           last,
		Step:           b.Const(call.Pos, types.StepType(progElem), step),
		FirstInclusive: true,
		LastInclusive:  lastInclusive,
	}
}

func buildIndices(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
	if elem != nil && !elem.Equal(types.TypeInt) {
		return nil
	}
	size := b.Property(call.Pos, call.Extension, "size")
	if size == nil {
		return nil
	}
	return &HeaderInfo{
		ElementType:    types.TypeInt,
		First:          b.Int(call.Pos, 0),
		Last:           size,
		Step:           b.Int(call.Pos, 1),
		FirstInclusive: true,
		LastInclusive:  false,
		Overflow:       Safe,
	}
}

func buildReversed(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
	nested, _ := Analyze(b, call.Extension, elem)
	if nested == nil {
		return nil
	}
	return header(reverse(b, nested.Info()))
}

// buildArrayIteration hoists the array into a temporary so the receiver is
// evaluated once, then walks its indices. call is the loop's iterator().
func buildArrayIteration(b *ir.Builder, call *ir.Call, elem *types.Type) Header {
	array := call.Dispatch
	if elem != nil && !array.ExprType().Elem.Equal(elem) {
		return nil
	}

	tmp := b.Temporary(array.ExprPos(), "array", array, false)
	size := b.Property(call.Pos, b.Get(call.Pos, tmp), "size")
	if size == nil {
		return nil
	}
	return &ArrayHeaderInfo{
		HeaderInfo: HeaderInfo{
			ElementType:         types.TypeInt,
			First:               b.Int(call.Pos, 0),
			Last:                size,
			Step:                b.Int(call.Pos, 1),
			FirstInclusive:      true,
			LastInclusive:       false,
			Overflow:            Safe,
			AdditionalVariables: []*ir.Variable{tmp},
		},
		ArrayVariable: tmp,
	}
}
