package forloop

import (
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

// CallMatcher is a pure predicate over a call node. Matchers hold no state
// and may be evaluated any number of times.
type CallMatcher func(*ir.Call) bool

// TypePredicate tests the static type of a receiver or argument.
type TypePredicate func(*types.Type) bool

// OneOf accepts types equal to one of allow.
func OneOf(allow []*types.Type) TypePredicate {
	return func(t *types.Type) bool { return types.OneOf(t, allow) }
}

// IsProgression accepts range and progression types.
func IsProgression(t *types.Type) bool { return t.IsProgression() }

// IsArray accepts Array<T> and primitive arrays.
func IsArray(t *types.Type) bool { return t.IsArray() }

// All returns a matcher that holds when every clause holds.
func All(clauses ...CallMatcher) CallMatcher {
	return func(c *ir.Call) bool {
		for _, m := range clauses {
			if !m(c) {
				return false
			}
		}
		return true
	}
}

// FqName matches the callee's fully-qualified name.
func FqName(name string) CallMatcher {
	return func(c *ir.Call) bool { return c.Symbol.FqName == name }
}

// ShortName matches the last segment of the callee's name, so overloads
// declared in different classes all match.
func ShortName(name string) CallMatcher {
	return func(c *ir.Call) bool { return c.Symbol.Name() == name }
}

// DispatchReceiver requires a dispatch receiver whose type satisfies p.
func DispatchReceiver(p TypePredicate) CallMatcher {
	return func(c *ir.Call) bool { return c.Dispatch != nil && p(c.Dispatch.ExprType()) }
}

// NoDispatchReceiver requires the dispatch slot to be empty.
func NoDispatchReceiver(c *ir.Call) bool { return c.Dispatch == nil }

// ExtensionReceiver requires an extension receiver whose type satisfies p.
func ExtensionReceiver(p TypePredicate) CallMatcher {
	return func(c *ir.Call) bool { return c.Extension != nil && p(c.Extension.ExprType()) }
}

// NoExtensionReceiver requires the extension slot to be empty.
func NoExtensionReceiver(c *ir.Call) bool { return c.Extension == nil }

// ArgCount requires exactly n arguments.
func ArgCount(n int) CallMatcher {
	return func(c *ir.Call) bool { return len(c.Args) == n }
}

// Arg requires an argument at index i whose type satisfies p.
func Arg(i int, p TypePredicate) CallMatcher {
	return func(c *ir.Call) bool { return i < len(c.Args) && p(c.Args[i].ExprType()) }
}

// PropertyAccess matches property getters.
func PropertyAccess(c *ir.Call) bool { return c.Symbol.IsProperty() }

// ExtensionWithOneArg matches an extension function named fq taking one
// argument, where receiver and argument types are both in allow.
func ExtensionWithOneArg(fq string, allow []*types.Type) CallMatcher {
	return All(
		FqName(fq),
		NoDispatchReceiver,
		ExtensionReceiver(OneOf(allow)),
		ArgCount(1),
		Arg(0, OneOf(allow)),
	)
}
