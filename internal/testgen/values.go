package testgen

import (
	"fmt"
	"math"
)

// RandomCount is the number of random bound pairs generated per element type.
const RandomCount = 8

// ElemType is a type a progression can be built over, with its value range.
type ElemType struct {
	Name string
	Min  int64
	Max  int64
}

// ElemTypes lists the element types programs are generated for. Byte and
// Short bounds widen to Int progressions.
var ElemTypes = []ElemType{
	{Name: "Int", Min: math.MinInt32, Max: math.MaxInt32},
	{Name: "Long", Min: math.MinInt64, Max: math.MaxInt64},
	{Name: "Char", Min: 0, Max: math.MaxUint16},
	{Name: "Byte", Min: math.MinInt8, Max: math.MaxInt8},
	{Name: "Short", Min: math.MinInt16, Max: math.MaxInt16},
}

// BoundaryValues returns the values next to the edges of t's range and
// around zero, in ascending order and without duplicates.
func BoundaryValues(t ElemType) []int64 {
	seen := make(map[int64]bool)
	var values []int64

	addIfInRange := func(v int64) {
		if v >= t.Min && v <= t.Max && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}

	addIfInRange(t.Min)
	addIfInRange(t.Min + 1)
	addIfInRange(-1)
	addIfInRange(0)
	addIfInRange(1)
	addIfInRange(t.Max - 1)
	addIfInRange(t.Max)

	return values
}

// RandomPairs returns n deterministic (lo, hi) pairs within t's range.
// hi is lo plus a small distance, clipped to the range, so both ascending
// and empty progressions show up.
func RandomPairs(t ElemType, n int, seed uint64) [][2]int64 {
	rng := seed
	pairs := make([][2]int64, 0, n)
	for i := 0; i < n; i++ {
		rng = xorshift64(rng)
		lo := randRange(rng, t.Min, t.Max)
		rng = xorshift64(rng)
		d := randRange(rng, -1, 3)

		hi := lo + d
		if d > 0 && lo > t.Max-d {
			hi = t.Max
		}
		if d < 0 && lo < t.Min-d {
			hi = t.Min
		}
		pairs = append(pairs, [2]int64{lo, hi})
	}
	return pairs
}

// Literal renders v as a Kotlin expression of type t.
func Literal(t ElemType, v int64) string {
	switch t.Name {
	case "Int":
		if v == math.MinInt32 {
			return "-2147483647 - 1"
		}
		return fmt.Sprintf("%d", v)
	case "Long":
		if v == math.MinInt64 {
			return "-9223372036854775807L - 1L"
		}
		return fmt.Sprintf("%dL", v)
	case "Char":
		return fmt.Sprintf("%d.toChar()", v)
	default:
		return fmt.Sprintf("(%d).to%s()", v, t.Name)
	}
}

// xorshift64 is a simple deterministic PRNG.
func xorshift64(state uint64) uint64 {
	state ^= state << 13
	state ^= state >> 7
	state ^= state << 17
	return state
}

// randRange maps a PRNG state to a value in [lo, hi].
func randRange(state uint64, lo, hi int64) int64 {
	if lo >= hi {
		return lo
	}
	r := uint64(hi-lo) + 1
	if r == 0 {
		// [MinInt64, MaxInt64]
		return int64(state)
	}
	return lo + int64(state%r)
}
