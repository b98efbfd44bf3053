package interp

import (
	"fmt"

	"github.com/lgfh98/kotlin/internal/types"
)

// Progression is an arithmetic progression over an integral or Char element
// type. Last is always the final element actually produced, so iteration
// never needs to step past it.
type Progression struct {
	First, Last, Step int64
	Elem              *types.Type
	Range             bool // created by .., until or indices rather than downTo or reversed
}

// closedProgression returns the progression from first to last by step,
// adjusting last down to the final reachable element.
func closedProgression(elem *types.Type, first, last, step int64, isRange bool) *Progression {
	return &Progression{
		First: first,
		Last:  lastElement(first, last, step),
		Step:  step,
		Elem:  elem,
		Range: isRange,
	}
}

// lastElement returns the last element of first..last by step. For unit
// steps it is last itself.
func lastElement(first, last, step int64) int64 {
	switch {
	case step > 0 && first < last:
		return last - mod(mod(last, step)-mod(first, step), step)
	case step < 0 && first > last:
		return last + mod(mod(first, -step)-mod(last, -step), -step)
	}
	return last
}

func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// rangeTo returns first..last.
func rangeTo(elem *types.Type, first, last int64) *Progression {
	return closedProgression(elem, first, last, 1, true)
}

// downTo returns first downTo last.
func downTo(elem *types.Type, first, last int64) *Progression {
	return closedProgression(elem, first, last, -1, false)
}

// until returns first until end, which is empty when end is the minimum
// value of elem.
func until(elem *types.Type, first, end int64) *Progression {
	if end <= types.MinValue(elem) {
		return &Progression{First: 1, Last: 0, Step: 1, Elem: elem, Range: true}
	}
	return rangeTo(elem, first, end-1)
}

// Reversed returns the progression producing the same elements in reverse
// order.
func (p *Progression) Reversed() *Progression {
	return closedProgression(p.Elem, p.Last, p.First, -p.Step, false)
}

// IsEmpty reports whether the progression produces no elements.
func (p *Progression) IsEmpty() bool {
	if p.Step > 0 {
		return p.First > p.Last
	}
	return p.First < p.Last
}

func (p *Progression) String() string {
	elem := func(v int64) string { return Format(Number{V: v, Type: p.Elem}) }
	switch {
	case p.Range && p.Step == 1:
		return fmt.Sprintf("%s..%s", elem(p.First), elem(p.Last))
	case p.Step > 0:
		return fmt.Sprintf("%s..%s step %d", elem(p.First), elem(p.Last), p.Step)
	default:
		return fmt.Sprintf("%s downTo %s step %d", elem(p.First), elem(p.Last), -p.Step)
	}
}

func (p *Progression) iterator() *Iterator {
	next, done := p.First, p.IsEmpty()
	return &Iterator{
		hasNext: func() bool { return !done },
		next: func() Value {
			v := next
			if v == p.Last {
				done = true
			} else {
				next += p.Step
			}
			return Number{V: v, Type: p.Elem}
		},
	}
}

// Iterator walks a progression, array or list.
type Iterator struct {
	hasNext func() bool
	next    func() Value
}

func itemsIterator(items []Value) *Iterator {
	i := 0
	return &Iterator{
		hasNext: func() bool { return i < len(items) },
		next: func() Value {
			v := items[i]
			i++
			return v
		},
	}
}
