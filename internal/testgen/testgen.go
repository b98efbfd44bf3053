package testgen

import (
	"fmt"
	"strings"
)

// MaxIterations caps how many elements each generated loop prints, so
// progressions spanning a whole type range stay cheap to run.
const MaxIterations = 3

// Case is one generated program
type Case struct {
	Name   string
	Source string
}

// shape renders a for-loop iterable from the names of its two bounds
type shape struct {
	name   string
	render func(lo, hi string) string
}

var shapes = []shape{
	{"rangeTo", func(lo, hi string) string { return lo + ".." + hi }},
	{"downTo", func(lo, hi string) string { return hi + " downTo " + lo }},
	{"until", func(lo, hi string) string { return lo + " until " + hi }},
	{"reversed rangeTo", func(lo, hi string) string { return "(" + lo + ".." + hi + ").reversed()" }},
	{"reversed downTo", func(lo, hi string) string { return "(" + hi + " downTo " + lo + ").reversed()" }},
	{"reversed until", func(lo, hi string) string { return "(" + lo + " until " + hi + ").reversed()" }},
}

// Generate produces one program per element type and loop shape, plus one
// program over arrays. Each program iterates every pair of boundary values
// and RandomCount random pairs. Output is deterministic for a given seed.
func Generate(seed uint64) []Case {
	var cases []Case

	for _, t := range ElemTypes {
		var pairs [][2]int64
		boundary := BoundaryValues(t)
		for _, lo := range boundary {
			for _, hi := range boundary {
				pairs = append(pairs, [2]int64{lo, hi})
			}
		}
		pairs = append(pairs, RandomPairs(t, RandomCount, seed^uint64(len(t.Name)))...)

		for _, s := range shapes {
			cases = append(cases, Case{
				Name:   t.Name + " " + s.name,
				Source: generateLoops(t, s, pairs),
			})
		}
	}

	cases = append(cases, Case{Name: "arrays", Source: generateArrayLoops(seed)})
	return cases
}

// generateLoops writes a main that runs one capped loop per bound pair
func generateLoops(t ElemType, s shape, pairs [][2]int64) string {
	var sb strings.Builder
	sb.WriteString("fun main() {\n")
	sb.WriteString("    var k = 0\n")

	for i, p := range pairs {
		lo := fmt.Sprintf("lo%d", i)
		hi := fmt.Sprintf("hi%d", i)
		fmt.Fprintf(&sb, "    val %s = %s\n", lo, Literal(t, p[0]))
		fmt.Fprintf(&sb, "    val %s = %s\n", hi, Literal(t, p[1]))
		writeCappedLoop(&sb, s.render(lo, hi))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// generateArrayLoops writes a main iterating arrays of a few sizes
// directly and through their indices in both directions
func generateArrayLoops(seed uint64) string {
	var sb strings.Builder
	sb.WriteString("fun main() {\n")
	sb.WriteString("    var k = 0\n")

	rng := seed
	for size := 0; size <= 4; size++ {
		elems := make([]string, size)
		for i := range elems {
			rng = xorshift64(rng)
			elems[i] = fmt.Sprintf("%d", randRange(rng, -100, 100))
		}
		a := fmt.Sprintf("a%d", size)
		fmt.Fprintf(&sb, "    val %s = intArrayOf(%s)\n", a, strings.Join(elems, ", "))
		for _, iterable := range []string{
			a,
			a + ".indices",
			a + ".indices.reversed()",
			"0 until " + a + ".size",
			"(0 until " + a + ".size).reversed()",
		} {
			writeCappedLoop(&sb, iterable)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func writeCappedLoop(sb *strings.Builder, iterable string) {
	sb.WriteString("    k = 0\n")
	fmt.Fprintf(sb, "    for (i in %s) {\n", iterable)
	sb.WriteString("        print(i)\n")
	sb.WriteString("        print(\" \")\n")
	sb.WriteString("        k = k + 1\n")
	fmt.Fprintf(sb, "        if (k == %d) break\n", MaxIterations)
	sb.WriteString("    }\n")
	sb.WriteString("    println(\";\")\n")
}
