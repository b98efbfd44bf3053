package forloop

import (
	"testing"

	"github.com/lgfh98/kotlin/internal/checker"
	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/parser"
	"github.com/lgfh98/kotlin/internal/types"
)

func lowerSource(t *testing.T, src string) *ir.Module {
	t.Helper()
	p := parser.New(src)
	prog := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("parse errors: %s", p.Diagnostics().Format("test"))
	}
	result := checker.CheckWithResult(prog)
	if result.Diagnostics.HasErrors() {
		t.Fatalf("check errors: %s", result.Diagnostics.Format("test"))
	}
	return ir.Lower(prog, result)
}

// loopOver declares decls in main and returns the loop `for (v in iterable)`
func loopOver(t *testing.T, decls, iterable string) *ir.ForInStmt {
	t.Helper()
	mod := lowerSource(t, "fun main() {\n"+decls+"\nfor (v in "+iterable+") println(v)\n}")
	for _, s := range mod.Functions[0].Body.Stmts {
		if loop, ok := s.(*ir.ForInStmt); ok {
			return loop
		}
	}
	t.Fatal("no for-loop found")
	return nil
}

func analyze(t *testing.T, decls, iterable string) (Header, HandlerKind) {
	t.Helper()
	return AnalyzeLoop(ir.NewBuilder(), loopOver(t, decls, iterable))
}

func constValue(t *testing.T, e ir.Expr) (int64, *types.Type) {
	t.Helper()
	c, ok := e.(*ir.Const)
	if !ok {
		t.Fatalf("expected constant, got %s", ir.FormatExpr(e))
	}
	return c.Value, c.Type
}

func TestProgressionHeaders(t *testing.T) {
	tests := []struct {
		name     string
		decls    string
		iterable string
		kind     HandlerKind
		elem     *types.Type
		first    string
		last     string
		step     int64
		lastIncl bool
		overflow Overflow
	}{
		{"int rangeTo", "", "1..5", RangeTo, types.TypeInt, "1", "5", 1, true, Unknown},
		{"long rangeTo", "", "1L..5L", RangeTo, types.TypeLong, "1L", "5L", 1, true, Unknown},
		{"mixed rangeTo", "", "1..5L", RangeTo, types.TypeLong, "1L", "5L", 1, true, Unknown},
		{"char rangeTo", "", "'a'..'e'", RangeTo, types.TypeChar, "'a'", "'e'", 1, true, Unknown},
		{"byte rangeTo", "val b1: Byte = 1; val b2: Byte = 3", "b1..b2", RangeTo, types.TypeInt, "b1.toInt()", "b2.toInt()", 1, true, Unknown},
		{"short rangeTo", "val s: Short = 9", "0..s", RangeTo, types.TypeInt, "0", "s.toInt()", 1, true, Unknown},
		{"int downTo", "", "5 downTo 1", DownTo, types.TypeInt, "5", "1", -1, true, Unknown},
		{"long downTo", "val n = 5L", "n downTo 0", DownTo, types.TypeLong, "n", "0L", -1, true, Unknown},
		{"char downTo", "", "'z' downTo 'a'", DownTo, types.TypeChar, "'z'", "'a'", -1, true, Unknown},
		{"int until", "val n = 4", "0 until n", Until, types.TypeInt, "0", "n", 1, false, Safe},
		{"long until", "", "0L until 4L", Until, types.TypeLong, "0L", "4L", 1, false, Safe},
		{"char until", "", "'a' until 'e'", Until, types.TypeChar, "'a'", "'e'", 1, false, Safe},
		{"indices", "val a = longArrayOf(1, 2)", "a.indices", Indices, types.TypeInt, "0", "a.size", 1, false, Safe},
		{"array", "val a = charArrayOf('x')", "a", ArrayIteration, types.TypeInt, "0", "tmp0_array.size", 1, false, Safe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, kind := analyze(t, tt.decls, tt.iterable)
			if header == nil {
				t.Fatal("expected a header, got nil")
			}
			h := header.Info()
			if kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, kind)
			}
			if !h.ElementType.Equal(tt.elem) {
				t.Errorf("expected element type %s, got %s", tt.elem, h.ElementType)
			}
			if got := ir.FormatExpr(h.First); got != tt.first {
				t.Errorf("expected first %s, got %s", tt.first, got)
			}
			if got := ir.FormatExpr(h.Last); got != tt.last {
				t.Errorf("expected last %s, got %s", tt.last, got)
			}
			step, stepType := constValue(t, h.Step)
			if step != tt.step {
				t.Errorf("expected step %d, got %d", tt.step, step)
			}
			if !stepType.Equal(types.StepType(tt.elem)) {
				t.Errorf("expected step type %s, got %s", types.StepType(tt.elem), stepType)
			}
			if !h.FirstInclusive {
				t.Error("expected inclusive first")
			}
			if h.LastInclusive != tt.lastIncl {
				t.Errorf("expected lastInclusive=%v, got %v", tt.lastIncl, h.LastInclusive)
			}
			if h.Overflow != tt.overflow {
				t.Errorf("expected overflow %s, got %s", tt.overflow, h.Overflow)
			}
			if h.IsReversed {
				t.Error("expected non-reversed header")
			}
		})
	}
}

func TestReversalInvolution(t *testing.T) {
	base, _ := analyze(t, "", "0 until 4")
	if base == nil {
		t.Fatal("expected header for 0 until 4")
	}

	tests := []struct {
		name     string
		iterable string
		reversed bool
	}{
		{"once", "(0 until 4).reversed()", true},
		{"twice", "(0 until 4).reversed().reversed()", false},
		{"three times", "(0 until 4).reversed().reversed().reversed()", true},
		{"four times", "(0 until 4).reversed().reversed().reversed().reversed()", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, kind := analyze(t, "", tt.iterable)
			if header == nil {
				t.Fatal("expected a header, got nil")
			}
			if kind != Reversed {
				t.Errorf("expected kind reversed, got %s", kind)
			}
			h, orig := header.Info(), base.Info()
			if h.IsReversed != tt.reversed {
				t.Errorf("expected isReversed=%v, got %v", tt.reversed, h.IsReversed)
			}
			if h.Overflow != Unknown {
				t.Errorf("expected overflow reset to unknown, got %s", h.Overflow)
			}

			step, _ := constValue(t, h.Step)
			first, last := ir.FormatExpr(h.First), ir.FormatExpr(h.Last)
			if tt.reversed {
				if first != "4" || last != "0" || step != -1 {
					t.Errorf("expected 4 -> 0 step -1, got %s -> %s step %d", first, last, step)
				}
				if h.FirstInclusive || !h.LastInclusive {
					t.Error("expected exclusive first and inclusive last")
				}
				return
			}
			origStep, _ := constValue(t, orig.Step)
			if first != ir.FormatExpr(orig.First) || last != ir.FormatExpr(orig.Last) || step != origStep {
				t.Errorf("expected original bounds, got %s -> %s step %d", first, last, step)
			}
			if h.FirstInclusive != orig.FirstInclusive || h.LastInclusive != orig.LastInclusive {
				t.Error("expected original inclusivity")
			}
		})
	}
}

func TestReversedIndices(t *testing.T) {
	header, _ := analyze(t, "val a = intArrayOf(1, 2, 3)", "a.indices.reversed()")
	if header == nil {
		t.Fatal("expected a header, got nil")
	}
	h := header.Info()
	if got := ir.FormatExpr(h.First); got != "a.size" {
		t.Errorf("expected first a.size, got %s", got)
	}
	if h.FirstInclusive || !h.LastInclusive || !h.IsReversed {
		t.Errorf("unexpected flags: %+v", h)
	}
	if _, ok := header.(*ArrayHeaderInfo); ok {
		t.Error("expected a plain header for indices")
	}
}

func TestArrayIterationHoistsReceiver(t *testing.T) {
	mod := lowerSource(t, `
fun make(): IntArray {
    println("made")
    return intArrayOf(1, 2)
}

fun main() {
    for (x in make()) println(x)
}`)
	loop := mod.Function("main").Body.Stmts[0].(*ir.ForInStmt)
	header, kind := AnalyzeLoop(ir.NewBuilder(), loop)
	if kind != ArrayIteration {
		t.Fatalf("expected array iteration, got %s", kind)
	}
	arr, ok := header.(*ArrayHeaderInfo)
	if !ok {
		t.Fatalf("expected *ArrayHeaderInfo, got %T", header)
	}
	if len(arr.AdditionalVariables) != 1 || arr.AdditionalVariables[0] != arr.ArrayVariable {
		t.Fatalf("expected the array temporary as the only additional variable, got %v", arr.AdditionalVariables)
	}
	if arr.ArrayVariable.Init != loop.Iterable() {
		t.Errorf("expected the temporary to hold the receiver, got %s", ir.FormatExpr(arr.ArrayVariable.Init))
	}
	size := arr.Last.(*ir.Call)
	if get, ok := size.Dispatch.(*ir.GetValue); !ok || get.Var != arr.ArrayVariable {
		t.Errorf("expected size read on the temporary, got %s", ir.FormatExpr(arr.Last))
	}
}

func TestUnrecognizedIterables(t *testing.T) {
	tests := []struct {
		name     string
		decls    string
		iterable string
	}{
		{"array reversed is a list", "val a = intArrayOf(1)", "a.reversed()"},
		{"range variable", "val r = 0..3", "r"},
		{"reversed range variable", "val r = 0..3", "r.reversed()"},
		{"string array factory", "", "arrayOf(\"a\").reversed()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, _ := analyze(t, tt.decls, tt.iterable)
			if header != nil {
				t.Errorf("expected nil header, got %+v", header.Info())
			}
		})
	}
}

func TestObjectArrayIndices(t *testing.T) {
	header, kind := analyze(t, "", "arrayOf(\"a\", \"b\").indices.reversed().reversed()")
	if header == nil {
		t.Fatal("expected indices of Array<String> to be recognized")
	}
	if kind != Reversed || header.Info().IsReversed {
		t.Errorf("expected a double reversal, got kind %s reversed=%v", kind, header.Info().IsReversed)
	}
}

func TestListIndicesNotLowered(t *testing.T) {
	mod := lowerSource(t, `
fun f(l: List<Int>) {
    for (i in l.indices) println(i)
}`)
	loop := mod.Functions[0].Body.Stmts[0].(*ir.ForInStmt)
	if header, _ := AnalyzeLoop(ir.NewBuilder(), loop); header != nil {
		t.Errorf("expected List.indices to stay generic, got %+v", header.Info())
	}
}

func TestElementTypeMismatch(t *testing.T) {
	mod := lowerSource(t, `
fun main() {
    for (x: Any in 1..3) println(x)
    for (y: Any in intArrayOf(1)) println(y)
}`)
	for _, s := range mod.Functions[0].Body.Stmts {
		loop := s.(*ir.ForInStmt)
		if header, _ := AnalyzeLoop(ir.NewBuilder(), loop); header != nil {
			t.Errorf("expected nil header for %s: Any, got %+v", loop.LoopVar.Name, header.Info())
		}
	}

	// an explicit expected type must match the progression's element type
	loop := loopOver(t, "", "1L..3L")
	if header, _ := Analyze(ir.NewBuilder(), loop.Iterable(), types.TypeInt); header != nil {
		t.Error("expected nil header for Long range analyzed as Int")
	}
	if header, _ := Analyze(ir.NewBuilder(), loop.Iterable(), nil); header == nil {
		t.Error("expected a header when any element type is accepted")
	}
}

func TestAnalyzeNonCall(t *testing.T) {
	b := ir.NewBuilder()
	if header, _ := Analyze(b, b.Int(ir.Pos{}, 3), types.TypeInt); header != nil {
		t.Error("expected nil header for a constant")
	}
}
