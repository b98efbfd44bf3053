package checker

import (
	"strings"
	"testing"

	"github.com/lgfh98/kotlin/internal/ast"
	"github.com/lgfh98/kotlin/internal/parser"
	"github.com/lgfh98/kotlin/internal/types"
)

func parseAndCheck(t *testing.T, source string) (*ast.Program, *CheckResult) {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		t.Fatalf("Parser errors: %s", p.Diagnostics().Format("test"))
	}

	return prog, CheckWithResult(prog)
}

func expectNoErrors(t *testing.T, source string) (*ast.Program, *CheckResult) {
	t.Helper()
	prog, result := parseAndCheck(t, source)
	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", result.Diagnostics.Format("test"))
	}
	return prog, result
}

func expectError(t *testing.T, source, fragment string) {
	t.Helper()
	_, result := parseAndCheck(t, source)
	if !result.Diagnostics.HasErrors() {
		t.Fatalf("expected error containing %q, got none", fragment)
	}
	for _, d := range result.Diagnostics.Errors() {
		if strings.Contains(d.Message, fragment) {
			return
		}
	}
	t.Errorf("expected error containing %q, got:\n%s", fragment, result.Diagnostics.Format("test"))
}

// loopOf returns the first for-loop in the first function
func loopOf(t *testing.T, prog *ast.Program) *ast.ForInStmt {
	t.Helper()
	for _, s := range prog.Functions[0].Body.Statements {
		if loop, ok := s.(*ast.ForInStmt); ok {
			return loop
		}
	}
	t.Fatal("no for-loop found")
	return nil
}

func TestValidProgram(t *testing.T) {
	expectNoErrors(t, `
fun sum(a: IntArray): Int {
    var total = 0
    for (x in a) {
        total = total + x
    }
    return total
}

fun main() {
    val a = intArrayOf(1, 2, 3)
    a[0] = 10
    println(sum(a))
    for (i in a.indices.reversed()) println(a[i])
    for (c in 'a'..'e') print(c)
    println()
}`)
}

func TestForLoopIterableTypes(t *testing.T) {
	tests := []struct {
		name     string
		decls    string
		iterable string
		iterType string
		elem     string
		callee   string
	}{
		{"rangeTo", "", "0..10", "IntRange", "Int", "kotlin.Int.rangeTo"},
		{"long rangeTo", "val n = 5L", "0..n", "LongRange", "Long", "kotlin.Int.rangeTo"},
		{"byte rangeTo", "val b1: Byte = 1; val b2: Byte = 3", "b1..b2", "IntRange", "Int", "kotlin.Byte.rangeTo"},
		{"char range", "", "'a'..'z'", "CharRange", "Char", "kotlin.Char.rangeTo"},
		{"downTo", "", "10 downTo 0", "IntProgression", "Int", "kotlin.ranges.downTo"},
		{"until", "val n = 4", "0 until n", "IntRange", "Int", "kotlin.ranges.until"},
		{"indices", "val a = longArrayOf(1, 2)", "a.indices", "IntRange", "Int", "kotlin.collections.indices"},
		{"reversed", "", "(0 until 4).reversed()", "IntProgression", "Int", "kotlin.ranges.reversed"},
		{"array reversed", "val a = intArrayOf()", "a.reversed()", "List<Int>", "Int", "kotlin.collections.reversed"},
		{"array", "", "arrayOf(\"x\", \"y\")", "Array<String>", "String", "kotlin.arrayOf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "fun main() {\n" + tt.decls + "\nfor (v in " + tt.iterable + ") println(v)\n}"
			prog, result := expectNoErrors(t, src)
			loop := loopOf(t, prog)

			if got := result.ExprTypes[loop.Iterable]; got.Name() != tt.iterType {
				t.Errorf("expected iterable type %s, got %s", tt.iterType, got)
			}
			if got := result.LoopVars[loop]; got.Name() != tt.elem {
				t.Errorf("expected element type %s, got %s", tt.elem, got)
			}
			if got := result.Symbols[loop.Iterable]; got == nil || got.FqName != tt.callee {
				t.Errorf("expected callee %s, got %v", tt.callee, got)
			}
			if result.Symbols[loop] == nil || result.Symbols[loop].Name() != "iterator" {
				t.Errorf("expected iterator symbol for loop, got %v", result.Symbols[loop])
			}
		})
	}
}

func TestLiteralCoercion(t *testing.T) {
	prog, result := expectNoErrors(t, `
fun main() {
    val b: Byte = -128
    val l: Long = 2147483648
    val big = 2147483648
    val s = shortArrayOf(1, -2)
    val neg = -5
    if (b == 1) println(l)
}`)
	stmts := prog.Functions[0].Body.Statements

	tests := []struct {
		index int
		typ   string
		value int64
	}{
		{0, "Byte", -128},
		{1, "Long", 2147483648},
		{2, "Long", 2147483648},
		{4, "Int", -5},
	}
	for _, tt := range tests {
		decl := stmts[tt.index].(*ast.VarDecl)
		if got := result.ExprTypes[decl.Value]; got.Name() != tt.typ {
			t.Errorf("%s: expected %s, got %s", decl.Name, tt.typ, got)
		}
		if got, ok := result.Constants[decl.Value]; !ok || got != tt.value {
			t.Errorf("%s: expected constant %d, got %d (present=%v)", decl.Name, tt.value, got, ok)
		}
	}

	shorts := stmts[3].(*ast.VarDecl).Value.(*ast.CallExpr)
	if got := result.ExprTypes[shorts.Args[1]]; got.Name() != "Short" {
		t.Errorf("expected Short argument, got %s", got)
	}
	if got := result.ExprTypes[stmts[3].(*ast.VarDecl).Value]; got.Name() != "ShortArray" {
		t.Errorf("expected ShortArray, got %s", got)
	}
}

func TestUnaryMinusResolution(t *testing.T) {
	prog, result := expectNoErrors(t, `
fun main() {
    val s: Short = 3
    val x = -s
}`)
	decl := prog.Functions[0].Body.Statements[1].(*ast.VarDecl)
	sym := result.Symbols[decl.Value]
	if sym == nil || sym.FqName != "kotlin.Short.unaryMinus" {
		t.Fatalf("expected kotlin.Short.unaryMinus, got %v", sym)
	}
	if got := result.ExprTypes[decl.Value]; !got.Equal(types.TypeInt) {
		t.Errorf("expected Int, got %s", got)
	}
}

func TestLoopVariableAnnotation(t *testing.T) {
	prog, result := expectNoErrors(t, `fun main() { for (x: Any in 1..3) println(x) }`)
	if got := result.LoopVars[loopOf(t, prog)]; !got.Equal(types.TypeAny) {
		t.Errorf("expected Any, got %s", got)
	}
	expectError(t, `fun main() { for (x: Long in 1..3) println(x) }`, "loop variable 'x' is Long")
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		fragment string
	}{
		{"unresolved", `fun main() { println(y) }`, "unresolved reference: y"},
		{"val reassigned", `fun main() { val x = 1; x = 2 }`, "val cannot be reassigned"},
		{"type mismatch", `fun main() { val x: Int = "s" }`, "inferred type is String but Int was expected"},
		{"byte overflow", `fun main() { val b: Byte = 200 }`, "inferred type is Int but Byte was expected"},
		{"not iterable", `fun main() { for (i in 5) {} }`, "must have an 'iterator()' method"},
		{"char and int range", `fun main() { for (i in 'a'..5) {} }`, "operator '..' not defined for Char and Int"},
		{"string downTo", `fun main() { for (i in "a" downTo "b") {} }`, "infix function 'downTo' not defined"},
		{"break outside", `fun main() { break }`, "'break' is not allowed outside a loop"},
		{"continue outside", `fun main() { continue }`, "'continue' is not allowed outside a loop"},
		{"condition", `fun main() { if (1) {} }`, "if condition must be Boolean"},
		{"unknown type", `fun f(x: Float) {}`, "unresolved type 'Float'"},
		{"missing return", `fun f(): Int { val x = 1 }`, "missing return in function 'f'"},
		{"arity", `fun f(a: Int) {} fun main() { f() }`, "expects 1 arguments, got 0"},
		{"argument type", `fun f(a: Int) {} fun main() { f("s") }`, "argument 1 of 'f' is String"},
		{"unknown member", `fun main() { val a = intArrayOf(); a.foo() }`, "unresolved reference: IntArray.foo()"},
		{"unknown property", `fun main() { val r = 0..1; println(r.size) }`, "unresolved reference: IntRange.size"},
		{"list set", `fun f(l: List<Int>) { l[0] = 1 }`, "cannot assign Int to an element of List<Int>"},
		{"index type", `fun main() { val a = intArrayOf(); println(a["x"]) }`, "cannot index IntArray with String"},
		{"unknown function", `fun main() { foo() }`, "unresolved reference: foo"},
		{"factory mismatch", `fun main() { val a = intArrayOf(1L) }`, "no overload of 'intArrayOf' accepts (Long)"},
		{"duplicate", `fun main() { val a = 1; val a = 2 }`, "already defined in this scope"},
		{"return value", `fun f(): Int { return }`, "return value of type Int expected"},
		{"int equals long", `fun main() { val a = 1; val b = 2L; println(a == b) }`, "operator '==' cannot be applied to Int and Long"},
		{"out of range", `fun main() { val x = 99999999999999999999 }`, "is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.source, tt.fragment)
		})
	}
}

func TestTerminatingBodies(t *testing.T) {
	expectNoErrors(t, `
fun sign(x: Int): Int {
    if (x < 0) {
        return -1
    } else if (x == 0) {
        return 0
    } else {
        return 1
    }
}

fun fail(): Int {
    error("unreachable")
}

fun spin(): Int {
    while (true) {}
}`)
}

func TestShadowingWarning(t *testing.T) {
	_, result := expectNoErrors(t, `
fun main() {
    val i = 0
    for (i in 0..2) println(i)
}`)
	found := false
	for _, d := range result.Diagnostics.All() {
		if strings.Contains(d.Message, "name shadowed: i") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected shadowing warning, got:\n%s", result.Diagnostics.Format("test"))
	}
}
