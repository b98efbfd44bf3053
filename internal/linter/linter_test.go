package linter

import (
	"strings"
	"testing"

	"github.com/lgfh98/kotlin/internal/parser"
)

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	p := parser.New(source)
	prog := p.Parse()

	if p.Diagnostics().HasErrors() {
		t.Fatalf("Parser errors: %s", p.Diagnostics().Format("test"))
	}

	diag := Lint(prog)
	var warnings []string
	for _, d := range diag.All() {
		w := d.Message
		if d.Hint != "" {
			w += " (" + d.Hint + ")"
		}
		warnings = append(warnings, w)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// --- Empty function body ---

func TestEmptyFunctionBody(t *testing.T) {
	warnings := parseAndLint(t, `fun noop() {
}`)
	if !containsWarning(warnings, "empty body") {
		t.Errorf("Expected empty body warning, got: %v", warnings)
	}
}

func TestNonEmptyFunctionBodyNoWarning(t *testing.T) {
	warnings := parseAndLint(t, `fun greet(): Int {
    return 0
}`)
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", warnings)
	}
}

// --- Naming ---

func TestFunctionNaming(t *testing.T) {
	tests := []struct {
		name string
		warn bool
	}{
		{"main", false},
		{"sumOfSquares", false},
		{"sum_of_squares", true},
		{"SumOfSquares", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := parseAndLint(t, "fun "+tt.name+"() {\n    println(1)\n}")
			if got := containsWarning(warnings, "camelCase"); got != tt.warn {
				t.Errorf("Expected camelCase warning=%v, got: %v", tt.warn, warnings)
			}
		})
	}
}

// --- Unused names ---

func TestUnusedParamAndVariable(t *testing.T) {
	warnings := parseAndLint(t, `fun f(a: Int, b: Int): Int {
    val unused = 3
    val used = a + 1
    return used
}`)
	if !containsWarning(warnings, "parameter 'b' in 'f' is never used") {
		t.Errorf("Expected unused parameter warning, got: %v", warnings)
	}
	if containsWarning(warnings, "parameter 'a'") {
		t.Errorf("Did not expect a warning for parameter a, got: %v", warnings)
	}
	if !containsWarning(warnings, "variable 'unused' is declared but never used") {
		t.Errorf("Expected unused variable warning, got: %v", warnings)
	}
	if containsWarning(warnings, "variable 'used'") {
		t.Errorf("Did not expect a warning for used, got: %v", warnings)
	}
}

func TestIndexAssignmentReadsArray(t *testing.T) {
	warnings := parseAndLint(t, `fun f() {
    val a = intArrayOf(1)
    val i = 0
    a[i] = 2
}`)
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", warnings)
	}
}

func TestMutableNeverReassigned(t *testing.T) {
	warnings := parseAndLint(t, `fun f(): Int {
    var n = 1
    var m = 1
    for (i in 1..3) {
        m = m * i
    }
    return n + m
}`)
	if !containsWarning(warnings, "variable 'n' is declared with var but never reassigned (declare it with val)") {
		t.Errorf("Expected var warning for n, got: %v", warnings)
	}
	if containsWarning(warnings, "variable 'm'") {
		t.Errorf("Did not expect a warning for m, got: %v", warnings)
	}
}

// --- Loop idioms ---

func TestLoopIdioms(t *testing.T) {
	tests := []struct {
		name     string
		iterable string
		want     string
	}{
		{"range minus one", "0..n - 1", "range '0..(n - 1)' excludes its end by subtraction (use '0 until n')"},
		{"until size", "0 until a.size", "range '0 until a.size' spells out the indices of 'a' (use 'a.indices')"},
		{"reversed range literal", "(0..n).reversed()", "reversed range literal '(0..n).reversed()' (use 'n downTo 0')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := "fun f(a: IntArray, n: Int) {\n    println(a.size + n)\n    for (i in " + tt.iterable + ") println(i)\n}"
			warnings := parseAndLint(t, source)
			if !containsWarning(warnings, tt.want) {
				t.Errorf("Expected %q, got: %v", tt.want, warnings)
			}
		})
	}
}

func TestLoopIdiomsNoWarning(t *testing.T) {
	warnings := parseAndLint(t, `fun f(a: IntArray, n: Int) {
    for (i in 0 until n) println(i)
    for (i in a.indices) println(a[i])
    for (i in n downTo 0) println(i)
    for (i in 1 until a.size) println(i)
    for (i in 0..n - 2) println(i)
}`)
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", warnings)
	}
}

func TestLoopVariableAnnotatedAsAny(t *testing.T) {
	warnings := parseAndLint(t, `fun f() {
    for (x: Any in 1..3) println(x)
    for (y: Int in 1..3) println(y)
}`)
	if !containsWarning(warnings, "loop variable 'x' is annotated as Any") {
		t.Errorf("Expected Any warning, got: %v", warnings)
	}
	if containsWarning(warnings, "'y'") {
		t.Errorf("Did not expect a warning for y, got: %v", warnings)
	}
}

func TestNestedLoopsAreLinted(t *testing.T) {
	warnings := parseAndLint(t, `fun f(n: Int) {
    while (n > 0) {
        if (n == 1) {
            for (i in 0..n - 1) println(i)
        }
    }
}`)
	if !containsWarning(warnings, "excludes its end") {
		t.Errorf("Expected warning inside nested statements, got: %v", warnings)
	}
}
