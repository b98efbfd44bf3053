package compiler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgfh98/kotlin/internal/forloop"
	"github.com/lgfh98/kotlin/internal/interp"
)

const loopsSource = `fun sum(a: IntArray): Int {
    var s = 0
    for (x in a) s = s + x
    return s
}

fun main() {
    val a = intArrayOf(1, 2, 3)
    for (i in (0 until a.size).reversed()) print(a[i])
    println("")
    val r = 1..2
    for (i in r) print(i)
    println("")
    println(sum(a))
}`

func TestCompileValidProgram(t *testing.T) {
	res, err := Compile(context.Background(), loopsSource, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}
	if res.Diagnostics.HasErrors() {
		t.Fatalf("Expected no errors, got:\n%s", res.Diagnostics.Format("test"))
	}
	if res.Module == nil {
		t.Fatal("Expected a module")
	}
	if len(res.Reports) != 3 {
		t.Fatalf("Expected 3 loop reports, got %d", len(res.Reports))
	}
	if len(res.Diagnostics.Infos()) != 0 {
		t.Errorf("Expected no info diagnostics without Report, got %d", len(res.Diagnostics.Infos()))
	}
}

func TestCompileParseError(t *testing.T) {
	res, err := Compile(context.Background(), "fun main( {", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}
	if !res.Diagnostics.HasErrors() {
		t.Error("Expected parse errors")
	}
	if res.Module != nil {
		t.Error("Expected no module on parse error")
	}
}

func TestCompileCheckError(t *testing.T) {
	res, err := Compile(context.Background(), "fun main() {\n    println(x)\n}", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}
	if !res.Diagnostics.HasErrors() {
		t.Error("Expected check errors")
	}
	if res.Module != nil {
		t.Error("Expected no module on check error")
	}
}

func TestCheck(t *testing.T) {
	if diag := Check(loopsSource); diag.HasErrors() {
		t.Errorf("Expected no errors, got:\n%s", diag.Format("test"))
	}
	if diag := Check("fun main() {\n    val x: Int = \"hello\"\n}"); !diag.HasErrors() {
		t.Error("Expected a type mismatch error")
	}
}

func TestReportsInDeclarationOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Report = true
	opts.Parallelism = 4

	res, err := Compile(context.Background(), loopsSource, opts)
	if err != nil {
		t.Fatalf("Compile failed: %s", err)
	}

	type info struct {
		Line, Column int
		Message      string
	}
	var got []info
	for _, d := range res.Diagnostics.Infos() {
		got = append(got, info{d.Line, d.Column, d.Message})
	}
	want := []info{
		{3, 5, "for-loop over IntArray lowered (array)"},
		{9, 5, "for-loop over IntProgression lowered (reversed)"},
		{12, 5, "for-loop over IntRange left generic: not a recognized progression"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info diagnostics mismatch (-want +got):\n%s", diff)
	}

	kinds := []forloop.HandlerKind{forloop.ArrayIteration, forloop.Reversed}
	for i, k := range kinds {
		if res.Reports[i].Kind != k {
			t.Errorf("report %d: expected kind %s, got %s", i, k, res.Reports[i].Kind)
		}
	}
}

func TestCompileWithoutOptimization(t *testing.T) {
	opts := DefaultOptions()
	opts.Optimize = false
	opts.Report = true

	text, diag, err := Lower(context.Background(), loopsSource, opts)
	if err != nil {
		t.Fatalf("Lower failed: %s", err)
	}
	if len(diag.Infos()) != 0 {
		t.Errorf("Expected no reports without optimization, got %d", len(diag.Infos()))
	}
	if got := strings.Count(text, "for ("); got != 3 {
		t.Errorf("Expected 3 for-loops to remain, got %d:\n%s", got, text)
	}
}

func TestLowerRemovesRecognizedLoops(t *testing.T) {
	text, _, err := Lower(context.Background(), loopsSource, DefaultOptions())
	if err != nil {
		t.Fatalf("Lower failed: %s", err)
	}
	if got := strings.Count(text, "for ("); got != 1 {
		t.Errorf("Expected only the generic loop to remain, got %d:\n%s", got, text)
	}
	if !strings.Contains(text, "do {") {
		t.Errorf("Expected a guarded do-while for the reversed loop:\n%s", text)
	}
}

func TestRunSameOutputWithAndWithoutOptimization(t *testing.T) {
	for _, optimize := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Optimize = optimize

		var out bytes.Buffer
		if err := Run(context.Background(), loopsSource, "test.kt", &out, opts); err != nil {
			t.Fatalf("Run(optimize=%v) failed: %s", optimize, err)
		}
		if diff := cmp.Diff("321\n12\n6\n", out.String()); diff != "" {
			t.Errorf("Run(optimize=%v) output mismatch (-want +got):\n%s", optimize, diff)
		}
	}
}

func TestRunCompileErrors(t *testing.T) {
	err := Run(context.Background(), "fun main() {\n    println(y)\n}", "bad.kt", &bytes.Buffer{}, DefaultOptions())
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "error[bad.kt:2:") {
		t.Errorf("Expected formatted diagnostics, got %q", err.Error())
	}
}

func TestRunStepLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSteps = 100
	err := Run(context.Background(), "fun main() {\n    for (i in 0..1000000) print(i)\n}", "test.kt", &bytes.Buffer{}, opts)
	if !errors.Is(err, interp.ErrStepLimit) {
		t.Errorf("Expected step limit error, got %v", err)
	}
}

func TestCompileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Parallelism = 1
	_, err := Compile(ctx, loopsSource, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.Optimize || opts.Report || opts.Parallelism < 1 || opts.MaxSteps != 0 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}
