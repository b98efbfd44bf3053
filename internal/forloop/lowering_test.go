package forloop

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgfh98/kotlin/internal/ir"
	"github.com/lgfh98/kotlin/internal/types"
)

func lowerMain(t *testing.T, src string) (*ir.Function, []Report) {
	t.Helper()
	mod := lowerSource(t, src)
	fn := mod.Function("main")
	reports := LowerLoops(fn, ir.NewBuilder())
	if errs := ir.ValidateFunction(fn); len(errs) > 0 {
		t.Fatalf("invalid IR after lowering:\n%s\n%s", strings.Join(errs, "\n"), ir.PrintFunction(fn))
	}
	return fn, reports
}

func TestLowerLoopsOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "until",
			src: `fun main() {
    for (i in 0 until 3) println(i)
}`,
			want: `fun main(): Unit {
    {
        var tmp0_index: Int = 0
        while (tmp0_index < 3) {
            val i: Int = tmp0_index
            tmp0_index = tmp0_index + 1
            println(i)
        }
    }
}
`,
		},
		{
			name: "reversed range",
			src: `fun main() {
    val n = 3
    for (i in (0..n).reversed()) println(i)
}`,
			want: `fun main(): Unit {
    val n: Int = 3
    {
        val tmp0_first: Int = n
        if (tmp0_first >= 0) {
            var tmp1_index: Int = tmp0_first
            do {
                val i: Int = tmp1_index
                tmp1_index = tmp1_index - 1
                println(i)
            } while (i != 0)
        }
    }
}
`,
		},
		{
			name: "array",
			src: `fun main() {
    val a = intArrayOf(1, 2)
    for (x in a) println(x)
}`,
			want: `fun main(): Unit {
    val a: IntArray = intArrayOf(1, 2)
    {
        val tmp0_array: IntArray = a
        val tmp1_last: Int = tmp0_array.size
        var tmp2_index: Int = 0
        while (tmp2_index < tmp1_last) {
            val x: Int = tmp0_array[tmp2_index]
            tmp2_index = tmp2_index + 1
            println(x)
        }
    }
}
`,
		},
		{
			name: "reversed until",
			src: `fun main() {
    val n = 4L
    for (i in (0L until n).reversed()) println(i)
}`,
			want: `fun main(): Unit {
    val n: Long = 4L
    {
        val tmp0_first: Long = n
        if (tmp0_first > 0L) {
            var tmp1_index: Long = tmp0_first - 1L
            do {
                val i: Long = tmp1_index
                tmp1_index = tmp1_index - 1L
                println(i)
            } while (i != 0L)
        }
    }
}
`,
		},
		{
			name: "downTo chars",
			src: `fun main() {
    for (c in 'c' downTo 'a') print(c)
}`,
			want: `fun main(): Unit {
    {
        if ('c' >= 'a') {
            var tmp0_index: Char = 'c'
            do {
                val c: Char = tmp0_index
                tmp0_index = tmp0_index - 1
                print(c)
            } while (c != 'a')
        }
    }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, _ := lowerMain(t, tt.src)
			if diff := cmp.Diff(tt.want, ir.PrintFunction(fn)); diff != "" {
				t.Errorf("lowered output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReversedBoundsEvaluatedInSourceOrder(t *testing.T) {
	fn, _ := lowerMain(t, `
fun lo(): Int = 1
fun hi(): Int = 3

fun main() {
    for (i in (lo()..hi()).reversed()) println(i)
}`)
	block := fn.Body.Stmts[0].(*ir.Block)
	first := block.Stmts[0].(*ir.Variable)
	second := block.Stmts[1].(*ir.Variable)
	if got := ir.FormatExpr(first.Init); got != "lo()" {
		t.Errorf("expected lo() evaluated first, got %s", got)
	}
	if got := ir.FormatExpr(second.Init); got != "hi()" {
		t.Errorf("expected hi() evaluated second, got %s", got)
	}
	if first.Name != "tmp0_last" || second.Name != "tmp1_first" {
		t.Errorf("expected tmp0_last then tmp1_first, got %s then %s", first.Name, second.Name)
	}
}

func TestLowerLoopsReports(t *testing.T) {
	_, reports := lowerMain(t, `
fun main() {
    val a = intArrayOf(1, 2, 3)
    for (i in a.indices) {
        for (j in a.reversed()) println(j)
    }
    for (x: Any in 1..2) println(x)
    for (k in 10 downTo 1) println(k)
}`)

	want := []Report{
		{Pos: ir.Pos{Line: 4, Column: 5}, Iterable: types.RangeOf(types.TypeInt), Kind: Indices, Lowered: true},
		{Pos: ir.Pos{Line: 5, Column: 9}, Iterable: types.ListOf(types.TypeInt), Reason: reasonUnrecognized},
		{Pos: ir.Pos{Line: 7, Column: 5}, Iterable: types.RangeOf(types.TypeInt), Reason: reasonUnrecognized},
		{Pos: ir.Pos{Line: 8, Column: 5}, Iterable: types.ProgressionOf(types.TypeInt), Kind: DownTo, Lowered: true},
	}
	if diff := cmp.Diff(want, reports); diff != "" {
		t.Errorf("reports mismatch (-want +got):\n%s", diff)
	}

	messages := []string{
		"for-loop over IntRange lowered (indices)",
		"for-loop over List<Int> left generic: not a recognized progression",
	}
	for i, m := range messages {
		if got := reports[i].Message(); got != m {
			t.Errorf("expected message %q, got %q", m, got)
		}
	}
}

func TestLowerLoopsKeepsGenericLoops(t *testing.T) {
	fn, reports := lowerMain(t, `
fun main() {
    val r = 0..3
    for (i in r) println(i)
}`)
	if len(reports) != 1 || reports[0].Lowered {
		t.Fatalf("expected one generic loop, got %+v", reports)
	}
	if _, ok := fn.Body.Stmts[1].(*ir.ForInStmt); !ok {
		t.Errorf("expected the ForInStmt to be kept, got %T", fn.Body.Stmts[1])
	}
}

func TestLowerLoopsInNestedStatements(t *testing.T) {
	fn, reports := lowerMain(t, `
fun main() {
    var n = 0
    while (n < 2) {
        if (n == 0) {
            for (i in 0..n) continue
        } else {
            for (i in n downTo 0) break
        }
        n = n + 1
    }
}`)
	if len(reports) != 2 || !reports[0].Lowered || !reports[1].Lowered {
		t.Fatalf("expected two lowered loops, got %+v", reports)
	}
	if strings.Contains(ir.PrintFunction(fn), "for (") {
		t.Errorf("expected no for-loops left, got:\n%s", ir.PrintFunction(fn))
	}
}

func TestUnitStep(t *testing.T) {
	b := ir.NewBuilder()
	pos := ir.Pos{}
	v := &ir.Variable{Name: "s", Type: types.TypeInt}

	tests := []struct {
		name string
		step ir.Expr
		want int64
		ok   bool
	}{
		{"one", b.Int(pos, 1), 1, true},
		{"minus one long", b.Long(pos, -1), -1, true},
		{"two", b.Int(pos, 2), 0, false},
		{"variable", b.Get(pos, v), 0, false},
	}
	for _, tt := range tests {
		got, ok := unitStep(tt.step)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: expected (%d, %v), got (%d, %v)", tt.name, tt.want, tt.ok, got, ok)
		}
	}
}
