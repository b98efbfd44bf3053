package interp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Every program here must print the same with and without loop lowering.
func TestLoweredLoopsBehaveTheSame(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "rangeTo",
			src: `fun main() {
    for (i in 1..3) print(i)
}`,
			want: "123",
		},
		{
			name: "empty rangeTo",
			src: `fun main() {
    for (i in 5..1) print(i)
    println("done")
}`,
			want: "done\n",
		},
		{
			name: "downTo",
			src: `fun main() {
    for (i in 3 downTo 1) print(i)
}`,
			want: "321",
		},
		{
			name: "until",
			src: `fun main() {
    val n = 4
    for (i in 0 until n) print(i)
    for (i in 0 until 0) print("never")
}`,
			want: "0123",
		},
		{
			name: "reversed until",
			src: `fun main() {
    for (i in (0 until 4).reversed()) print(i)
}`,
			want: "3210",
		},
		{
			name: "double reversal",
			src: `fun main() {
    for (i in (1..4).reversed().reversed()) print(i)
}`,
			want: "1234",
		},
		{
			name: "reversed downTo",
			src: `fun main() {
    for (i in (3 downTo 1).reversed()) print(i)
}`,
			want: "123",
		},
		{
			name: "long and char",
			src: `fun main() {
    for (i in (0L until 3L).reversed()) print(i)
    for (c in 'a'..'e') print(c)
    for (c in 'e' downTo 'a') print(c)
    for (c in 'a' until 'c') print(c)
}`,
			want: "210abcdeedcbaab",
		},
		{
			name: "byte and short bounds",
			src: `fun main() {
    val b1: Byte = 1
    val b2: Byte = 3
    val s: Short = 2
    for (i in b1..b2) print(i)
    for (i in s downTo 0) print(i)
}`,
			want: "123210",
		},
		{
			name: "int max bound",
			src: `fun main() {
    val m = 2147483647
    for (i in (m - 2)..m) println(i)
}`,
			want: "2147483645\n2147483646\n2147483647\n",
		},
		{
			name: "int min bound",
			src: `fun main() {
    val lo = -2147483647 - 1
    for (i in (lo + 1) downTo lo) println(i)
    for (i in 0 until lo) println(i)
    for (i in (lo until lo).reversed()) println(i)
}`,
			want: "-2147483647\n-2147483648\n",
		},
		{
			name: "long max bound reversed",
			src: `fun main() {
    val m = 9223372036854775807L
    for (i in (m - 1L..m).reversed()) println(i)
}`,
			want: "9223372036854775807\n9223372036854775806\n",
		},
		{
			name: "empty array",
			src: `fun main() {
    val a = intArrayOf()
    for (x in a) println("never")
    for (i in a.indices) println("never")
    for (i in a.indices.reversed()) println("never")
    println("ok")
}`,
			want: "ok\n",
		},
		{
			name: "array iteration",
			src: `fun main() {
    val a = arrayOf("x", "y", "z")
    for (s in a) print(s)
    for (i in a.indices) print(i)
    for (i in a.indices.reversed()) print(a[i])
}`,
			want: "xyz012zyx",
		},
		{
			name: "iterable evaluated once",
			src: `fun make(): IntArray {
    println("made")
    return intArrayOf(1, 2)
}

fun main() {
    for (x in make()) println(x)
}`,
			want: "made\n1\n2\n",
		},
		{
			name: "bounds evaluated once in source order",
			src: `fun lo(): Int {
    print("lo ")
    return 1
}

fun hi(): Int {
    print("hi ")
    return 3
}

fun main() {
    for (i in (lo()..hi()).reversed()) print(i)
    println("")
    for (i in lo() until hi()) print(i)
}`,
			want: "lo hi 321\nlo hi 12",
		},
		{
			name: "break and continue",
			src: `fun main() {
    for (i in 0..9) {
        if (i % 2 == 0) continue
        if (i > 6) break
        print(i)
    }
    for (i in 9 downTo 0) {
        if (i % 3 != 0) continue
        print(i)
    }
}`,
			want: "1359630",
		},
		{
			name: "return from loop",
			src: `fun find(a: IntArray, v: Int): Int {
    for (i in a.indices) {
        if (a[i] == v) return i
    }
    return -1
}

fun main() {
    val a = intArrayOf(4, 5, 6)
    println(find(a, 6))
    println(find(a, 7))
}`,
			want: "2\n-1\n",
		},
		{
			name: "array mutated in loop",
			src: `fun main() {
    val a = intArrayOf(1, 2, 3)
    for (i in a.indices) a[i] = a[i] * 10
    for (x in a) print(x)
}`,
			want: "102030",
		},
		{
			name: "nested loops",
			src: `fun main() {
    var total = 0
    for (i in 1..3) {
        for (j in i downTo 1) {
            total = total + i * j
        }
    }
    println(total)
}`,
			want: "25\n",
		},
		{
			name: "bound variable reassigned in body",
			src: `fun main() {
    var n = 3
    for (i in 0..n) {
        n = 0
        print(i)
    }
}`,
			want: "0123",
		},
		{
			name: "generic loops",
			src: `fun main() {
    val r = 1..3
    for (i in r) print(i)
    for (x in intArrayOf(1, 2).reversed()) print(x)
    for (x: Any in 1..2) print(x)
}`,
			want: "1232112",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generic, err := run(t, tt.src, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, generic); diff != "" {
				t.Errorf("generic output mismatch (-want +got):\n%s", diff)
			}
			lowered, err := run(t, tt.src, true)
			if err != nil {
				t.Fatalf("unexpected error after lowering: %v", err)
			}
			if diff := cmp.Diff(generic, lowered); diff != "" {
				t.Errorf("lowered output differs (-generic +lowered):\n%s", diff)
			}
		})
	}
}
