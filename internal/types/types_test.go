package types

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		args     []*Type
		expected string
	}{
		{"Int", nil, "Int"},
		{"Char", nil, "Char"},
		{"IntArray", nil, "IntArray"},
		{"ByteArray", nil, "ByteArray"},
		{"IntRange", nil, "IntRange"},
		{"LongProgression", nil, "LongProgression"},
		{"CharRange", nil, "CharRange"},
		{"Array", []*Type{TypeString}, "Array<String>"},
		{"List", []*Type{TypeInt}, "List<Int>"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := Lookup(tt.name, tt.args)
			if got == nil {
				t.Fatalf("Lookup(%q) returned nil", tt.name)
			}
			if got.Name() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.Name())
			}
		})
	}
}

func TestLookupRejects(t *testing.T) {
	tests := []struct {
		name string
		args []*Type
	}{
		{"Float", nil},
		{"ByteRange", nil},
		{"StringArray", nil},
		{"Array", nil},
		{"Int", []*Type{TypeInt}},
	}
	for _, tt := range tests {
		if got := Lookup(tt.name, tt.args); got != nil {
			t.Errorf("Lookup(%q, %v): expected nil, got %s", tt.name, tt.args, got)
		}
	}
}

func TestProgressionElement(t *testing.T) {
	tests := []struct {
		a, b     *Type
		expected *Type
	}{
		{TypeInt, TypeInt, TypeInt},
		{TypeByte, TypeShort, TypeInt},
		{TypeInt, TypeLong, TypeLong},
		{TypeLong, TypeByte, TypeLong},
		{TypeChar, TypeChar, TypeChar},
		{TypeChar, TypeInt, nil},
		{TypeString, TypeInt, nil},
		{TypeBoolean, TypeBoolean, nil},
	}
	for _, tt := range tests {
		got := ProgressionElement(tt.a, tt.b)
		if !got.Equal(tt.expected) {
			t.Errorf("ProgressionElement(%s, %s): expected %s, got %s", tt.a, tt.b, tt.expected, got)
		}
	}
}

func TestAssignableTo(t *testing.T) {
	if !RangeOf(TypeInt).AssignableTo(ProgressionOf(TypeInt)) {
		t.Error("IntRange must be assignable to IntProgression")
	}
	if ProgressionOf(TypeInt).AssignableTo(RangeOf(TypeInt)) {
		t.Error("IntProgression must not be assignable to IntRange")
	}
	if RangeOf(TypeInt).AssignableTo(ProgressionOf(TypeLong)) {
		t.Error("IntRange must not be assignable to LongProgression")
	}
	if !TypeNothing.AssignableTo(TypeInt) {
		t.Error("Nothing must be assignable to Int")
	}
	if !TypeInt.AssignableTo(TypeAny) {
		t.Error("Int must be assignable to Any")
	}
}

func TestWrapAndBounds(t *testing.T) {
	tests := []struct {
		typ      *Type
		in, want int64
	}{
		{TypeInt, 2147483648, -2147483648},
		{TypeInt, -(-2147483648), -2147483648},
		{TypeByte, 128, -128},
		{TypeShort, 32768, -32768},
		{TypeChar, -1, 65535},
		{TypeLong, 1 << 40, 1 << 40},
	}
	for _, tt := range tests {
		if got := Wrap(tt.typ, tt.in); got != tt.want {
			t.Errorf("Wrap(%s, %d): expected %d, got %d", tt.typ, tt.in, tt.want, got)
		}
	}

	if MinValue(TypeInt) != -2147483648 || MaxValue(TypeInt) != 2147483647 {
		t.Errorf("unexpected Int bounds %d..%d", MinValue(TypeInt), MaxValue(TypeInt))
	}
	if MinValue(TypeChar) != 0 || MaxValue(TypeChar) != 65535 {
		t.Errorf("unexpected Char bounds %d..%d", MinValue(TypeChar), MaxValue(TypeChar))
	}
	if MaxValue(TypeLong) != 9223372036854775807 {
		t.Errorf("unexpected Long max %d", MaxValue(TypeLong))
	}
}

func TestIterationElement(t *testing.T) {
	if got := IterationElement(PrimitiveArrayOf(TypeInt)); !got.Equal(TypeInt) {
		t.Errorf("expected Int, got %s", got)
	}
	if got := IterationElement(RangeOf(TypeChar)); !got.Equal(TypeChar) {
		t.Errorf("expected Char, got %s", got)
	}
	if got := IterationElement(TypeInt); got != nil {
		t.Errorf("expected nil for Int, got %s", got)
	}
}
