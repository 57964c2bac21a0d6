package scope

import (
	"slices"
	"testing"
)

func mustJSON(t *testing.T, src string) Value {
	t.Helper()

	v, err := DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("DecodeJSON(%q) error: %v", src, err)
	}

	return v
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
		ok   bool
	}{
		{"string", StringOf("Ann"), "Ann", true},
		{"empty string", StringOf(""), "", true},
		{"true", BoolOf(true), "true", true},
		{"false", BoolOf(false), "false", true},
		{"integer", NumberOf(3), "3", true},
		{"fraction", NumberOf(2.5), "2.5", true},
		{"negative", NumberOf(-0.125), "-0.125", true},
		{"large", NumberOf(1e21), "1000000000000000000000", true},
		{"null", Value{}, "", false},
		{"array", ArrayOf(NumberOf(1)), "", false},
		{"object", ObjectOf(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Text()
			if got != tt.want || ok != tt.ok {
				t.Errorf("Text() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValue_Lookup(t *testing.T) {
	v := mustJSON(t, `{"a":{"b":{"c":"deep"}},"list":[1,2],"n":null}`)

	tests := []struct {
		path string
		want Value
		ok   bool
	}{
		{"a.b.c", StringOf("deep"), true},
		{"a.b", ObjectOf(Member{"c", StringOf("deep")}), true},
		{"list", ArrayOf(NumberOf(1), NumberOf(2)), true},
		{"n", Value{}, true},
		{"a.x", Value{}, false},
		{"list.0", Value{}, false},
		{"a.b.c.d", Value{}, false},
		{"", Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := v.Lookup(tt.path)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)",
					tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestObjectOf_DuplicateKeys(t *testing.T) {
	v := ObjectOf(
		Member{"x", NumberOf(1)},
		Member{"y", NumberOf(2)},
		Member{"x", NumberOf(3)},
	)

	if got := v.Keys(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Keys() = %v, want [x y]", got)
	}

	if x, _ := v.Get("x"); x.Number() != 3 {
		t.Errorf("x = %v, want 3", x)
	}
}

func TestValue_Immutable(t *testing.T) {
	elems := []Value{NumberOf(1), NumberOf(2)}
	arr := ArrayOf(elems...)
	elems[0] = StringOf("changed")

	if arr.Index(0).Number() != 1 {
		t.Error("ArrayOf aliases its argument")
	}

	keys := ObjectOf(Member{"a", Value{}}).Keys()
	keys[0] = "z"

	if !ObjectOf(Member{"a", Value{}}).Has("a") {
		t.Error("Keys exposes internal storage")
	}
}

func TestValue_MarshalJSON_KeepsOrder(t *testing.T) {
	src := `{"z":1,"a":[true,null,"s"],"m":{"y":2.5,"b":"q\"uote"}}`
	v := mustJSON(t, src)

	if got := v.String(); got != src {
		t.Errorf("String() = %s, want %s", got, src)
	}
}

func TestValue_Paths(t *testing.T) {
	v := mustJSON(t, `{"user":{"name":"a","tags":["x"]},"title":"t"}`)

	want := []string{"user", "user.name", "user.tags", "title"}
	if got := v.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestFromNative(t *testing.T) {
	v, err := FromNative(map[string]any{
		"b": []any{1, "two", 3.5, nil, true},
		"a": map[string]int{"k": 7},
	})
	if err != nil {
		t.Fatalf("FromNative error: %v", err)
	}

	want := `{"a":{"k":7},"b":[1,"two",3.5,null,true]}`
	if got := v.String(); got != want {
		t.Errorf("FromNative = %s, want %s", got, want)
	}

	if _, err := FromNative(map[int]string{1: "x"}); err == nil {
		t.Error("expected error for non-string map keys")
	}

	if _, err := FromNative(make(chan int)); err == nil {
		t.Error("expected error for channel")
	}
}

func TestValue_Native(t *testing.T) {
	v := mustJSON(t, `{"n":3,"f":1.5,"s":"x","l":[false]}`)

	m, ok := v.Native().(map[string]any)
	if !ok {
		t.Fatalf("Native() = %T, want map", v.Native())
	}

	if m["n"] != 3 {
		t.Errorf("n = %#v, want int 3", m["n"])
	}
	if m["f"] != 1.5 {
		t.Errorf("f = %#v, want 1.5", m["f"])
	}
	if l, ok := m["l"].([]any); !ok || len(l) != 1 || l[0] != false {
		t.Errorf("l = %#v", m["l"])
	}
}
