package repl

import (
	"slices"
	"strings"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{name: "no call", input: "items", cursor: 5},
		{name: "open paren", input: "len(", cursor: 4, wantName: "len", wantInCall: true},
		{name: "first arg", input: "filter(items", cursor: 12, wantName: "filter", wantInCall: true},
		{name: "second arg", input: "filter(items, ", cursor: 14, wantName: "filter", wantIndex: 1, wantInCall: true},
		{name: "closed call", input: "len(items)", cursor: 10},
		{
			name: "nested call inner", input: "map(items, upper(", cursor: 17,
			wantName: "upper", wantInCall: true,
		},
		{
			name: "nested call closed", input: "map(items, upper(x), ", cursor: 21,
			wantName: "map", wantIndex: 2, wantInCall: true,
		},
		{
			name: "comma inside array literal", input: "join([1, 2], ", cursor: 13,
			wantName: "join", wantIndex: 1, wantInCall: true,
		},
		{name: "bare paren", input: "(a + ", cursor: 5},
		{name: "cursor mid input", input: "len(items) + len(", cursor: 4, wantName: "len", wantInCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)

			if got.inCall != tt.wantInCall || got.name != tt.wantName || got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {name:%s argIndex:%d inCall:%v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	if hint := renderSignatureHint("nope", 0); hint != "" {
		t.Errorf("unknown builtin hint = %q", hint)
	}

	hint := renderSignatureHint("replace", 1)
	for _, part := range []string{"replace", "string", "old", "new"} {
		if !strings.Contains(hint, part) {
			t.Errorf("hint %q missing %q", hint, part)
		}
	}
}

func TestBuiltinNames(t *testing.T) {
	names := builtinNames()

	if !slices.IsSorted(names) {
		t.Error("builtin names are not sorted")
	}

	for name := range builtinParams {
		if !slices.Contains(names, name) {
			t.Errorf("hinted builtin %q is not an expr-lang builtin", name)
		}

		if !isFunction(name) {
			t.Errorf("isFunction(%q) = false", name)
		}
	}

	if isFunction("site") {
		t.Error("isFunction(site) = true")
	}
}
