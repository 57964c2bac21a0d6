package scope

import "testing"

func TestValue_Query(t *testing.T) {
	doc, err := DecodeJSON([]byte(`{
		"items": [1, 2, 3],
		"user": {"name": "ann", "admin": true},
		"price": 2.5
	}`))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr string
		want string
	}{
		{expr: `len(items)`, want: `3`},
		{expr: `items[0] + 1`, want: `2`},
		{expr: `map(items, # * 2)`, want: `[2,4,6]`},
		{expr: `filter(items, # > 1)`, want: `[2,3]`},
		{expr: `user.name + "!"`, want: `"ann!"`},
		{expr: `user.admin && price > 2`, want: `true`},
		{expr: `price * 2`, want: `5`},
		{expr: `user`, want: `{"admin":true,"name":"ann"}`},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := doc.Query(tt.expr)
			if err != nil {
				t.Fatalf("Query(%q) error: %v", tt.expr, err)
			}

			if got.String() != tt.want {
				t.Errorf("Query(%q) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}
}

func TestValue_Query_Errors(t *testing.T) {
	doc := ObjectOf(Member{Key: "a", Value: NumberOf(1)})

	for _, expr := range []string{`missing + 1`, `a +`, `a.b.c`} {
		if _, err := doc.Query(expr); err == nil {
			t.Errorf("Query(%q) succeeded, want error", expr)
		}
	}
}

func TestValue_Query_NonObject(t *testing.T) {
	got, err := ArrayOf(StringOf("x"), StringOf("y")).Query(`data[1]`)
	if err != nil {
		t.Fatal(err)
	}

	if got.Str() != "y" {
		t.Errorf("data[1] = %s", got)
	}
}
