package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/slab/lang"
	"github.com/ardnew/slab/scope"
)

func testDocument(t *testing.T) document {
	t.Helper()

	data, err := scope.DecodeJSON([]byte(`{
		"site": {"title": "Home", "tags": ["a", "b"]},
		"items": [{"name": "x", "price": 5}, {"name": "y", "price": 20}]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	return document{
		template: `<ul><slk-each data="items" as="it"><li>!{it.name}!</li></slk-each></ul>`,
		data:     data,
	}
}

func TestEvaluate(t *testing.T) {
	doc := testDocument(t)

	tests := []struct {
		input string
		want  string
	}{
		{input: "site.title", want: `"Home"`},
		{input: "site", want: `{"title":"Home","tags":["a","b"]}`},
		{input: "len(items)", want: `2`},
		{input: `map(filter(items, .price > 10), .name)`, want: `["y"]`},
		{input: "site.tags[1]", want: `"b"`},
		{input: "Welcome to !{site.title}!", want: "Welcome to Home"},
		{input: "!{site.missing}!", want: "!{site.missing}!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evaluate(doc.data, tt.input)
			if err != nil {
				t.Fatalf("evaluate(%q) error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("evaluate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	if _, err := evaluate(doc.data, "nope +"); err == nil {
		t.Error("invalid expression evaluated without error")
	}
}

func TestRenderCommands(t *testing.T) {
	ctx := context.Background()
	doc := testDocument(t)

	html, err := renderHTML(ctx, doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	if want := `<ul><div><li>x</li><li>y</li></div></ul>`; html != want {
		t.Errorf("renderHTML = %q, want %q", html, want)
	}

	tree, err := renderTree(ctx, doc, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(tree, "<ul>") || !strings.Contains(tree, `"x"`) {
		t.Errorf("renderTree = %q", tree)
	}

	doc.template = "<ul>"
	if _, err := renderHTML(ctx, doc, nil); !errors.Is(err, lang.ErrParse) {
		t.Errorf("renderHTML of broken template error = %v", err)
	}
}

func TestListPaths(t *testing.T) {
	out := listPaths(testDocument(t).data, "site")

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("listPaths = %q, want 3 lines", out)
	}

	for i, p := range []string{"site ", "site.title ", "site.tags "} {
		if !strings.HasPrefix(strings.TrimSpace(lines[i])+" ", p) {
			t.Errorf("line %d = %q, want path %q", i, lines[i], p)
		}
	}
}

func testModel(t *testing.T) model {
	t.Helper()

	s := &Session{
		Load: func(context.Context) (string, scope.Value, error) {
			d := testDocument(t)

			return d.template, d.data, nil
		},
	}

	return newModel(context.Background(), s, testDocument(t), NewHistory(""))
}

func typeRunes(m model, s string) model {
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	return m
}

func TestModel_CompletesAfterDot(t *testing.T) {
	m := typeRunes(testModel(t), "site.")

	var got []string
	for _, match := range m.matches {
		got = append(got, match.Str)
	}

	if strings.Join(got, ",") != "title,tags" {
		t.Errorf("completions after site. = %q", got)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if v := m.input.Value(); v != "site.title" {
		t.Errorf("after Tab input = %q", v)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if v := m.input.Value(); v != "site.tags" {
		t.Errorf("after second Tab input = %q", v)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if v := m.input.Value(); v != "site." {
		t.Errorf("after Esc input = %q, want restored text", v)
	}
}

func TestModel_CommandPrefix(t *testing.T) {
	m := typeRunes(testModel(t), ":render")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("no command returned for :render")
	}

	e, err := m.history.Entry(0)
	if err != nil || e.Line != "render" || e.Mode != modeCtrl {
		t.Errorf("history entry = %+v, %v", e, err)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModel_ModeToggleAndHistory(t *testing.T) {
	m := testModel(t)

	_ = m.history.Write("site.title", modeEval)
	_ = m.history.Write("paths", modeCtrl)
	m.historyIdx = m.history.Len()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeCtrl || m.input.Value() != "paths" {
		t.Errorf("Up: mode %v input %q", m.mode, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.mode != modeEval || m.input.Value() != "site.title" {
		t.Errorf("second Up: mode %v input %q", m.mode, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past end: input %q idx %d", m.input.Value(), m.historyIdx)
	}
}
