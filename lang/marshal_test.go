package lang

import (
	"bytes"
	"strings"
	"testing"
)

func sampleTree() Node {
	return el("a", Attrs{{"href", "/x"}, {"id", "y"}},
		txt("hi <there>"),
		el("br", nil),
	)
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := FormatJSON(&buf, sampleTree(), 0); err != nil {
		t.Fatal(err)
	}

	want := `{"attributes":[{"name":"href","value":"/x"},{"name":"id","value":"y"}],` +
		`"children":["hi <there>",{"tag":"br"}],"tag":"a"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatJSON\n got: %s\nwant: %s", got, want)
	}
}

func TestFormatJSON_Indent(t *testing.T) {
	var buf bytes.Buffer

	if err := FormatJSON(&buf, txt("x"), 2); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "\"x\"\n" {
		t.Errorf("FormatJSON(text) = %q", buf.String())
	}
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer

	if err := FormatYAML(&buf, sampleTree(), 2); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"tag: a", "name: href", "value: /x", "tag: br", "hi <there>"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatYAML output missing %q:\n%s", want, out)
		}
	}
}

func TestPrint(t *testing.T) {
	want := strings.Join([]string{
		`<a href="/x" id="y">`,
		`  "hi <there>"`,
		`  <br>`,
		``,
	}, "\n")

	if got := String(sampleTree()); got != want {
		t.Errorf("Print\n got: %q\nwant: %q", got, want)
	}

	var buf bytes.Buffer
	if err := PrintIndent(&buf, sampleTree(), 4); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "\n    <br>") {
		t.Errorf("PrintIndent(4) = %q", buf.String())
	}
}
