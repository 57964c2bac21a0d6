package section

import "testing"

func TestExtract(t *testing.T) {
	doc := "<html>\n<slk-template>\n  <p>a</p>\n</slk-template>\n" +
		"<slk-template>second</slk-template>\n</html>"

	got, ok := Extract(doc, Template)
	if !ok || got != "\n  <p>a</p>\n" {
		t.Errorf("Extract = (%q, %v)", got, ok)
	}

	if _, ok := Extract(doc, PreviewData); ok {
		t.Error("found a region that does not exist")
	}

	if got, ok := Extract("<a.b>x</a.b><axb>y</axb>", "a.b"); !ok || got != "x" {
		t.Errorf("names are not matched literally: %q", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		template string
		data     string
		hasData  bool
	}{
		{
			name:     "both regions",
			doc:      `<slk-template><p>!{x}!</p></slk-template><slk-previewdata>{"x":1}</slk-previewdata>`,
			template: "<p>!{x}!</p>",
			data:     `{"x":1}`,
			hasData:  true,
		},
		{
			name:     "bare template",
			doc:      "  <p>x</p>\n",
			template: "<p>x</p>",
		},
		{
			name:     "bare template with data",
			doc:      "<p>!{x}!</p>\n<slk-previewdata>{\"x\":2}</slk-previewdata>",
			template: "<p>!{x}!</p>",
			data:     `{"x":2}`,
			hasData:  true,
		},
		{
			name:     "empty data region",
			doc:      "<slk-template><b>y</b></slk-template><slk-previewdata></slk-previewdata>",
			template: "<b>y</b>",
			hasData:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Split(tt.doc)
			if d.Template != tt.template || d.Data != tt.data || d.HasData != tt.hasData {
				t.Errorf("Split = %+v", d)
			}
		})
	}
}
