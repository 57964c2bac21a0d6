// Package section extracts named regions from a slab source document.
//
// A document may wrap its template in <slk-template>...</slk-template> and
// carry default data in <slk-previewdata>...</slk-previewdata>. Both regions
// are optional.
package section

import (
	"regexp"
	"strings"
	"sync"
)

// Region names.
const (
	Template    = "slk-template"
	PreviewData = "slk-previewdata"
)

var patterns sync.Map

func pattern(name string) *regexp.Regexp {
	if re, ok := patterns.Load(name); ok {
		return re.(*regexp.Regexp)
	}

	q := regexp.QuoteMeta(name)
	re := regexp.MustCompile(`(?s)<` + q + `>(.*?)</` + q + `>`)
	actual, _ := patterns.LoadOrStore(name, re)

	return actual.(*regexp.Regexp)
}

// Extract returns the inner text of the first <name>...</name> region of
// doc.
func Extract(doc, name string) (string, bool) {
	m := pattern(name).FindStringSubmatch(doc)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// Document is a source document split into its regions.
type Document struct {
	// Template is the template region, or the whole document when it has
	// no template region.
	Template string
	// Data is the preview data region. HasData reports whether it exists.
	Data    string
	HasData bool
}

// Split separates doc into its template and preview data.
func Split(doc string) Document {
	var d Document

	tmpl, ok := Extract(doc, Template)
	if !ok {
		tmpl = doc
	}

	d.Template = strings.TrimSpace(tmpl)
	d.Data, d.HasData = Extract(doc, PreviewData)

	if !ok && d.HasData {
		// The data region is not part of the template.
		d.Template = strings.TrimSpace(pattern(PreviewData).ReplaceAllLiteralString(doc, ""))
	}

	return d
}
