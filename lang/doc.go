// Package lang implements the slab template language: a lexer, a
// recursive-descent parser and an evaluator that renders a parsed tree
// against a [scope.Value].
//
// # Grammar
//
// Informal EBNF:
//
//	Template    → Element | Text+
//	Element     → '<' Name Attribute* '>' Child* '</' Name '>'
//	Attribute   → Name '=' Quote Text* Quote
//	Child       → Element | Text+
//	Placeholder → '!{' Path '}!'
//	Path        → Segment ('.' Segment)*
//
// The grammar is deliberately minimal: no comments, no void elements, no
// entities. A template has exactly one root.
//
// Placeholders are not part of the grammar. They pass through the lexer as
// plain text and are substituted by the evaluator.
//
// # Example
//
//	<ul class="!{list.class}!">
//	  <slk-each data="!{list.items}!" as="!{item}!">
//	    <li>!{item.name}!</li>
//	  </slk-each>
//	</ul>
//
// Rendered against
//
//	{"list": {"class": "names", "items": [{"name": "Ann"}, {"name": "Bo"}]}}
//
// the slk-each directive becomes a div holding one li per item.
//
// # Evaluation
//
// [Evaluate] never modifies its input. It returns a new tree in which
// placeholders with scalar values are replaced and directives are expanded.
// Unresolvable placeholders are left as written. A directive whose data
// path does not name an array is kept with its data and as attributes
// removed. A directive with more than one child is a [*DirectiveError].
//
// Inside a directive the bound name is visible together with every name of
// the enclosing scopes; inner names shadow outer ones.
//
// # Caching
//
// [Compile] parses a source once per distinct content and returns a
// reusable [Template].
package lang
