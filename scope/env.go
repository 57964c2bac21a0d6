package scope

import "strings"

// Env is a chain of values searched innermost first. The zero Env resolves
// nothing. Envs are immutable; [Env.Bind] returns a new child.
type Env struct {
	parent *Env
	vars   Value
	depth  int
}

// NewEnv returns a root environment over v.
func NewEnv(v Value) *Env {
	return &Env{vars: v}
}

// Bind returns a child environment whose innermost value is {key: v}.
func (e *Env) Bind(key string, v Value) *Env {
	return e.Push(Bind(key, v))
}

// Push returns a child environment whose innermost value is v.
func (e *Env) Push(v Value) *Env {
	depth := 0
	if e != nil {
		depth = e.depth + 1
	}

	return &Env{parent: e, vars: v, depth: depth}
}

// Depth returns the number of ancestors of e.
func (e *Env) Depth() int {
	if e == nil {
		return 0
	}

	return e.depth
}

// Value returns the innermost value.
func (e *Env) Value() Value {
	if e == nil {
		return Value{}
	}

	return e.vars
}

// Lookup resolves a dot-separated path. The first segment selects the
// innermost value that defines it; the remaining segments are resolved in
// that value only, so an inner binding shadows an outer one entirely.
func (e *Env) Lookup(path string) (Value, bool) {
	return e.LookupSegments(strings.Split(path, "."))
}

// LookupSegments is [Env.Lookup] with a pre-split path.
func (e *Env) LookupSegments(segments []string) (Value, bool) {
	if len(segments) == 0 {
		return e.Value(), e != nil
	}

	for cur := e; cur != nil; cur = cur.parent {
		if head, ok := cur.vars.Get(segments[0]); ok {
			return head.LookupSegments(segments[1:])
		}
	}

	return Value{}, false
}

// Flatten merges the chain into one object, inner keys replacing outer
// ones. Non-object links are skipped.
func (e *Env) Flatten() Value {
	var chain []*Env
	for cur := e; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}

	var members []Member

	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].vars.Members() {
			members = append(members, Member{Key: k, Value: v})
		}
	}

	return ObjectOf(members...)
}
