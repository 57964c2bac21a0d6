package scope

import (
	"bytes"
	"encoding/json"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON-like value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string // also the literal of a Number beyond maxExactInt
	arr  []Value
	obj  *object
}

type object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// BoolOf returns a bool value.
func BoolOf(b bool) Value { return Value{kind: Bool, b: b} }

// NumberOf returns a number value.
func NumberOf(n float64) Value { return Value{kind: Number, n: n} }

// maxExactInt bounds the integers a float64 holds exactly.
const maxExactInt = 1 << 53

// integerOf returns a number value for the decimal integer literal lit.
// Integers too large for a float64 keep lit for output and comparison.
func integerOf(lit string, n float64) Value {
	v := NumberOf(n)
	if math.Abs(n) >= maxExactInt {
		v.s = lit
	}

	return v
}

// StringOf returns a string value.
func StringOf(s string) Value { return Value{kind: String, s: s} }

// ArrayOf returns an array value holding a copy of elems.
func ArrayOf(elems ...Value) Value {
	return Value{kind: Array, arr: append([]Value(nil), elems...)}
}

// ObjectOf returns an object value. A repeated key keeps the position of its
// first occurrence and the value of its last.
func ObjectOf(members ...Member) Value {
	o := &object{
		keys:  make([]string, 0, len(members)),
		vals:  make([]Value, 0, len(members)),
		index: make(map[string]int, len(members)),
	}

	for _, m := range members {
		if i, ok := o.index[m.Key]; ok {
			o.vals[i] = m.Value

			continue
		}

		o.index[m.Key] = len(o.keys)
		o.keys = append(o.keys, m.Key)
		o.vals = append(o.vals, m.Value)
	}

	return Value{kind: Object, obj: o}
}

// Bind returns the single-member object {key: v}.
func Bind(key string, v Value) Value {
	return ObjectOf(Member{Key: key, Value: v})
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// IsScalar reports whether v is a bool, number or string.
func (v Value) IsScalar() bool {
	return v.kind == Bool || v.kind == Number || v.kind == String
}

// Bool returns the bool held by v, or false.
func (v Value) Bool() bool { return v.kind == Bool && v.b }

// Number returns the number held by v, or 0.
func (v Value) Number() float64 {
	if v.kind != Number {
		return 0
	}

	return v.n
}

// Str returns the string held by v, or "".
func (v Value) Str() string {
	if v.kind != String {
		return ""
	}

	return v.s
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj.keys)
	default:
		return 0
	}
}

// Index returns the i'th array element, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}
	}

	return v.arr[i]
}

// Elems iterates over array elements in order.
func (v Value) Elems() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != Array {
			return
		}

		for i, e := range v.arr {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Keys returns the object keys in document order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}

	return append([]string(nil), v.obj.keys...)
}

// Members iterates over object members in document order.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != Object {
			return
		}

		for i, k := range v.obj.keys {
			if !yield(k, v.obj.vals[i]) {
				return
			}
		}
	}
}

// Get returns the member named key of an object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}

	i, ok := v.obj.index[key]
	if !ok {
		return Value{}, false
	}

	return v.obj.vals[i], true
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)

	return ok
}

// Lookup resolves a dot-separated path by object key lookups only.
func (v Value) Lookup(path string) (Value, bool) {
	return v.LookupSegments(strings.Split(path, "."))
}

// LookupSegments resolves a path given as individual segments.
// An empty segment list resolves to v itself.
func (v Value) LookupSegments(segments []string) (Value, bool) {
	cur := v

	for _, seg := range segments {
		next, ok := cur.Get(seg)
		if !ok {
			return Value{}, false
		}

		cur = next
	}

	return cur, true
}

// Text returns the textual form of a scalar: strings unquoted, bools as
// true/false and numbers in shortest decimal form. It reports false for
// null, arrays and objects.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case String:
		return v.s, true
	case Bool:
		return strconv.FormatBool(v.b), true
	case Number:
		if v.s != "" {
			return v.s, true
		}

		return FormatNumber(v.n), true
	default:
		return "", false
	}
}

// FormatNumber renders n in shortest decimal form without exponent.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	b, _ := v.MarshalJSON()

	return string(b)
}

// MarshalJSON encodes v as JSON with object members in document order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := v.encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")

	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))

	case Number:
		if v.s != "" {
			buf.WriteString(v.s)

			break
		}

		b, err := json.Marshal(v.n)
		if err != nil {
			return err
		}

		buf.Write(b)

	case String:
		b, err := json.Marshal(v.s)
		if err != nil {
			return err
		}

		buf.Write(b)

	case Array:
		buf.WriteByte('[')

		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := e.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case Object:
		buf.WriteByte('{')

		for i, k := range v.obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			b, err := json.Marshal(k)
			if err != nil {
				return err
			}

			buf.Write(b)
			buf.WriteByte(':')

			if err := v.obj.vals[i].encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

// Equal reports whether v and w hold the same data. Object member order is
// ignored.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}

	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == w.b
	case Number:
		if v.s != "" || w.s != "" {
			vt, _ := v.Text()
			wt, _ := w.Text()

			return vt == wt
		}

		return v.n == w.n
	case String:
		return v.s == w.s
	case Array:
		if len(v.arr) != len(w.arr) {
			return false
		}

		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}

		return true
	case Object:
		if len(v.obj.keys) != len(w.obj.keys) {
			return false
		}

		for i, k := range v.obj.keys {
			other, ok := w.Get(k)
			if !ok || !v.obj.vals[i].Equal(other) {
				return false
			}
		}

		return true
	}

	return false
}

// Paths returns the dot paths of every object member reachable from v
// through objects only, in document order, depth first.
func (v Value) Paths() []string {
	var out []string

	var walk func(prefix string, cur Value)

	walk = func(prefix string, cur Value) {
		for k, child := range cur.Members() {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}

			out = append(out, p)
			walk(p, child)
		}
	}

	walk("", v)

	return out
}
