package scope

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// UnsupportedTypeError is returned by [FromNative] for Go values with no
// JSON-like representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "scope: unsupported type " + e.Type.String()
}

// FromNative converts a Go value built from nil, bool, numbers, strings,
// slices and string-keyed maps into a [Value]. Map members are sorted by key
// since Go maps have no order.
func FromNative(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case bool:
		return BoolOf(t), nil
	case string:
		return StringOf(t), nil
	case float64:
		return NumberOf(t), nil
	case float32:
		return NumberOf(float64(t)), nil
	case int:
		return integerOf(strconv.Itoa(t), float64(t)), nil
	case int64:
		return integerOf(strconv.FormatInt(t, 10), float64(t)), nil
	case uint64:
		return integerOf(strconv.FormatUint(t, 10), float64(t)), nil
	case fmt.Stringer:
		return StringOf(t.String()), nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return integerOf(strconv.FormatInt(rv.Int(), 10), float64(rv.Int())), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return integerOf(strconv.FormatUint(rv.Uint(), 10), float64(rv.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return NumberOf(rv.Float()), nil

	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())

		for i := range elems {
			e, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}

			elems[i] = e
		}

		return Value{kind: Array, arr: elems}, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, &UnsupportedTypeError{Type: rv.Type()}
		}

		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}

		slices.Sort(keys)

		members := make([]Member, len(keys))

		for i, k := range keys {
			e, err := FromNative(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return Value{}, err
			}

			members[i] = Member{Key: k, Value: e}
		}

		return ObjectOf(members...), nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{}, nil
		}

		return FromNative(rv.Elem().Interface())
	}

	return Value{}, &UnsupportedTypeError{Type: rv.Type()}
}

// Native converts v into plain Go values: nil, bool, float64, string,
// []any and map[string]any. Whole numbers that fit are returned as int so
// expression environments compare them naturally.
func (v Value) Native() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		if v.s != "" {
			if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
				return i
			}

			if u, err := strconv.ParseUint(v.s, 10, 64); err == nil {
				return u
			}

			return v.n
		}

		if v.n == math.Trunc(v.n) && math.Abs(v.n) < maxExactInt {
			return int(v.n)
		}

		return v.n
	case String:
		return v.s
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}

		return out
	case Object:
		out := make(map[string]any, len(v.obj.keys))
		for i, k := range v.obj.keys {
			out[k] = v.obj.vals[i].Native()
		}

		return out
	default:
		return nil
	}
}

// GoString implements [fmt.GoStringer] for debugging output.
func (v Value) GoString() string {
	return "scope." + v.kind.String() + "(" + strconv.Quote(v.String()) + ")"
}
