package scope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrTrailingData is returned when a JSON document is followed by more
// input.
var ErrTrailingData = errors.New("scope: trailing data after JSON value")

// DecodeJSON parses one JSON document. Object members keep document order;
// duplicate keys keep the last value.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSON(dec)
	if err != nil {
		return Value{}, fmt.Errorf("scope: decode JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, ErrTrailingData
	}

	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}

		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return BoolOf(t), nil
	case string:
		return StringOf(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}

		if lit := t.String(); !strings.ContainsAny(lit, ".eE") {
			return integerOf(lit, f), nil
		}

		return NumberOf(f), nil

	case json.Delim:
		switch t {
		case '[':
			var elems []Value

			for dec.More() {
				e, err := decodeJSON(dec)
				if err != nil {
					return Value{}, err
				}

				elems = append(elems, e)
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}

			return Value{kind: Array, arr: elems}, nil

		case '{':
			var members []Member

			for dec.More() {
				key, err := dec.Token()
				if err != nil {
					return Value{}, err
				}

				k, ok := key.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key %v is not a string", key)
				}

				e, err := decodeJSON(dec)
				if err != nil {
					return Value{}, err
				}

				members = append(members, Member{Key: k, Value: e})
			}

			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}

			return ObjectOf(members...), nil
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// DecodeYAML parses one YAML document. Mapping order is preserved.
func DecodeYAML(data []byte) (Value, error) {
	var doc any

	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return Value{}, fmt.Errorf("scope: decode YAML: %w", err)
	}

	return fromYAML(doc)
}

func fromYAML(x any) (Value, error) {
	switch t := x.(type) {
	case yaml.MapSlice:
		members := make([]Member, 0, len(t))

		for _, item := range t {
			e, err := fromYAML(item.Value)
			if err != nil {
				return Value{}, err
			}

			members = append(members, Member{Key: fmt.Sprint(item.Key), Value: e})
		}

		return ObjectOf(members...), nil

	case []any:
		elems := make([]Value, len(t))

		for i, item := range t {
			e, err := fromYAML(item)
			if err != nil {
				return Value{}, err
			}

			elems[i] = e
		}

		return Value{kind: Array, arr: elems}, nil

	default:
		return FromNative(t)
	}
}

// Decode parses data as YAML when name has a .yaml or .yml extension and
// as JSON otherwise. Empty or blank input decodes to an empty object.
func Decode(name string, data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ObjectOf(), nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// EncodeYAML renders v as a YAML document with members in document order.
func EncodeYAML(v Value) ([]byte, error) {
	return yaml.Marshal(toYAML(v))
}

func toYAML(v Value) any {
	switch v.kind {
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = toYAML(e)
		}

		return out
	case Object:
		out := make(yaml.MapSlice, len(v.obj.keys))
		for i, k := range v.obj.keys {
			out[i] = yaml.MapItem{Key: k, Value: toYAML(v.obj.vals[i])}
		}

		return out
	default:
		return v.Native()
	}
}
