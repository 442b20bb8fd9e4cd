// internal/models/details.go
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrDetailsNotObject is returned when activity details are not a JSON object.
var ErrDetailsNotObject = errors.New("activity details must be a JSON object")

// Kind identifies the shape held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindList
)

// Value is one node of an activity details document. Numbers keep their
// literal form so that rendering does not go through float formatting twice.
type Value struct {
	Kind   Kind
	Text   string // string content or number literal
	Bool   bool
	Object Details
	List   []Value
}

func String(s string) Value { return Value{Kind: KindString, Text: s} }

func Number(f float64) Value {
	return Value{Kind: KindNumber, Text: formatNumber(f)}
}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Null() Value { return Value{Kind: KindNull} }

func Object(d Details) Value { return Value{Kind: KindObject, Object: d} }

func List(items ...Value) Value { return Value{Kind: KindList, List: items} }

// Field is a single key/value pair of a Details object.
type Field struct {
	Key   string
	Value Value
}

// Details is the free-form payload attached to a student activity.
// Keys keep their insertion order.
type Details []Field

// ParseDetails decodes a JSON object into Details. Empty input and JSON null
// both yield empty details.
func ParseDetails(raw []byte) (Details, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Details{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse details: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrDetailsNotObject
	}

	d, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("parse details: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse details: trailing data after object")
	}
	return d, nil
}

// Get returns the value stored under key.
func (d Details) Get(key string) (Value, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set replaces the value under key in place, or appends a new field.
func (d Details) Set(key string, v Value) Details {
	for i := range d {
		if d[i].Key == key {
			d[i].Value = v
			return d
		}
	}
	return append(d, Field{Key: key, Value: v})
}

// Compact renders the details as compact JSON. Empty details render as "{}".
func (d Details) Compact() string {
	var sb strings.Builder
	writeObject(&sb, d)
	return sb.String()
}

func (d Details) MarshalJSON() ([]byte, error) {
	return []byte(d.Compact()), nil
}

// UnmarshalJSON never fails on a well-formed document: anything that is not
// an object is treated as empty details.
func (d *Details) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDetails(data)
	if err != nil {
		*d = Details{}
		return nil
	}
	*d = parsed
	return nil
}

func decodeObject(dec *json.Decoder) (Details, error) {
	d := Details{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		d = d.Set(key, v)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj, err := decodeObject(dec)
			if err != nil {
				return Value{}, err
			}
			return Object(obj), nil
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func writeObject(sb *strings.Builder, d Details) {
	sb.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(sb, f.Key)
		sb.WriteByte(':')
		writeValue(sb, f.Value)
	}
	sb.WriteByte('}')
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.Kind {
	case KindString:
		writeString(sb, v.Text)
	case KindNumber:
		sb.WriteString(v.Text)
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindObject:
		writeObject(sb, v.Object)
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeValue(sb, item)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("null")
	}
}

// writeString quotes s the way browsers' JSON.stringify does: only quotes,
// backslashes and control characters are escaped.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
