// Package formcfg models an uploaded tax form configuration as an ordered
// JSON tree.
//
// The form walk depends on document order: fields are evaluated and written
// to the PDF in the order the document declares them, and a calculated line
// may reference lines declared earlier. Decoding into map[string]any would
// destroy that order, so Object keeps its members in a slice and the decoder
// walks json.Decoder tokens with UseNumber enabled, leaving numeric literals
// untouched until coercion.
package formcfg

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/csg33k/f1040-filler/internal/errors"
)

// Member is a single key/value pair inside an Object. Values are one of
// nil, bool, string, json.Number, float64, []any or *Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object whose members preserve document order.
type Object struct {
	Members []Member
}

// Get returns the value of a direct member. The boolean reports membership,
// so a JSON null member yields (nil, true) while an absent key yields
// (nil, false).
func (o *Object) Get(key string) (any, bool) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether key is a direct member of o.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set overwrites the value of an existing member in place, or appends a new
// member at the end when key is not present yet.
func (o *Object) Set(key string, value any) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Object returns the direct member key as a nested object, or nil when the
// member is absent or holds a different kind of value.
func (o *Object) Object(key string) *Object {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	child, _ := v.(*Object)
	return child
}

// String returns the direct member key as a string. The boolean is false
// when the member is absent or not a string.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON renders the object with its members in declared order.
// Numbers decoded from the document are written back verbatim; float64
// values produced by calculations are written in plain decimal notation.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the tree to w as indented JSON, preserving member order.
func Encode(w io.Writer, o *Object) error {
	raw, err := o.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshaling form tree")
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "    "); err != nil {
		return errors.Wrap(err, "indenting form tree")
	}
	out.WriteByte('\n')
	if _, err := w.Write(out.Bytes()); err != nil {
		return errors.Wrap(err, "writing form tree")
	}
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case json.Number:
		buf.WriteString(t.String())
	case float64:
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		buf.WriteString(strconv.Itoa(t))
	case string:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(b)
	case []any:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i := range t.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(t.Members[i].Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := writeValue(buf, t.Members[i].Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.Newf("form tree holds unsupported value of type %T", v)
	}
	return nil
}
