package formcfg

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/csg33k/f1040-filler/internal/errors"
)

// Decode reads one JSON document from r into an ordered Object tree. The
// document root must be a JSON object; anything else is a structural
// failure of the upload, not a field-level error.
func Decode(r io.Reader) (*Object, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decoding form configuration")
	}
	root, ok := v.(*Object)
	if !ok {
		return nil, errors.Newf("form configuration root must be a JSON object, got %s", jsonKind(v))
	}
	if dec.More() {
		return nil, errors.New("form configuration has trailing data after the root object")
	}
	return root, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (*Object, error) {
	return Decode(bytes.NewReader(b))
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, errors.Newf("unexpected %q in form configuration", t.String())
	default:
		// string, json.Number, bool or nil.
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Newf("object key must be a string, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: value})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return "unknown"
	}
}
