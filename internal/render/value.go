// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts patent JSON records into heading-structured
// Markdown suitable for retrieval ingestion.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags the JSON variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is a decoded JSON value. Unlike encoding/json's map decoding it
// preserves object member order and number literals, both of which the
// renderer depends on.
type Value struct {
	Kind    Kind
	Str     string
	Num     json.Number
	Bool    bool
	Members []Member // object members in source order
	Elems   []*Value // array elements
}

// Member is one key/value pair of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// IsContainer reports whether v is an object or array.
func (v *Value) IsContainer() bool {
	return v.Kind == KindObject || v.Kind == KindArray
}

// Text returns the scalar rendering of v: strings verbatim, numbers as
// their source literal, booleans as true/false, null as "null".
// Containers render as the empty string.
func (v *Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num.String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	default:
		return ""
	}
}

// Lookup returns the value of the named top-level member. The second
// return value reports whether the member exists; it is always false for
// non-object values.
func (v *Value) Lookup(key string) (*Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Decode parses data into a Value tree. It walks the token stream rather
// than unmarshaling into maps so member order survives.
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
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
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return &Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return &Value{Kind: KindNumber, Num: t}, nil
	case bool:
		return &Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return &Value{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := &Value{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{Kind: KindArray}
	for dec.More() {
		el, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, el)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
