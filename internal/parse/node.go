package parse

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// node is a position inside a decoded document, remembering how it was reached
// so errors can name the exact field.
type node struct {
	doc string
	at  string
	v   any
}

func load(path string) (node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return node{}, fmt.Errorf("read %s: %w: %w", path, ErrIO, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return node{}, fmt.Errorf("decode %s: %w: %w", path, ErrSyntax, err)
	}
	return node{doc: path, v: v}, nil
}

func (n node) child(key string) string {
	if n.at == "" {
		return key
	}
	return n.at + "." + key
}

// get walks a dotted path of object keys.
func (n node) get(path string) (node, error) {
	cur := n
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.v.(map[string]any)
		if !ok {
			field := cur.at
			if field == "" {
				field = "$"
			}
			return node{}, &FieldError{Doc: n.doc, Field: field, Err: ErrTypeMismatch, Want: "object"}
		}
		v, ok := obj[key]
		if !ok {
			return node{}, &FieldError{Doc: n.doc, Field: cur.child(key), Err: ErrFieldMissing}
		}
		cur = node{doc: n.doc, at: cur.child(key), v: v}
	}
	return cur, nil
}

func (n node) str(path string) (string, error) {
	c, err := n.get(path)
	if err != nil {
		return "", err
	}
	s, ok := c.v.(string)
	if !ok {
		return "", &FieldError{Doc: n.doc, Field: c.at, Err: ErrTypeMismatch, Want: "string"}
	}
	return s, nil
}

func (n node) list(path string) ([]node, error) {
	c, err := n.get(path)
	if err != nil {
		return nil, err
	}
	arr, ok := c.v.([]any)
	if !ok {
		return nil, &FieldError{Doc: n.doc, Field: c.at, Err: ErrTypeMismatch, Want: "array"}
	}
	out := make([]node, len(arr))
	for i, v := range arr {
		out[i] = node{doc: n.doc, at: fmt.Sprintf("%s[%d]", c.at, i), v: v}
	}
	return out, nil
}

// values reads field from every element of the array at path.
func (n node) values(path, field string) ([]string, error) {
	items, err := n.list(path)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, err := it.str(field)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
