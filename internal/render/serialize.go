package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/answerkey/internal/model"
)

// ErrRender marks template and serialization failures.
var ErrRender = errors.New("render failed")

// EncodeJSON writes the answer key as indented JSON. Keys follow struct order
// and every sequence keeps its source order.
func EncodeJSON(a *model.Answers) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w: %w", ErrRender, err)
	}
	return append(data, '\n'), nil
}

// DecodeJSON is the inverse of EncodeJSON. Unknown keys are rejected.
func DecodeJSON(data []byte) (*model.Answers, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var a model.Answers
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w: %w", ErrRender, err)
	}
	return &a, nil
}

// EncodeYAML writes the answer key as YAML with the same key names as the JSON form.
func EncodeYAML(a *model.Answers) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return nil, fmt.Errorf("marshal YAML: %w: %w", ErrRender, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal YAML: %w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML is the inverse of EncodeYAML.
func DecodeYAML(data []byte) (*model.Answers, error) {
	var a model.Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w: %w", ErrRender, err)
	}
	return &a, nil
}
