package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/idr/pkg/core"
)

// YAMLSerializer handles YAML payloads.
type YAMLSerializer struct {
	// Strict rejects unknown fields and normalizes component property numbers to
	// json.Number, matching JSON strict mode.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) decode(r io.Reader, v any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(s.Strict)
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}

func (s *YAMLSerializer) Decode(r io.Reader) (core.Collections, error) {
	var c core.Collections
	if err := s.decode(r, &c); err != nil {
		return core.Collections{}, err
	}
	if s.Strict {
		for _, f := range c.Forms {
			normalizeTree([]*core.Node{f.Structure})
		}
		normalizeTree(c.ClassTree)
	}
	return c, nil
}

func (s *YAMLSerializer) Encode(c core.Collections) ([]byte, error) {
	return yaml.Marshal(c)
}

func (s *YAMLSerializer) DecodeEdits(r io.Reader) ([]core.Edit, error) {
	var edits []core.Edit
	if err := s.decode(r, &edits); err != nil {
		return nil, err
	}
	return normalizeEdits(edits)
}

func (s *YAMLSerializer) EncodeJournal(j Journal) ([]byte, error) {
	return yaml.Marshal(j)
}

func (s *YAMLSerializer) DecodeJournal(r io.Reader) (Journal, error) {
	j := Journal{Cursor: -1}
	if err := s.decode(r, &j); err != nil {
		return Journal{}, err
	}
	return j, j.check()
}

// normalizeTree rewrites the numeric properties of every node in place. It runs on
// freshly decoded nodes only.
func normalizeTree(roots []*core.Node) {
	core.Walk(roots, func(n *core.Node, _ int) bool {
		for k, v := range n.Properties {
			n.Properties[k] = recursiveNormalize(v)
		}
		return true
	})
}

// recursiveNormalize traverses maps and slices and converts numeric types to json.Number.
func recursiveNormalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = recursiveNormalize(val)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, val := range v {
			l[i] = recursiveNormalize(val)
		}
		return l
	case int:
		return json.Number(fmt.Sprintf("%d", v))
	case int64:
		return json.Number(fmt.Sprintf("%d", v))
	case uint64:
		return json.Number(fmt.Sprintf("%d", v))
	case float64:
		return json.Number(fmt.Sprintf("%v", v))
	default:
		return v
	}
}
