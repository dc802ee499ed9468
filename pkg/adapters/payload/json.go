package payload

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/idr/pkg/core"
)

// JSONSerializer handles JSON payloads.
type JSONSerializer struct {
	// Strict rejects unknown fields and keeps component property numbers as
	// json.Number to avoid precision loss.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) decode(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	if s.Strict {
		decoder.UseNumber()
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func (s *JSONSerializer) Decode(r io.Reader) (core.Collections, error) {
	var c core.Collections
	if err := s.decode(r, &c); err != nil {
		return core.Collections{}, err
	}
	return c, nil
}

func (s *JSONSerializer) Encode(c core.Collections) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

func (s *JSONSerializer) DecodeEdits(r io.Reader) ([]core.Edit, error) {
	var edits []core.Edit
	if err := s.decode(r, &edits); err != nil {
		return nil, err
	}
	return normalizeEdits(edits)
}

func (s *JSONSerializer) EncodeJournal(j Journal) ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

func (s *JSONSerializer) DecodeJournal(r io.Reader) (Journal, error) {
	j := Journal{Cursor: -1}
	if err := s.decode(r, &j); err != nil {
		return Journal{}, err
	}
	return j, j.check()
}
