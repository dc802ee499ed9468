// Package payload decodes decompiler session payloads and encodes modification
// journals. JSON and YAML are supported.
package payload

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/idr/pkg/core"
)

// ErrUnsupportedFormat is returned when no serializer handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported payload format")

// Journal is the on-disk form of a modification journal.
type Journal struct {
	Cursor        int                 `json:"cursor" yaml:"cursor"`
	Modifications []core.Modification `json:"modifications" yaml:"modifications"`
}

func (j Journal) check() error {
	if j.Cursor < -1 || j.Cursor >= len(j.Modifications) {
		return fmt.Errorf("journal cursor %d out of range [-1, %d]", j.Cursor, len(j.Modifications)-1)
	}
	return nil
}

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Decode reads a session payload. It does not validate it; core.Session.Load does.
	Decode(r io.Reader) (core.Collections, error)
	// Encode writes a session payload.
	Encode(c core.Collections) ([]byte, error)
	// DecodeEdits reads a list of edits.
	DecodeEdits(r io.Reader) ([]core.Edit, error)
	// EncodeJournal writes a journal.
	EncodeJournal(j Journal) ([]byte, error)
	// DecodeJournal reads a journal.
	DecodeJournal(r io.Reader) (Journal, error)
}

// DefaultSerializers returns the standard set of serializers by extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
	}
}

// ForPath picks the serializer for a file name by its extension.
func ForPath(path string, strict bool) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	s, ok := DefaultSerializers(strict)[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return s, nil
}

// NewJournal snapshots a session's journal.
func NewJournal(s *core.Session) Journal {
	mods, cursor := s.History()
	return Journal{Cursor: cursor, Modifications: mods}
}

// normalizeEdits canonicalizes edit kinds so aliases such as "dfm" are accepted.
func normalizeEdits(edits []core.Edit) ([]core.Edit, error) {
	for i := range edits {
		kind, err := core.ParseModificationKind(string(edits[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		edits[i].Kind = kind
	}
	return edits, nil
}
