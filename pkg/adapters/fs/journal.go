package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/idr/pkg/adapters/payload"
	"github.com/aretw0/idr/pkg/core"
)

// WriteJournal exports the session journal to path, in the format its extension
// names. The file is replaced atomically; missing parent directories are created.
func WriteJournal(path string, session *core.Session) error {
	s, err := payload.ForPath(path, false)
	if err != nil {
		return err
	}
	data, err := s.EncodeJournal(payload.NewJournal(session))
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	return writeFileAtomic(path, data, 0644)
}

// ReadJournal reads a journal previously written by WriteJournal.
func ReadJournal(path string, strict bool) (payload.Journal, error) {
	s, err := payload.ForPath(path, strict)
	if err != nil {
		return payload.Journal{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return payload.Journal{}, fmt.Errorf("failed to read journal: %w", err)
	}
	return s.DecodeJournal(bytes.NewReader(data))
}

// ReadEdits reads an edit script.
func ReadEdits(path string, strict bool) ([]core.Edit, error) {
	s, err := payload.ForPath(path, strict)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edits: %w", err)
	}
	return s.DecodeEdits(bytes.NewReader(data))
}
