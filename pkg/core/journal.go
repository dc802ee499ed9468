package core

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ModificationKind tags what a modification edits.
type ModificationKind string

const (
	ModCode        ModificationKind = "code"
	ModString      ModificationKind = "string"
	ModDFMProperty ModificationKind = "dfm-property"
	ModName        ModificationKind = "name"
	ModType        ModificationKind = "type"
)

// ParseModificationKind accepts the canonical names plus "dfm".
func ParseModificationKind(s string) (ModificationKind, error) {
	switch ModificationKind(strings.ToLower(s)) {
	case ModCode:
		return ModCode, nil
	case ModString:
		return ModString, nil
	case ModDFMProperty, "dfm":
		return ModDFMProperty, nil
	case ModName:
		return ModName, nil
	case ModType:
		return ModType, nil
	}
	return "", fmt.Errorf("unknown modification kind %q", s)
}

// Modification is one user edit. It is immutable once appended to a Journal.
type Modification struct {
	ID            string           `json:"id" yaml:"id"`
	Kind          ModificationKind `json:"type" yaml:"type"`
	Target        string           `json:"targetId" yaml:"targetId"`
	OriginalValue string           `json:"originalValue" yaml:"originalValue"`
	NewValue      string           `json:"newValue" yaml:"newValue"`
	CreatedAt     time.Time        `json:"timestamp" yaml:"timestamp"`
}

// Journal is a linear undo/redo log.
//
// The cursor points at the last active record: -1 is the baseline, len-1 means every
// record is in effect. Records past the cursor are the redo branch; the next Append
// discards them.
//
// Journal is not safe for concurrent use; Session serializes access to it.
type Journal struct {
	records []Modification
	cursor  int
}

// NewJournal returns an empty journal at the baseline.
func NewJournal() *Journal {
	return &Journal{cursor: -1}
}

// Append prunes the redo branch and makes m the newest active record.
// It returns how many records were pruned.
func (j *Journal) Append(m Modification) int {
	pruned := len(j.records) - (j.cursor + 1)
	j.records = append(j.records[:j.cursor+1], m)
	j.cursor = len(j.records) - 1
	return pruned
}

// Undo deactivates the newest active record. It is a no-op at the baseline.
func (j *Journal) Undo() (Modification, bool) {
	if j.cursor < 0 {
		return Modification{}, false
	}
	m := j.records[j.cursor]
	j.cursor--
	return m, true
}

// Redo reactivates the next record. It is a no-op when every record is active.
func (j *Journal) Redo() (Modification, bool) {
	if j.cursor >= len(j.records)-1 {
		return Modification{}, false
	}
	j.cursor++
	return j.records[j.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (j *Journal) CanUndo() bool { return j.cursor >= 0 }

// CanRedo reports whether Redo would move the cursor.
func (j *Journal) CanRedo() bool { return j.cursor < len(j.records)-1 }

// EffectiveValue returns the newest active value recorded for target.
// Records past the cursor never contribute.
func (j *Journal) EffectiveValue(target string) (string, bool) {
	for i := j.cursor; i >= 0; i-- {
		if j.records[i].Target == target {
			return j.records[i].NewValue, true
		}
	}
	return "", false
}

// EffectiveValueOf is EffectiveValue restricted to records of one kind. Artifact ids
// are only unique within a collection, so edits resolve their values through it.
func (j *Journal) EffectiveValueOf(kind ModificationKind, target string) (string, bool) {
	for i := j.cursor; i >= 0; i-- {
		if j.records[i].Kind == kind && j.records[i].Target == target {
			return j.records[i].NewValue, true
		}
	}
	return "", false
}

// Cursor returns the index of the last active record, -1 at the baseline.
func (j *Journal) Cursor() int { return j.cursor }

// Len returns the number of records, active or not.
func (j *Journal) Len() int { return len(j.records) }

// Dirty reports whether any record is active.
func (j *Journal) Dirty() bool { return j.cursor >= 0 }

// At returns the record at index i.
func (j *Journal) At(i int) (Modification, bool) {
	if i < 0 || i >= len(j.records) {
		return Modification{}, false
	}
	return j.records[i], true
}

// Records returns a copy of every record, including the redo branch.
func (j *Journal) Records() []Modification {
	return slices.Clone(j.records)
}

// Active returns a copy of the records up to and including the cursor.
func (j *Journal) Active() []Modification {
	return slices.Clone(j.records[:j.cursor+1])
}

// Reset empties the journal and returns it to the baseline.
func (j *Journal) Reset() {
	j.records = nil
	j.cursor = -1
}
