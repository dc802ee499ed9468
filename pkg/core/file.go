package core

import (
	"fmt"
	"time"
)

// DelphiVersion is the compiler version the decompiler assumed for the binary.
type DelphiVersion string

const DelphiAuto DelphiVersion = "Auto"

// DelphiVersions lists the supported compiler versions.
var DelphiVersions = []DelphiVersion{
	DelphiAuto,
	"Delphi 2", "Delphi 3", "Delphi 4", "Delphi 5", "Delphi 6", "Delphi 7",
	"Delphi 2005", "Delphi 2006", "Delphi 2007", "Delphi 2009", "Delphi 2010",
	"Delphi XE1", "Delphi XE2", "Delphi XE3", "Delphi XE4",
}

// ParseDelphiVersion validates a version label. The empty string maps to Auto.
func ParseDelphiVersion(s string) (DelphiVersion, error) {
	if s == "" {
		return DelphiAuto, nil
	}
	for _, v := range DelphiVersions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unsupported delphi version %q", s)
}

// LoadedFile describes the executable a session was decompiled from.
type LoadedFile struct {
	Name          string        `json:"name" yaml:"name"`
	Path          string        `json:"path" yaml:"path"`
	Size          int64         `json:"size" yaml:"size"`
	DelphiVersion DelphiVersion `json:"delphiVersion" yaml:"delphiVersion"`
}

// RecentFile is an entry of the recently opened list.
type RecentFile struct {
	Name          string        `json:"name" yaml:"name"`
	Path          string        `json:"path" yaml:"path"`
	LastOpened    time.Time     `json:"lastOpened" yaml:"lastOpened"`
	DelphiVersion DelphiVersion `json:"delphiVersion,omitempty" yaml:"delphiVersion,omitempty"`
}

// DefaultRecentLimit caps the recent files list when no limit is configured.
const DefaultRecentLimit = 10

// pushRecent puts f first, drops older entries with the same path and truncates to limit.
func pushRecent(list []RecentFile, f RecentFile, limit int) []RecentFile {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := make([]RecentFile, 0, min(len(list)+1, limit))
	out = append(out, f)
	for _, r := range list {
		if len(out) == limit {
			break
		}
		if r.Path == f.Path {
			continue
		}
		out = append(out, r)
	}
	return out
}
