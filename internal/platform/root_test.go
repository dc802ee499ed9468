package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindPayload(t *testing.T) {
	// base/
	//   project/ (.idr/session.yaml)
	//     subdir/
	//       nested/
	//   loose/ (idr.json)
	//   explicit.json
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	looseDir := filepath.Join(baseDir, "loose")

	for _, d := range []string{nestedDir, looseDir, filepath.Join(projectDir, ".idr")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	projectPayload := filepath.Join(projectDir, ".idr", "session.yaml")
	loosePayload := filepath.Join(looseDir, "idr.json")
	explicit := filepath.Join(baseDir, "explicit.json")
	for _, f := range []string{projectPayload, loosePayload, explicit} {
		if err := os.WriteFile(f, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name      string
		startPath string
		want      string
	}{
		{"Explicit File", explicit, explicit},
		{"Project Root", projectDir, projectPayload},
		{"Nested Dir", nestedDir, projectPayload},
		{"Top Level File Wins", looseDir, loosePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindPayload(tt.startPath)
			if err != nil {
				t.Fatalf("FindPayload() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindPayload() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("Missing Path", func(t *testing.T) {
		if _, err := FindPayload(filepath.Join(baseDir, "nope")); err == nil {
			t.Error("expected error for missing path")
		}
	})
}
