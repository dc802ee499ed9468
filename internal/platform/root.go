package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPayloadNotFound is returned when no session payload can be located.
var ErrPayloadNotFound = errors.New("session payload not found")

// PayloadNames are the file names recognised as a project's session payload, in
// order of preference.
var PayloadNames = []string{
	"idr.json", "idr.yaml", "idr.yml",
	filepath.Join(".idr", "session.json"),
	filepath.Join(".idr", "session.yaml"),
	filepath.Join(".idr", "session.yml"),
}

// FindPayload resolves the payload for start. A regular file is returned as is.
// A directory is searched, and then its parents, for one of PayloadNames.
func FindPayload(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.Mode().IsRegular() {
		return abs, nil
	}

	dir := abs
	for {
		for _, name := range PayloadNames {
			if isFile(filepath.Join(dir, name)) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w above %s", ErrPayloadNotFound, abs)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
