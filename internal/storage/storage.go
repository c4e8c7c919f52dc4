// Package storage provides atomic JSON file helpers for the files instab
// keeps under ~/.instab/.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the state directory in the user's home.
const DirName = ".instab"

// HomeDir returns ~/.instab. The directory is not created.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// writeFile is replaced in tests to simulate a failed write.
var writeFile = os.WriteFile

// WriteAtomic writes data to path through a temp file and a rename, so a
// failed write never leaves a truncated file behind. Parent directories are
// created.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := writeFile(tmp, data, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// SaveJSON atomically writes v as JSON indented by indent.
func SaveJSON(path string, v any, indent string) error {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data, 0o644)
}

// LoadJSON reads JSON from path into dest.
// Returns an error satisfying os.IsNotExist if the file doesn't exist.
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
