// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from directories of plain-text files, the
// layout used by container secrets mounts. Each file is one secret: the
// filename is the key and the trimmed contents are the value.
//
// Recognised keys: mongodb-uri.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirs are searched in order; earlier directories win on duplicate keys.
var DefaultDirs = []string{".secrets/", "/run/secrets/"}

// Load reads every file in each of dirs and returns a map of filename to
// trimmed contents. Missing directories are skipped. Unreadable files produce
// a warning on w and are skipped. Empty files and dotfiles are ignored.
func Load(w io.Writer, dirs ...string) (map[string]string, error) {
	if w == nil {
		w = io.Discard
	}
	secrets := make(map[string]string)
	for _, dir := range dirs {
		if err := loadDir(w, dir, secrets); err != nil {
			return nil, err
		}
	}
	return secrets, nil
}

func loadDir(w io.Writer, dir string, into map[string]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, seen := into[name]; seen {
			continue
		}

		value, err := readValue(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if value != "" {
			into[name] = value
		}
	}
	return nil
}

// FromFileEnv resolves the NAME_FILE convention of database images: when
// the environment variable env+"_FILE" names a file, its trimmed contents are
// returned. ok is false when the variable is unset.
func FromFileEnv(env string) (value string, ok bool, err error) {
	path := os.Getenv(env + "_FILE")
	if path == "" {
		return "", false, nil
	}
	value, err = readValue(path)
	if err != nil {
		return "", true, fmt.Errorf("reading %s_FILE: %w", env, err)
	}
	return value, true, nil
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
