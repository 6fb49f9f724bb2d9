package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads, parses, and normalizes a quiz content file.
func LoadFile(path string) (Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("read quiz: %w", err)
	}
	parsed, err := Parse(data, path)
	if err != nil {
		return Quiz{}, err
	}
	return Normalize(parsed)
}

// LoadDir loads every quiz file in dir, ordered by file name.
func LoadDir(dir string) ([]Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read quiz dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsQuizFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	quizzes := make([]Quiz, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		quizzes = append(quizzes, loaded)
	}
	return quizzes, nil
}

// IsQuizFile reports whether a file name has a supported quiz extension.
func IsQuizFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// Parse decodes quiz content as JSON or YAML depending on the path extension.
func Parse(data []byte, path string) (Quiz, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (Quiz, error) {
	var parsed Quiz
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&parsed); err != nil {
		return Quiz{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Quiz{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Quiz{}, fmt.Errorf("parse json: %w", err)
	}
	return parsed, nil
}

func parseYAML(data []byte) (Quiz, error) {
	var parsed Quiz
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return Quiz{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Quiz{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Quiz{}, fmt.Errorf("parse yaml: %w", err)
	}
	return parsed, nil
}
