package quiz

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// ErrNotFound reports that a quiz id does not resolve in the catalog.
var ErrNotFound = errors.New("quiz not found")

//go:embed data/*.json
var builtinFS embed.FS

// Catalog is a static, in-memory set of quizzes keyed by id.
type Catalog struct {
	quizzes []Quiz
	byID    map[string]int
}

// NewCatalog builds a catalog, rejecting duplicate quiz ids.
func NewCatalog(quizzes ...Quiz) (*Catalog, error) {
	catalog := &Catalog{byID: map[string]int{}}
	for _, q := range quizzes {
		if err := catalog.add(q); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (c *Catalog) add(q Quiz) error {
	if _, exists := c.byID[q.ID]; exists {
		return fmt.Errorf("duplicate quiz id %q", q.ID)
	}
	c.byID[q.ID] = len(c.quizzes)
	c.quizzes = append(c.quizzes, q)
	return nil
}

// Get returns the quiz with the given id.
func (c *Catalog) Get(id string) (Quiz, bool) {
	if c == nil {
		return Quiz{}, false
	}
	index, ok := c.byID[id]
	if !ok {
		return Quiz{}, false
	}
	return c.quizzes[index], true
}

// List returns all quizzes in insertion order.
func (c *Catalog) List() []Quiz {
	if c == nil {
		return nil
	}
	out := make([]Quiz, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}

// Builtin returns the quizzes embedded in the binary.
func Builtin() ([]Quiz, error) {
	names, err := fs.Glob(builtinFS, "data/*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	quizzes := make([]Quiz, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read builtin quiz: %w", err)
		}
		parsed, err := Parse(data, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		normalized, err := Normalize(parsed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		quizzes = append(quizzes, normalized)
	}
	return quizzes, nil
}

// LoadCatalog builds a catalog from the builtin quizzes plus every quiz file
// found in dirs.
func LoadCatalog(dirs ...string) (*Catalog, error) {
	quizzes, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		loaded, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, loaded...)
	}
	return NewCatalog(quizzes...)
}
