package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

// ErrUnknownAssessment is returned when an assessment ID is not registered.
var ErrUnknownAssessment = errors.New("unknown assessment")

//go:embed assessments/*.yaml
var builtinFS embed.FS

var (
	builtinOnce sync.Once
	builtin     []*Assessment
	builtinErr  error
)

// Registry indexes assessments by ID, preserving registration order.
type Registry struct {
	byID  map[string]*Assessment
	order []string
}

// NewRegistry builds a registry. Later assessments replace earlier ones
// with the same ID in place.
func NewRegistry(list ...*Assessment) *Registry {
	r := &Registry{byID: make(map[string]*Assessment, len(list))}
	for _, a := range list {
		r.Put(a)
	}
	return r
}

// Put registers a, replacing any assessment with the same ID.
func (r *Registry) Put(a *Assessment) {
	if _, ok := r.byID[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.byID[a.ID] = a
}

// ByID returns the assessment registered under id.
func (r *Registry) ByID(id string) (*Assessment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssessment, id)
	}
	return a, nil
}

// All returns every assessment in registration order.
func (r *Registry) All() []*Assessment {
	out := make([]*Assessment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns every registered ID in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered assessments.
func (r *Registry) Len() int {
	return len(r.order)
}

// Builtin returns the assessments compiled into the binary, sorted by ID.
func Builtin() ([]*Assessment, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = loadFS(builtinFS, "assessments/*.yaml")
	})
	return builtin, builtinErr
}

// Open returns a registry of the built-in assessments, overridden or
// extended by the catalogs in dir when dir is non-empty.
func Open(dir string) (*Registry, error) {
	list, err := Builtin()
	if err != nil {
		return nil, err
	}
	r := NewRegistry(list...)
	if dir == "" {
		return r, nil
	}
	extra, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, a := range extra {
		r.Put(a)
	}
	return r, nil
}

func loadFS(fsys fs.FS, pattern string) ([]*Assessment, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	out := make([]*Assessment, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		a, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
