package transform

import (
	"strings"

	"github.com/catalogetl/catalogetl/internal/catalog"
	"github.com/catalogetl/catalogetl/internal/model"
)

// Transformer turns input lines into output lines, one row at a time.
type Transformer interface {
	// Format returns the transform name used on the command line.
	Format() string
	// Header returns the fixed output header. When it is empty no header is
	// written and the first input line is processed as data.
	Header() string
	// Process transforms one non-blank data line.
	Process(line string) model.RowResult
}

// Registry holds named transformers.
type Registry struct {
	transformers map[string]Transformer
}

// NewRegistry creates an empty transformer registry.
func NewRegistry() *Registry {
	return &Registry{transformers: make(map[string]Transformer)}
}

// Register adds a transformer. Panics on duplicate format.
func (r *Registry) Register(t Transformer) {
	key := strings.ToLower(t.Format())
	if _, ok := r.transformers[key]; ok {
		panic("duplicate transform format: " + key)
	}
	r.transformers[key] = t
}

// Get returns the transformer for format, or nil.
func (r *Registry) Get(format string) Transformer {
	return r.transformers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in transformers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&catalog.Pipeline{})
	r.Register(&Trim{})
	return r
}

// Trim copies lines through with surrounding whitespace removed. It has no
// header of its own, so the input header is trimmed and copied like any line.
type Trim struct{}

// Format returns the transform name.
func (t *Trim) Format() string { return "clean" }

// Header returns "".
func (t *Trim) Header() string { return "" }

// Process returns the trimmed line.
func (t *Trim) Process(line string) model.RowResult {
	return model.Transformed(strings.TrimSpace(line))
}
