package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// DiagnosticKind classifies a generation diagnostic.
type DiagnosticKind string

const (
	KindUnresolvedReference DiagnosticKind = "unresolved-reference"
	KindSchemaMismatch      DiagnosticKind = "schema-mismatch"
	KindHostMutation        DiagnosticKind = "host-mutation"
	KindFont                DiagnosticKind = "font"
	KindAdvisory            DiagnosticKind = "advisory"
	KindCatastrophic        DiagnosticKind = "catastrophic"
)

// Diagnostic records a recoverable problem met during generation. Path
// locates the declarative node, e.g. "root.items[2]".
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Path    string         `json:"path"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Path, d.Message)
}

// Result is the outcome of one generation call. Root is always set unless
// even the error fallback could not be built.
type Result struct {
	Root        ports.Node
	Diagnostics []Diagnostic
	Err         error
}

// Count returns the number of diagnostics of kind.
func (r *Result) Count(kind DiagnosticKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// run holds the per-call state of one generation.
type run struct {
	g     *Generator
	opts  Options
	log   ports.Logger
	diags []Diagnostic
	// root is the frame created on a page, kept so a failed run can remove it.
	root ports.Node
}

func (r *run) diagnose(ctx context.Context, kind DiagnosticKind, path, format string, args ...interface{}) {
	d := Diagnostic{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
	r.diags = append(r.diags, d)
	r.log.Warn(ctx, d.Message, "kind", string(kind), "node_path", path)
}

// mutate applies one host mutation and turns a failure into a diagnostic.
// It reports whether the mutation succeeded.
func (r *run) mutate(ctx context.Context, path, what string, fn func() error) bool {
	if err := fn(); err != nil {
		r.diagnose(ctx, kindOf(err), path, "%s: %v", what, err)
		return false
	}
	return true
}

func kindOf(err error) DiagnosticKind {
	var fontErr *canvaserrors.FontError
	var refErr *canvaserrors.ReferenceError
	switch {
	case errors.As(err, &fontErr):
		return KindFont
	case errors.As(err, &refErr):
		return KindUnresolvedReference
	default:
		return KindHostMutation
	}
}
