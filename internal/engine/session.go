// Package engine walks a declarative tree and drives the host document to
// build the matching node tree, filling component instances from the scan
// inventory and schema registry.
package engine

import (
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
)

// Perf labels recorded by the generator.
const (
	LabelGenerate       = "generate-ui"
	LabelApplyVariants  = "apply-variants"
	LabelFindTextNodes  = "find-text-nodes"
	LabelSetTextValue   = "set-text-value"
	LabelFindMediaNodes = "find-media-nodes"
)

// Options tunes generation defaults.
type Options struct {
	FallbackFont      ports.FontName
	BoldFont          ports.FontName
	FrameWidth        float64
	FrameHeight       float64
	MinTypeConfidence float64
}

// DefaultOptions returns the defaults used when a session leaves options unset.
func DefaultOptions() Options {
	return Options{
		FallbackFont:      ports.FontName{Family: "Inter", Style: "Regular"},
		BoldFont:          ports.FontName{Family: "Inter", Style: "Bold"},
		FrameWidth:        800,
		FrameHeight:       600,
		MinTypeConfidence: inventory.DefaultMinConfidence,
	}
}

// Session carries the read-only state shared by every generation call. It is
// built once and must not be mutated while generators use it.
type Session struct {
	Registry *schema.Registry
	Colors   *resolve.ColorResolver
	Catalog  *inventory.Catalog
	Tracker  *perf.Tracker
	Logger   ports.Logger
	Options  Options
}

func (s *Session) options() Options {
	defaults := DefaultOptions()
	if s == nil {
		return defaults
	}
	opts := s.Options
	if opts.FallbackFont.Family == "" {
		opts.FallbackFont = defaults.FallbackFont
	}
	if opts.BoldFont.Family == "" {
		opts.BoldFont = defaults.BoldFont
	}
	if opts.FrameWidth <= 0 {
		opts.FrameWidth = defaults.FrameWidth
	}
	if opts.FrameHeight <= 0 {
		opts.FrameHeight = defaults.FrameHeight
	}
	if opts.MinTypeConfidence <= 0 {
		opts.MinTypeConfidence = defaults.MinTypeConfidence
	}
	return opts
}

func (s *Session) logger() ports.Logger {
	if s == nil || s.Logger == nil {
		return logging.NewNoOpLogger()
	}
	return s.Logger
}

func (s *Session) schemaFor(ids ...string) *schema.ComponentSchema {
	if s == nil || s.Registry == nil {
		return nil
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if found, ok := s.Registry.Get(id); ok {
			return found
		}
	}
	return nil
}
