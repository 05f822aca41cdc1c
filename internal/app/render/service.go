// Package render is the application entry point: it turns raw declarative
// JSON into host nodes using the configured inventory, schemas and colors.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/canvasgen/internal/config"
	"github.com/alexisbeaulieu97/canvasgen/internal/engine"
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/canvasgen/internal/inventory"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/resolve"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// Dependencies are the collaborators a Service is built from. Only Config
// is required in practice; the rest fall back to empty or no-op values.
type Dependencies struct {
	Config  *config.Config
	Storage ports.ClientStorage
	Logger  ports.Logger
	Tracker *perf.Tracker
	// Now is the clock used to decide schema staleness.
	Now func() time.Time
}

// Service coordinates parsing, normalization and generation.
type Service struct {
	cfg     *config.Config
	session *engine.Session
	stale   []string
	logger  ports.Logger
}

// RenderRequest asks for a new rendering. An empty ParentID targets the
// current page.
type RenderRequest struct {
	Input    []byte
	Source   string
	ParentID string
}

// ModifyRequest asks for the children of an existing frame to be replaced.
type ModifyRequest struct {
	Input    []byte
	Source   string
	TargetID string
}

// Outcome is everything a caller may want to report after a rendering.
type Outcome struct {
	Root         ports.Node
	Diagnostics  []engine.Diagnostic
	Perf         map[string]perf.Stats
	StaleSchemas []string
	Unresolved   []tree.Unresolved
}

// NewService loads scan records from storage, builds the schema registry and
// the color tables, and prepares the shared generation session.
func NewService(ctx context.Context, deps Dependencies) (*Service, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := deps.Logger
	if log == nil {
		log = logging.NewNoOpLogger()
	}
	log = log.With("layer", "application", "component", "render")
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	catalog, err := inventory.LoadCatalog(ctx, deps.Storage, cfg.Storage.ScanKey)
	if err != nil {
		return nil, fmt.Errorf("load scan results: %w", err)
	}
	registry, stale, err := schema.LoadRegistry(catalog.All(), now(), cfg.Render.SchemaMaxAge)
	if err != nil {
		return nil, fmt.Errorf("build schemas: %w", err)
	}
	tables, err := inventory.LoadTables(cfg.Inventory.Tokens, cfg.Inventory.ColorStyles)
	if err != nil {
		return nil, fmt.Errorf("load color tables: %w", err)
	}
	fallback, err := resolve.ParseHex(cfg.Render.FallbackColor)
	if err != nil {
		return nil, canvaserrors.NewValidationError("render.fallback_color", err.Error(), err)
	}

	for _, id := range stale {
		log.Warn(ctx, "schema is stale; rescan the component", "component_id", id)
	}
	log.Debug(ctx, "render service ready", "schemas", registry.Len(), "tokens", len(tables.Tokens))

	return &Service{
		cfg: cfg,
		session: &engine.Session{
			Registry: registry,
			Colors:   resolve.NewColorResolver(tables, fallback),
			Catalog:  catalog,
			Tracker:  deps.Tracker,
			Logger:   deps.Logger,
			Options: engine.Options{
				FallbackFont:      cfg.Render.FallbackFont,
				BoldFont:          cfg.Render.BoldFont,
				FrameWidth:        cfg.Render.Frame.Width,
				FrameHeight:       cfg.Render.Frame.Height,
				MinTypeConfidence: cfg.Render.MinTypeConfidence,
			},
		},
		stale:  stale,
		logger: log,
	}, nil
}

// Session exposes the shared generation session.
func (s *Service) Session() *engine.Session {
	return s.session
}

// StaleSchemas lists the components whose scan is older than the configured
// maximum age.
func (s *Service) StaleSchemas() []string {
	return append([]string(nil), s.stale...)
}

// Normalize parses input and returns its canonical form with placeholder
// component identifiers resolved where the inventory allows.
func (s *Service) Normalize(input []byte, source string) (interface{}, []tree.Unresolved, error) {
	raw, err := tree.ParseJSON(input, source)
	if err != nil {
		return nil, nil, err
	}
	normalized := tree.Normalize(raw, s.normalizeOptions())
	unresolved := tree.ResolveComponentIDs(normalized, s.lookup)
	return normalized, unresolved, nil
}

// Render generates req.Input into doc. The returned error is the generation
// failure, if any; the outcome is still populated in that case.
func (s *Service) Render(ctx context.Context, doc ports.Document, req RenderRequest) (*Outcome, error) {
	ctx = withCorrelation(ctx)
	decoded, unresolved, err := s.prepare(ctx, req.Input, req.Source)
	if err != nil {
		return nil, err
	}

	var parent ports.Node
	if req.ParentID != "" {
		parent, err = doc.NodeByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
	}
	s.preloadFonts(ctx, doc)

	res := engine.New(doc, s.session).Generate(ctx, decoded, parent)
	if res.Err != nil {
		s.logger.Error(ctx, "render failed", "error", res.Err.Error())
	} else {
		s.logger.Info(ctx, "render complete", "root", res.Root.ID(), "diagnostics", len(res.Diagnostics))
	}
	return s.outcome(res, unresolved), res.Err
}

// Modify regenerates the children of the frame req.TargetID.
func (s *Service) Modify(ctx context.Context, doc ports.Document, req ModifyRequest) (*Outcome, error) {
	ctx = withCorrelation(ctx)
	decoded, unresolved, err := s.prepare(ctx, req.Input, req.Source)
	if err != nil {
		return nil, err
	}
	s.preloadFonts(ctx, doc)

	res, err := engine.New(doc, s.session).ModifyResult(ctx, decoded, req.TargetID)
	if res == nil {
		return nil, err
	}
	return s.outcome(res, unresolved), err
}

func (s *Service) prepare(ctx context.Context, input []byte, source string) (*tree.Document, []tree.Unresolved, error) {
	normalized, unresolved, err := s.Normalize(input, source)
	if err != nil {
		s.logger.Error(ctx, "input rejected", "source", source, "error", err.Error())
		return nil, nil, err
	}
	for _, u := range unresolved {
		s.logger.Warn(ctx, "component identifier unresolved", "type", u.Type, "id", u.ID)
	}
	decoded, err := tree.Decode(normalized)
	if err != nil {
		return nil, nil, canvaserrors.NewParseError(sourceLabel(source), 0, err)
	}
	return decoded, unresolved, nil
}

// preloadFonts loads the configured fonts up front. A font the host cannot
// provide is logged and otherwise ignored.
func (s *Service) preloadFonts(ctx context.Context, doc ports.Document) {
	for _, font := range s.cfg.Render.PreloadFonts {
		if err := doc.LoadFont(ctx, font); err != nil {
			s.logger.Warn(ctx, "font preload failed", "font", font.String(), "error", err.Error())
		}
	}
}

func (s *Service) outcome(res *engine.Result, unresolved []tree.Unresolved) *Outcome {
	return &Outcome{
		Root:         res.Root,
		Diagnostics:  res.Diagnostics,
		Perf:         s.session.Tracker.Report(),
		StaleSchemas: s.StaleSchemas(),
		Unresolved:   unresolved,
	}
}

func (s *Service) lookup(componentType string) (string, bool) {
	return s.session.Catalog.ComponentIDByType(componentType, s.cfg.Render.MinTypeConfidence)
}

func (s *Service) normalizeOptions() tree.NormalizeOptions {
	if len(s.cfg.Render.RepeatableKinds) == 0 {
		return tree.DefaultNormalizeOptions()
	}
	return tree.NormalizeOptions{RepeatableKinds: append([]string(nil), s.cfg.Render.RepeatableKinds...)}
}

func withCorrelation(ctx context.Context) context.Context {
	if ports.GetCorrelationID(ctx) != "" {
		return ctx
	}
	return ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
}

func sourceLabel(source string) string {
	if source == "" {
		return "<input>"
	}
	return source
}
