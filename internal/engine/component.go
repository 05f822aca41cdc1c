package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/canvasgen/internal/match"
	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	"github.com/alexisbeaulieu97/canvasgen/internal/props"
	"github.com/alexisbeaulieu97/canvasgen/internal/schema"
	"github.com/alexisbeaulieu97/canvasgen/internal/tree"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// createInstance places an instance of the referenced component and fills
// its variants, text and media slots.
func (r *run) createInstance(ctx context.Context, parent ports.Node, item *tree.Node, path string) error {
	spec := item.Component
	if spec == nil {
		r.diagnose(ctx, KindAdvisory, path, "component reference without payload skipped")
		return nil
	}

	id, ok := r.componentID(spec)
	if !ok {
		r.diagnose(ctx, KindUnresolvedReference, path, "no component found for type %q", spec.ComponentType)
		return nil
	}
	comp, err := r.g.doc.Component(ctx, id)
	if err != nil {
		var refErr *canvaserrors.ReferenceError
		if errors.As(err, &refErr) {
			r.diagnose(ctx, KindUnresolvedReference, path, "component %s not found; skipped", id)
			return nil
		}
		return err
	}
	master := comp
	if comp.IsSet() {
		def, ok := comp.DefaultVariant()
		if !ok {
			r.diagnose(ctx, KindUnresolvedReference, path, "component set %s has no default variant; skipped", id)
			return nil
		}
		master = def
	}

	inst, err := master.Instantiate(ctx)
	if err != nil {
		return err
	}
	if err := attach(parent, inst); err != nil {
		return err
	}

	s := r.g.session.schemaFor(id, inst.MainComponentID())
	sep := props.Separate(componentProperties(spec), id)
	sep.Content = props.Sanitize(sep.Content)
	resolved, warnings := props.Partition(sep, s)
	for _, w := range warnings {
		r.diagnose(ctx, KindSchemaMismatch, path, "%s", w)
	}

	if len(resolved.Variants) > 0 {
		_ = r.g.track(LabelApplyVariants, func() error {
			r.applyVariants(ctx, inst, resolved.Variants, path)
			return nil
		})
	}
	r.applyVisibility(ctx, inst, spec.VisibilityOverrides, path)
	r.applyChildLayout(ctx, inst, parent, tree.DecodeLayout(sep.Content), path)

	_ = r.g.track(LabelFindTextNodes, func() error {
		r.applyTextProperties(ctx, inst, resolved.Text, s, path)
		return nil
	})
	_ = r.g.track(LabelFindMediaNodes, func() error {
		r.adviseMedia(ctx, inst, resolved.Media, path)
		return nil
	})
	for _, target := range sortedKeys(spec.IconSwaps) {
		r.diagnose(ctx, KindAdvisory, path, "icon swap %s -> %q is not applied", target, spec.IconSwaps[target])
	}
	return nil
}

// componentID picks the identifier to instantiate: the explicit one unless
// it is a placeholder, else the scan inventory's best match for the type.
func (r *run) componentID(spec *tree.ComponentSpec) (string, bool) {
	if spec.ComponentID != "" && !tree.IsPlaceholderID(spec.ComponentID) {
		return spec.ComponentID, true
	}
	if r.g.session == nil {
		return "", false
	}
	return r.g.session.Catalog.ComponentIDByType(spec.ComponentType, r.opts.MinTypeConfidence)
}

func componentProperties(spec *tree.ComponentSpec) map[string]interface{} {
	out := make(map[string]interface{}, len(spec.Properties)+1)
	for k, v := range spec.Properties {
		out[k] = v
	}
	if len(spec.Variants) > 0 {
		variants := make(map[string]interface{}, len(spec.Variants))
		if nested, ok := out[props.VariantsKey].(map[string]interface{}); ok {
			for k, v := range nested {
				variants[k] = v
			}
		}
		for k, v := range spec.Variants {
			variants[k] = v
		}
		out[props.VariantsKey] = variants
	}
	return out
}

func (r *run) applyVariants(ctx context.Context, inst ports.InstanceNode, requested map[string]interface{}, path string) {
	result := match.Variants(inst.VariantAxes(), requested)
	for _, rejection := range result.Rejected {
		r.diagnose(ctx, KindSchemaMismatch, path, "variant %s", rejection)
	}
	if len(result.Accepted) == 0 {
		r.log.Debug(ctx, "no valid variants; keeping default", "node_path", path)
		return
	}
	r.mutate(ctx, path, "set variant properties", func() error {
		return inst.SetVariantProperties(result.Accepted)
	})
}

func (r *run) applyVisibility(ctx context.Context, inst ports.InstanceNode, overrides map[string]bool, path string) {
	for _, id := range sortedKeys(overrides) {
		target, ok := findLayer(inst, id)
		if !ok {
			r.diagnose(ctx, KindUnresolvedReference, path, "layer %s not found for visibility override", id)
			continue
		}
		r.set(ctx, target, path, ports.FieldVisible, overrides[id])
	}
}

func (r *run) applyTextProperties(ctx context.Context, inst ports.InstanceNode, text map[string]interface{}, s *schema.ComponentSchema, path string) {
	if len(text) == 0 {
		return
	}
	nodes := inst.FindAll(func(n ports.Node) bool { return n.Type() == ports.NodeTypeText })
	byID := make(map[string]ports.TextNode, len(nodes))
	candidates := match.Candidates{Nodes: make([]match.TextCandidate, 0, len(nodes))}
	for i, n := range nodes {
		textNode, ok := n.(ports.TextNode)
		if !ok {
			continue
		}
		source := ports.SourceNodeID(n.ID())
		rank, _ := s.RankOf(source)
		byID[n.ID()] = textNode
		candidates.Nodes = append(candidates.Nodes, match.TextCandidate{
			NodeID:   n.ID(),
			SourceID: source,
			Name:     n.Name(),
			Rank:     rank,
			Index:    i,
		})
	}
	candidates.Slots = match.SlotsFromSchema(s)
	if len(candidates.Slots) == 0 {
		for _, c := range candidates.Nodes {
			candidates.Slots = append(candidates.Slots, match.Slot{NodeID: c.NodeID, NodeName: c.Name, Rank: c.Rank})
		}
	}

	for _, key := range sortedKeys(text) {
		if props.IsLayoutKey(key) || key == "layoutPositioning" {
			continue
		}
		keyPath := fmt.Sprintf("%s.%s", path, key)
		if values, isList := text[key].([]interface{}); isList {
			layer, ok := s.TextLayer(key)
			if !ok {
				layer = schema.TextLayer{NodeName: key}
			}
			r.applyArrayText(ctx, key, values, layer, candidates, byID, keyPath)
			continue
		}

		value, ok := textValue(text[key])
		if !ok {
			continue
		}
		m := match.Text(key, candidates, s)
		if !m.Found() {
			r.diagnose(ctx, KindUnresolvedReference, keyPath, "no text layer found for %q", key)
			continue
		}
		r.log.Debug(ctx, "text slot matched", "node_path", keyPath, "method", string(m.Method), "node", m.Name)
		r.setText(ctx, byID[m.NodeID], value, keyPath)
	}
}

// applyArrayText spreads values over the nodes of an array slot in
// declaration order. Nodes past the last written value are hidden.
func (r *run) applyArrayText(ctx context.Context, key string, values []interface{}, layer schema.TextLayer, c match.Candidates, byID map[string]ports.TextNode, path string) {
	targets := match.ArrayTargets(key, c.Nodes, layer)
	if len(targets) == 0 {
		r.diagnose(ctx, KindUnresolvedReference, path, "no text layers found for array %q", key)
		return
	}
	maxItems := len(values)
	if layer.MaxItems > 0 && layer.MaxItems < maxItems {
		maxItems = layer.MaxItems
	}
	for i, target := range targets {
		node := byID[target.NodeID]
		if i >= maxItems {
			r.set(ctx, node, path, ports.FieldVisible, false)
			continue
		}
		if value, ok := textValue(values[i]); ok {
			r.setText(ctx, node, value, fmt.Sprintf("%s[%d]", path, i))
		}
	}
	if len(values) > len(targets) {
		r.diagnose(ctx, KindSchemaMismatch, path, "%d values for %d layers; extra values dropped", len(values), len(targets))
	}
}

// adviseMedia reports where each media property would land. Nothing is
// mutated.
func (r *run) adviseMedia(ctx context.Context, inst ports.InstanceNode, media map[string]interface{}, path string) {
	if len(media) == 0 {
		return
	}
	var candidates []match.MediaCandidate
	for _, n := range inst.FindAll(func(n ports.Node) bool {
		_, ok := match.MediaKindOf(n.Type())
		return ok
	}) {
		kind, _ := match.MediaKindOf(n.Type())
		candidates = append(candidates, match.MediaCandidate{NodeID: n.ID(), Name: n.Name(), Kind: kind})
	}
	buckets := match.ClassifyMedia(candidates)

	for _, key := range sortedKeys(media) {
		m := match.Media(key, candidates, buckets)
		if !m.Found() {
			r.diagnose(ctx, KindAdvisory, path, "media %q: %s", key, m.Reason)
			continue
		}
		r.diagnose(ctx, KindAdvisory, path, "media %q would apply to %q (%s)", key, m.Candidate.Name, m.Method)
	}
}

// findLayer finds a descendant by instance ID or by definition ID.
func findLayer(inst ports.Node, id string) (ports.Node, bool) {
	found := inst.FindAll(func(n ports.Node) bool {
		return n.ID() == id || ports.SourceNodeID(n.ID()) == id
	})
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
