package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/canvasgen/internal/engine"
	"github.com/alexisbeaulieu97/canvasgen/internal/infrastructure/memdoc"
	"github.com/alexisbeaulieu97/canvasgen/internal/perf"
)

var (
	colorAccent = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	failureStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	textStyle    = lipgloss.NewStyle().Italic(true)
	branchStyle  = lipgloss.NewStyle().Foreground(colorDim).MarginRight(1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
)

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// swatch renders a two-cell block painted with hex followed by the value.
func swatch(hex string) string {
	block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	return block + " " + dimStyle.Render(hex)
}

func nodeTree(s memdoc.NodeSnapshot) *ltree.Tree {
	t := ltree.Root(nodeLabel(s)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)
	for _, child := range s.Children {
		if len(child.Children) == 0 {
			t.Child(nodeLabel(child))
			continue
		}
		t.Child(nodeTree(child))
	}
	return t
}

func nodeLabel(s memdoc.NodeSnapshot) string {
	parts := []string{titleStyle.Render(s.Name), dimStyle.Render(fmt.Sprintf("%s %s", s.Type, s.ID))}
	if s.Characters != "" {
		parts = append(parts, textStyle.Render(fmt.Sprintf("%q", s.Characters)))
	}
	if s.Fill != "" {
		parts = append(parts, swatch(s.Fill))
	}
	if s.MainComponentID != "" {
		parts = append(parts, dimStyle.Render("→ "+s.MainComponentID))
	}
	if len(s.Variant) > 0 {
		parts = append(parts, dimStyle.Render(formatVariant(s.Variant)))
	}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("%gx%g", s.Width, s.Height)))
	if !s.Visible {
		parts = append(parts, warningStyle.Render("hidden"))
	}
	return strings.Join(parts, " ")
}

func formatVariant(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func printDiagnostics(w io.Writer, diagnostics []engine.Diagnostic) {
	if len(diagnostics) == 0 {
		fmt.Fprintln(w, successStyle.Render(iconSuccess)+" no diagnostics")
		return
	}
	fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Diagnostics (%d)", len(diagnostics))))
	for _, d := range diagnostics {
		icon := warningStyle.Render(iconWarning)
		if d.Kind == engine.KindCatastrophic {
			icon = failureStyle.Render(iconError)
		}
		fmt.Fprintf(w, "%s %s %s %s\n", icon, dimStyle.Render(string(d.Kind)), d.Path, d.Message)
	}
}

func printPerf(w io.Writer, report map[string]perf.Stats) {
	if len(report) == 0 {
		return
	}
	labels := make([]string, 0, len(report))
	for label := range report {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintln(w, sectionStyle.Render("Performance"))
	for _, label := range labels {
		s := report[label]
		fmt.Fprintf(w, "  %-24s %s\n", label, dimStyle.Render(fmt.Sprintf("n=%d avg=%s min=%s max=%s", s.Count, s.Avg, s.Min, s.Max)))
	}
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, warningStyle.Render(iconWarning)+" "+warningStyle.Render(msg))
}
