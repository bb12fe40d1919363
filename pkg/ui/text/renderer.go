// Package text renders command results as human readable text. The same
// layout serves plain and terminal output; only the Styler differs.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/matrix/pkg/commands"
	"github.com/arthur-debert/matrix/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

// Renderer writes text output.
type Renderer struct {
	w     io.Writer
	style Styler
}

// New creates a text renderer writing to w.
func New(w io.Writer, style Styler) *Renderer {
	return &Renderer{w: w, style: style}
}

// RenderResult lays out the known result types. Anything else is printed
// with %v.
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		b.WriteString(v)
		b.WriteString("\n")
	case *types.ReconcileReport:
		r.writeReport(&b, v)
	case *commands.ReconcileResult:
		r.writeReconcile(&b, v)
	case []*commands.ReconcileResult:
		if len(v) == 0 {
			b.WriteString(r.style.Muted("No matrices to reconcile.") + "\n")
		}
		for i, res := range v {
			if i > 0 {
				b.WriteString("\n")
			}
			r.writeReconcile(&b, res)
		}
	case *commands.CreateMatrixResult:
		fmt.Fprintf(&b, "%s %s\n", r.style.Success("Created matrix"), v.Matrix.Name)
		r.writeMatrix(&b, v.Matrix)
		r.writeWarnings(&b, v.Warnings)
	case *commands.RenameMatrixResult:
		fmt.Fprintf(&b, "%s %s to %s\n", r.style.Success("Renamed"), v.PreviousName, v.Matrix.Name)
		r.writeMatrix(&b, v.Matrix)
		r.writeWarnings(&b, v.Warnings)
	case types.Matrix:
		r.writeMatrix(&b, v)
	case []types.Matrix:
		r.writeMatrices(&b, v)
	case types.Source:
		r.writeSource(&b, v)
	case []types.Source:
		r.writeSources(&b, v)
	case *commands.AssociationResult:
		r.writeAssociation(&b, v)
	case *commands.ManifestResult:
		b.WriteString(v.Content)
		if !strings.HasSuffix(v.Content, "\n") {
			b.WriteString("\n")
		}
	default:
		fmt.Fprintf(&b, "%v\n", v)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderError writes err on its own line.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintln(r.w, r.style.Error(err.Error()))
	return werr
}

// RenderMessage writes msg followed by a newline.
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

func (r *Renderer) writeReconcile(b *strings.Builder, res *commands.ReconcileResult) {
	fmt.Fprintf(b, "%s %s\n", r.style.Heading("Matrix"), res.Matrix.Name)
	r.writeReport(b, res.Report)
}

func (r *Renderer) writeReport(b *strings.Builder, report *types.ReconcileReport) {
	if report == nil {
		return
	}
	if report.WorkspaceRecreated {
		b.WriteString("  " + r.style.Success("workspace recreated") + "\n")
	}
	if report.MatrixMDRecreated {
		b.WriteString("  " + r.style.Success("manifest recreated") + "\n")
	}

	width := 0
	for _, res := range report.SourcesReconciled {
		width = max(width, len(res.SourceName))
	}
	for _, res := range report.SourcesReconciled {
		fmt.Fprintf(b, "  %s %-*s  %s\n", r.style.Status(res.Status), width, res.SourceName, r.style.Muted(res.Action))
	}
	for _, id := range report.OrphanedSourceIDs {
		b.WriteString("  " + r.style.Warning("orphaned source "+id) + "\n")
	}

	counts := report.Counts()
	summary := fmt.Sprintf("%d ok, %d repaired, %d skipped, %d errors",
		counts[types.SourceStatusOK], counts[types.SourceStatusRepaired],
		counts[types.SourceStatusSkipped], counts[types.SourceStatusError])
	if report.HasRepairs() {
		summary += ", repairs made"
	}
	b.WriteString("  " + r.style.Label(summary) + "\n")
}

func (r *Renderer) writeMatrix(b *strings.Builder, m types.Matrix) {
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Name:     "), m.Name)
	fmt.Fprintf(b, "%s %s\n", r.style.Label("ID:       "), m.ID)
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Workspace:"), m.WorkspacePath)
	fmt.Fprintf(b, "%s %d\n", r.style.Label("Sources:  "), len(m.SourceIDs))
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Updated:  "), m.UpdatedAt.Format(timeLayout))
}

func (r *Renderer) writeMatrices(b *strings.Builder, ms []types.Matrix) {
	if len(ms) == 0 {
		b.WriteString(r.style.Muted("No matrices.") + "\n")
		return
	}
	width := 0
	for _, m := range ms {
		width = max(width, len(m.Name))
	}
	for _, m := range ms {
		fmt.Fprintf(b, "%-*s  %s  %s\n", width, m.Name,
			r.style.Muted(shortID(m.ID)),
			r.style.Muted(fmt.Sprintf("%d sources", len(m.SourceIDs))))
	}
}

func (r *Renderer) writeSource(b *strings.Builder, s types.Source) {
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Name:"), s.Name)
	fmt.Fprintf(b, "%s %s\n", r.style.Label("ID:  "), s.ID)
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Type:"), s.SourceType)
	fmt.Fprintf(b, "%s %s\n", r.style.Label("Path:"), s.Path)
	if s.URL != "" {
		fmt.Fprintf(b, "%s %s\n", r.style.Label("URL: "), s.URL)
	}
}

func (r *Renderer) writeSources(b *strings.Builder, ss []types.Source) {
	if len(ss) == 0 {
		b.WriteString(r.style.Muted("No sources.") + "\n")
		return
	}
	width := 0
	for _, s := range ss {
		width = max(width, len(s.Name))
	}
	for _, s := range ss {
		fmt.Fprintf(b, "%-*s  %s  %-6s  %s\n", width, s.Name,
			r.style.Muted(s.ShortID()), s.SourceType, s.Path)
	}
}

func (r *Renderer) writeAssociation(b *strings.Builder, res *commands.AssociationResult) {
	switch {
	case !res.Changed && res.Matrix.HasSource(res.Source.ID):
		fmt.Fprintf(b, "%s is already in %s\n", res.Source.Name, res.Matrix.Name)
	case !res.Changed:
		fmt.Fprintf(b, "%s is not in %s\n", res.Source.Name, res.Matrix.Name)
	case res.Matrix.HasSource(res.Source.ID):
		fmt.Fprintf(b, "%s %s to %s\n", r.style.Success("Added"), res.Source.Name, res.Matrix.Name)
	default:
		fmt.Fprintf(b, "%s %s from %s\n", r.style.Success("Removed"), res.Source.Name, res.Matrix.Name)
	}
	if res.LinkPath != "" {
		fmt.Fprintf(b, "%s %s\n", r.style.Label("Link:"), res.LinkPath)
	}
	r.writeWarnings(b, res.Warnings)
}

func (r *Renderer) writeWarnings(b *strings.Builder, warnings []string) {
	for _, w := range warnings {
		b.WriteString(r.style.Warning(w) + "\n")
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
