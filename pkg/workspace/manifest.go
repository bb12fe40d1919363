package workspace

import (
	"bytes"
	"time"

	"github.com/arthur-debert/matrix/pkg/types"
	md "github.com/nao1215/markdown"
)

// DefaultManifestName is the manifest file written at the workspace root.
const DefaultManifestName = "MATRIX.md"

const timestampLayout = "2006-01-02 15:04:05"

var relationshipPrompts = []string{
	"Dependencies between repositories",
	"Shared interfaces or contracts",
	"Integration points",
	"Communication patterns",
}

// RenderManifest renders the manifest for matrix and sources. The output
// depends only on its arguments.
func RenderManifest(matrix types.Matrix, sources []types.Source) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(matrix.Name).
		PlainText("").
		PlainTextf("%s: %s", md.Bold("Created"), formatTimestamp(matrix.CreatedAt)).
		PlainTextf("%s: %s", md.Bold("Last Updated"), formatTimestamp(matrix.UpdatedAt)).
		PlainTextf("%s: %s", md.Bold("Matrix ID"), md.Code(matrix.ID)).
		PlainText("").
		H2("Overview").
		PlainText("").
		PlainText("This is a Matrix workspace for organizing and coordinating work across multiple repositories.").
		PlainText("").
		H2("Sources").
		PlainText("")

	if len(sources) == 0 {
		doc.PlainText(md.Italic("No sources added yet."))
	}
	for i, source := range sources {
		if i > 0 {
			doc.PlainText("")
		}
		doc.H3(source.Name).
			PlainTextf("- %s: %s", md.Bold("Path"), md.Code(source.Path))
		if source.URL != "" {
			doc.PlainTextf("- %s: %s", md.Bold("URL"), source.URL)
		}
		doc.PlainTextf("- %s: %s", md.Bold("Source ID"), md.Code(source.ID))
	}

	doc.PlainText("").
		H2("Source Relationships").
		PlainText("")
	if len(sources) == 0 {
		doc.PlainText(md.Italic("Define relationships between sources here."))
	} else {
		doc.PlainText(md.Italic("Document how these sources relate to each other:")).
			PlainText("").
			BulletList(relationshipPrompts...)
	}

	// Build only fails when the writer does; bytes.Buffer never does.
	_ = doc.Build()

	out := bytes.TrimRight(buf.Bytes(), "\r\n ")
	return string(out) + "\n"
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + " UTC"
}
