package export

import (
	"fmt"
	"io"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// MarkdownExporter exports the collection as a readable Markdown journal.
type MarkdownExporter struct{}

// Export writes one Markdown section per entry in stored order.
func (e *MarkdownExporter) Export(entries []schema.RawRecord, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Journal\n\n")
	_, _ = fmt.Fprintf(w, "**Entries:** %d\n\n", len(entries))

	for i, entry := range entries {
		_, _ = fmt.Fprintf(w, "## %s — %s\n\n", entry.Date(), entry.Emotion())

		if event := entry.Event(); event != "" {
			_, _ = fmt.Fprintf(w, "**Event:** %s\n\n", event)
		}
		if realization := entry.Realization(); realization != "" {
			_, _ = fmt.Fprintf(w, "**Realization:** %s\n\n", realization)
		}

		if i < len(entries)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format.
func (e *MarkdownExporter) Extension() string {
	return "md"
}
