package export

import (
	"encoding/json"
	"io"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// JSONExporter exports the collection as pretty-printed JSON.
type JSONExporter struct{}

// Export writes the entries to w as a JSON array.
func (e *JSONExporter) Export(entries []schema.RawRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(entries)
}

// Extension returns the file extension for this format.
func (e *JSONExporter) Extension() string {
	return "json"
}
