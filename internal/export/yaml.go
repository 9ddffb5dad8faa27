package export

import (
	"io"

	"github.com/jinjinsansan/kanjou/internal/schema"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports the collection in YAML format.
type YAMLExporter struct{}

// Export writes the entries to w as a YAML document.
func (e *YAMLExporter) Export(entries []schema.RawRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(entries)
}

// Extension returns the file extension for this format.
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
