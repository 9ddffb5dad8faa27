package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

func sampleEntries() []schema.RawRecord {
	return []schema.RawRecord{
		{"id": "d-1", "date": "2024-03-01", "emotion": "joy", "event": "a good day", "realization": "rest helps"},
		{"id": "d-2", "date": "2024-03-02", "emotion": "fear", "event": "a hard day"},
	}
}

func TestNewExporter(t *testing.T) {
	for _, format := range []string{"json", "yaml", "yml", "md", "markdown"} {
		if _, err := NewExporter(format); err != nil {
			t.Errorf("NewExporter(%q) failed: %v", format, err)
		}
	}
	if _, err := NewExporter("xml"); err == nil {
		t.Error("unsupported format should be rejected")
	}
}

func TestJSONExport_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleEntries(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded []schema.RawRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID() != "d-1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleEntries(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "emotion: joy") {
		t.Errorf("yaml output missing emotion field:\n%s", out)
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleEntries(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"**Entries:** 2", "## 2024-03-01", "**Realization:** rest helps", "## 2024-03-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**Realization:**\n\n## 2024-03-02") {
		t.Error("absent realization should be omitted, not rendered empty")
	}
}
