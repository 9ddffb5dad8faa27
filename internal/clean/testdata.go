package clean

import (
	"strings"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// TestDataMarkers are the substrings that classify an entry as synthetic.
// テスト and test cover entries typed during manual testing in either
// language; Bolt is the scaffolding-tool artifact marker.
var TestDataMarkers = []string{"テスト", "test", "Bolt"}

// IsTestData reports whether the entry's event or realization contains any
// marker. Matching is case-sensitive, mirroring what the local collection
// historically stored.
func IsTestData(r schema.RawRecord) bool {
	for _, marker := range TestDataMarkers {
		if strings.Contains(r.Event(), marker) || strings.Contains(r.Realization(), marker) {
			return true
		}
	}
	return false
}

// FilterTestData returns the subsequence of entries that are not test
// data, plus the number removed.
func FilterTestData(entries []schema.RawRecord) ([]schema.RawRecord, int) {
	real := make([]schema.RawRecord, 0, len(entries))
	for _, entry := range entries {
		if IsTestData(entry) {
			continue
		}
		real = append(real, entry)
	}
	return real, len(entries) - len(real)
}
