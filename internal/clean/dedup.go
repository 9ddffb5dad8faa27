// Package clean provides the batch cleanup classifiers for the local
// diary collection: duplicate elimination and test-data purging.
package clean

import (
	"fmt"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// eventPrefixLen is how much of the event text participates in the dedup
// key. Entries sharing date, emotion, and this prefix are treated as the
// same entry even when their ids differ.
const eventPrefixLen = 50

// DedupKey computes the heuristic identity used to detect duplicates.
// This is deliberately not the record id: re-imported or double-saved
// entries get fresh ids but identical content.
func DedupKey(r schema.RawRecord) string {
	event := r.Event()
	runes := []rune(event)
	if len(runes) > eventPrefixLen {
		event = string(runes[:eventPrefixLen])
	}
	return fmt.Sprintf("%s_%s_%s", r.Date(), r.Emotion(), event)
}

// RemoveDuplicates filters the collection down to the first occurrence per
// dedup key, preserving input order for survivors. Returns the survivors
// and the number of records removed.
//
// Running it twice yields the same result as running it once.
func RemoveDuplicates(entries []schema.RawRecord) ([]schema.RawRecord, int) {
	seen := make(map[string]bool, len(entries))
	unique := make([]schema.RawRecord, 0, len(entries))

	for _, entry := range entries {
		key := DedupKey(entry)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, entry)
	}

	return unique, len(entries) - len(unique)
}
