package schema

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// RawRecord is a diary entry as the historical UI layers wrote it: a
// loosely-typed JSON object whose fields may use either snake_case or
// camelCase names. The local store holds records in this shape; the
// normalizer resolves them into the canonical DiaryRecord before any
// remote write.
type RawRecord map[string]any

// stringAt returns the first key that resolves to a string value.
func (r RawRecord) stringAt(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// ID returns the record identifier, or "" if absent.
func (r RawRecord) ID() string {
	s, _ := r.stringAt("id")
	return s
}

// Date returns the calendar date string, or "" if absent.
func (r RawRecord) Date() string {
	s, _ := r.stringAt("date")
	return s
}

// Emotion returns the emotion label, or "" if absent.
func (r RawRecord) Emotion() string {
	s, _ := r.stringAt("emotion")
	return s
}

// Event returns the event text, or "" if absent.
func (r RawRecord) Event() string {
	s, _ := r.stringAt("event")
	return s
}

// Realization returns the realization text, or "" if absent.
func (r RawRecord) Realization() string {
	s, _ := r.stringAt("realization")
	return s
}

// Normalizer resolves raw records into canonical DiaryRecords.
//
// The transform is pure apart from the warning emitted when an
// out-of-vocabulary urgency level is coerced. Now is overridable so tests
// can pin the created_at default.
type Normalizer struct {
	Logger *log.Logger
	Now    func() time.Time
}

// NewNormalizer creates a Normalizer. If logger is nil, a default logger
// writing to stderr is used.
func NewNormalizer(logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.New(os.Stderr, "[normalize] ", log.LstdFlags)
	}
	return &Normalizer{Logger: logger, Now: time.Now}
}

// Normalize converts a raw record into its canonical shape, attaching the
// owning user. Field resolution follows a fixed order per field; a
// camelCase-only value is never dropped, and the explicit snake_case field
// wins when both namings are present.
func (n *Normalizer) Normalize(raw RawRecord, userID string) *DiaryRecord {
	d := &DiaryRecord{
		ID:      raw.ID(),
		UserID:  userID,
		Date:    raw.Date(),
		Emotion: raw.Emotion(),
	}

	// event and realization default to empty string, which stringAt
	// already yields for absent fields.
	d.Event = raw.Event()
	d.Realization = raw.Realization()

	if created, ok := raw.stringAt("created_at", "createdAt"); ok && created != "" {
		d.CreatedAt = created
	} else {
		d.CreatedAt = n.Now().Format(time.RFC3339)
	}

	if IsScoredEmotion(d.Emotion) {
		se := resolveScore(raw, "selfEsteemScore", "self_esteem_score")
		ws := resolveScore(raw, "worthlessnessScore", "worthlessness_score")
		d.SelfEsteemScore = &se
		d.WorthlessnessScore = &ws
	}

	if memo, ok := raw.stringAt("counselor_memo", "counselorMemo"); ok {
		d.CounselorMemo = &memo
	}
	if visible, ok := resolveBool(raw, "is_visible_to_user", "isVisibleToUser"); ok {
		d.IsVisibleToUser = &visible
	}
	if name, ok := raw.stringAt("counselor_name", "counselorName"); ok {
		d.CounselorName = &name
	}
	if assigned, ok := raw.stringAt("assigned_counselor", "assignedCounselor"); ok {
		d.AssignedCounselor = &assigned
	}
	if urgency, ok := raw.stringAt("urgency_level", "urgencyLevel"); ok {
		if !IsValidUrgency(urgency) {
			n.Logger.Printf("WARNING: invalid urgency level %q on entry %s, resetting to empty", urgency, d.ID)
			urgency = ""
		}
		d.UrgencyLevel = &urgency
	}

	return d
}

// NormalizeAll normalizes every record in the collection, preserving order.
func (n *Normalizer) NormalizeAll(raws []RawRecord, userID string) []*DiaryRecord {
	records := make([]*DiaryRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, n.Normalize(raw, userID))
	}
	return records
}

// resolveScore applies the scoring resolution order: camelCase number,
// camelCase numeric string, snake_case number, snake_case numeric string,
// then the default. A string that fails to parse falls through rather than
// erroring.
func resolveScore(raw RawRecord, camel, snake string) int {
	for _, key := range []string{camel, snake} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t)
		case int:
			return t
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return i
			}
		}
	}
	return DefaultScore
}

// resolveBool resolves a boolean under either naming convention, snake
// first. Returns ok=false when the field is absent under both names.
func resolveBool(raw RawRecord, snake, camel string) (bool, bool) {
	for _, key := range []string{snake, camel} {
		if v, ok := raw[key]; ok {
			if b, ok := v.(bool); ok {
				return b, true
			}
		}
	}
	return false, false
}
