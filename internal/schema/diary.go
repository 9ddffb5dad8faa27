// Package schema provides the canonical data structures shared by the
// local and remote diary stores.
package schema

import (
	"fmt"
	"time"
)

// Emotions is the fixed vocabulary a diary entry may carry.
var Emotions = []string{
	"fear",
	"sadness",
	"anger",
	"frustration",
	"worthlessness",
	"guilt",
	"loneliness",
	"shame",
	"joy",
	"gratitude",
	"accomplishment",
	"happiness",
}

// scoredEmotions is the subset of emotions that carry self-esteem and
// worthlessness scores. Entries with any other emotion never have scores.
var scoredEmotions = map[string]bool{
	"worthlessness":  true,
	"joy":            true,
	"gratitude":      true,
	"accomplishment": true,
	"happiness":      true,
}

// urgencyLevels is the closed set of values accepted for urgency_level.
// Anything else is coerced to "" by the normalizer.
var urgencyLevels = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
	"":       true,
}

// DefaultScore is applied when a scoring field is absent or unparsable.
const DefaultScore = 50

// DiaryRecord is one journal entry in its canonical wire shape: exactly
// one snake_case name per field, required fields always present, optional
// fields present only when the source record carried them.
//
// The id is assigned at creation, immutable, and is the sole conflict key
// for remote upserts. user_id is attached by the reconciliation service at
// push time and is never set by callers.
type DiaryRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Date        string `json:"date"`
	Emotion     string `json:"emotion"`
	Event       string `json:"event"`
	Realization string `json:"realization"`
	CreatedAt   string `json:"created_at"`

	// Present iff Emotion is in the scored subset.
	SelfEsteemScore    *int `json:"self_esteem_score,omitempty"`
	WorthlessnessScore *int `json:"worthlessness_score,omitempty"`

	// Counselor-facing optional fields.
	CounselorMemo     *string `json:"counselor_memo,omitempty"`
	IsVisibleToUser   *bool   `json:"is_visible_to_user,omitempty"`
	CounselorName     *string `json:"counselor_name,omitempty"`
	AssignedCounselor *string `json:"assigned_counselor,omitempty"`
	UrgencyLevel      *string `json:"urgency_level,omitempty"`
}

// IsScoredEmotion reports whether the emotion carries scoring fields.
func IsScoredEmotion(emotion string) bool {
	return scoredEmotions[emotion]
}

// IsValidUrgency reports whether the value is an accepted urgency level.
func IsValidUrgency(level string) bool {
	return urgencyLevels[level]
}

// Validate checks the invariants a canonical record must hold before it
// is handed to the remote store.
func (d *DiaryRecord) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	if d.Date == "" {
		return fmt.Errorf("date is required")
	}
	if d.Emotion == "" {
		return fmt.Errorf("emotion is required")
	}
	if IsScoredEmotion(d.Emotion) {
		if d.SelfEsteemScore == nil || d.WorthlessnessScore == nil {
			return fmt.Errorf("scored emotion %q requires both scoring fields", d.Emotion)
		}
	} else {
		if d.SelfEsteemScore != nil || d.WorthlessnessScore != nil {
			return fmt.Errorf("emotion %q must not carry scoring fields", d.Emotion)
		}
	}
	if d.UrgencyLevel != nil && !IsValidUrgency(*d.UrgencyLevel) {
		return fmt.Errorf("invalid urgency level %q", *d.UrgencyLevel)
	}
	return nil
}

// NewDiaryRecord creates a canonical record for a fresh local entry.
// Scores default to 50 when the emotion is scored.
func NewDiaryRecord(id, date, emotion, event, realization string) *DiaryRecord {
	d := &DiaryRecord{
		ID:          id,
		Date:        date,
		Emotion:     emotion,
		Event:       event,
		Realization: realization,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if IsScoredEmotion(emotion) {
		se, ws := DefaultScore, DefaultScore
		d.SelfEsteemScore = &se
		d.WorthlessnessScore = &ws
	}
	return d
}

// Raw converts the canonical record back into the map shape stored in the
// local collection. Only present fields are emitted.
func (d *DiaryRecord) Raw() RawRecord {
	r := RawRecord{
		"id":          d.ID,
		"date":        d.Date,
		"emotion":     d.Emotion,
		"event":       d.Event,
		"realization": d.Realization,
		"created_at":  d.CreatedAt,
	}
	if d.UserID != "" {
		r["user_id"] = d.UserID
	}
	if d.SelfEsteemScore != nil {
		r["self_esteem_score"] = float64(*d.SelfEsteemScore)
	}
	if d.WorthlessnessScore != nil {
		r["worthlessness_score"] = float64(*d.WorthlessnessScore)
	}
	if d.CounselorMemo != nil {
		r["counselor_memo"] = *d.CounselorMemo
	}
	if d.IsVisibleToUser != nil {
		r["is_visible_to_user"] = *d.IsVisibleToUser
	}
	if d.CounselorName != nil {
		r["counselor_name"] = *d.CounselorName
	}
	if d.AssignedCounselor != nil {
		r["assigned_counselor"] = *d.AssignedCounselor
	}
	if d.UrgencyLevel != nil {
		r["urgency_level"] = *d.UrgencyLevel
	}
	return r
}
