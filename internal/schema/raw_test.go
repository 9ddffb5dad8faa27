package schema

import (
	"io"
	"log"
	"testing"
	"time"
)

func testNormalizer() *Normalizer {
	n := NewNormalizer(log.New(io.Discard, "", 0))
	n.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return n
}

func TestNormalize_ScoreResolutionOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
		want int
	}{
		{
			name: "camelCase number wins",
			raw:  RawRecord{"selfEsteemScore": float64(72), "self_esteem_score": float64(10)},
			want: 72,
		},
		{
			name: "camelCase numeric string parsed",
			raw:  RawRecord{"selfEsteemScore": "63"},
			want: 63,
		},
		{
			name: "snake_case number",
			raw:  RawRecord{"self_esteem_score": float64(31)},
			want: 31,
		},
		{
			name: "snake_case numeric string parsed",
			raw:  RawRecord{"self_esteem_score": "44"},
			want: 44,
		},
		{
			name: "unparsable string falls through to default",
			raw:  RawRecord{"selfEsteemScore": "not-a-number"},
			want: DefaultScore,
		},
		{
			name: "absent defaults to 50",
			raw:  RawRecord{},
			want: DefaultScore,
		},
		{
			name: "unparsable camelCase does not shadow snake_case",
			raw:  RawRecord{"selfEsteemScore": "??", "self_esteem_score": float64(12)},
			want: 12,
		},
	}

	n := testNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRecord{"id": "1", "date": "2024-01-01", "emotion": "joy"}
			for k, v := range tt.raw {
				raw[k] = v
			}
			got := n.Normalize(raw, "user-1")
			if got.SelfEsteemScore == nil {
				t.Fatal("expected self_esteem_score to be set for scored emotion")
			}
			if *got.SelfEsteemScore != tt.want {
				t.Errorf("self_esteem_score = %d, want %d", *got.SelfEsteemScore, tt.want)
			}
		})
	}
}

func TestNormalize_ScoresOnlyForScoredEmotions(t *testing.T) {
	n := testNormalizer()

	raw := RawRecord{
		"id": "1", "date": "2024-01-01", "emotion": "anger",
		"selfEsteemScore": float64(80), "worthlessnessScore": float64(20),
	}
	got := n.Normalize(raw, "user-1")
	if got.SelfEsteemScore != nil || got.WorthlessnessScore != nil {
		t.Errorf("unscored emotion must not carry scores, got %+v", got)
	}

	raw["emotion"] = "worthlessness"
	got = n.Normalize(raw, "user-1")
	if got.SelfEsteemScore == nil || *got.SelfEsteemScore != 80 {
		t.Errorf("scored emotion lost camelCase score: %+v", got.SelfEsteemScore)
	}
	if got.WorthlessnessScore == nil || *got.WorthlessnessScore != 20 {
		t.Errorf("scored emotion lost worthlessness score: %+v", got.WorthlessnessScore)
	}
}

func TestNormalize_UrgencyCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"high passes", "high", "high"},
		{"medium passes", "medium", "medium"},
		{"low passes", "low", "low"},
		{"empty passes", "", ""},
		{"critical coerced", "critical", ""},
		{"uppercase coerced", "HIGH", ""},
		{"garbage coerced", "!!!", ""},
	}

	n := testNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawRecord{
				"id": "1", "date": "2024-01-01", "emotion": "fear",
				"urgencyLevel": tt.value,
			}
			got := n.Normalize(raw, "user-1")
			if got.UrgencyLevel == nil {
				t.Fatal("urgency_level should be present when the source carries it")
			}
			if *got.UrgencyLevel != tt.want {
				t.Errorf("urgency_level = %q, want %q", *got.UrgencyLevel, tt.want)
			}
		})
	}
}

func TestNormalize_UrgencyAbsentStaysAbsent(t *testing.T) {
	n := testNormalizer()
	got := n.Normalize(RawRecord{"id": "1", "date": "2024-01-01", "emotion": "fear"}, "u")
	if got.UrgencyLevel != nil {
		t.Errorf("urgency_level should be absent, got %q", *got.UrgencyLevel)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	n := testNormalizer()
	got := n.Normalize(RawRecord{"id": "1", "date": "2024-01-01", "emotion": "sadness"}, "user-9")

	if got.Event != "" || got.Realization != "" {
		t.Errorf("event/realization should default to empty, got %q / %q", got.Event, got.Realization)
	}
	if got.CreatedAt != "2024-06-01T12:00:00Z" {
		t.Errorf("created_at should default to now, got %q", got.CreatedAt)
	}
	if got.UserID != "user-9" {
		t.Errorf("user_id = %q, want user-9", got.UserID)
	}
}

func TestNormalize_CamelCaseOnlyValueNeverDropped(t *testing.T) {
	n := testNormalizer()
	raw := RawRecord{
		"id": "1", "date": "2024-01-01", "emotion": "fear",
		"counselorMemo":     "watch closely",
		"isVisibleToUser":   true,
		"counselorName":     "Tanaka",
		"assignedCounselor": "Sato",
	}
	got := n.Normalize(raw, "u")

	if got.CounselorMemo == nil || *got.CounselorMemo != "watch closely" {
		t.Error("counselorMemo dropped")
	}
	if got.IsVisibleToUser == nil || !*got.IsVisibleToUser {
		t.Error("isVisibleToUser dropped")
	}
	if got.CounselorName == nil || *got.CounselorName != "Tanaka" {
		t.Error("counselorName dropped")
	}
	if got.AssignedCounselor == nil || *got.AssignedCounselor != "Sato" {
		t.Error("assignedCounselor dropped")
	}
}

func TestNormalize_SnakeCaseWinsWhenBothPresent(t *testing.T) {
	n := testNormalizer()
	raw := RawRecord{
		"id": "1", "date": "2024-01-01", "emotion": "fear",
		"counselor_memo": "canonical",
		"counselorMemo":  "legacy",
	}
	got := n.Normalize(raw, "u")
	if got.CounselorMemo == nil || *got.CounselorMemo != "canonical" {
		t.Errorf("canonical field should win, got %v", got.CounselorMemo)
	}
}

func TestNormalize_CreatedAtPassThrough(t *testing.T) {
	n := testNormalizer()
	raw := RawRecord{
		"id": "1", "date": "2024-01-01", "emotion": "fear",
		"created_at": "2023-11-05T09:30:00Z",
	}
	got := n.Normalize(raw, "u")
	if got.CreatedAt != "2023-11-05T09:30:00Z" {
		t.Errorf("created_at = %q, want pass-through", got.CreatedAt)
	}
}
