package schema

import (
	"encoding/json"
	"testing"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestDiaryRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  DiaryRecord
		wantErr bool
	}{
		{
			name: "valid unscored record",
			record: DiaryRecord{
				ID: "d-1", Date: "2024-01-01", Emotion: "fear",
				CreatedAt: "2024-01-01T00:00:00Z",
			},
			wantErr: false,
		},
		{
			name: "valid scored record",
			record: DiaryRecord{
				ID: "d-1", Date: "2024-01-01", Emotion: "joy",
				SelfEsteemScore: intPtr(50), WorthlessnessScore: intPtr(50),
			},
			wantErr: false,
		},
		{
			name:    "missing id",
			record:  DiaryRecord{Date: "2024-01-01", Emotion: "fear"},
			wantErr: true,
		},
		{
			name:    "missing date",
			record:  DiaryRecord{ID: "d-1", Emotion: "fear"},
			wantErr: true,
		},
		{
			name:    "missing emotion",
			record:  DiaryRecord{ID: "d-1", Date: "2024-01-01"},
			wantErr: true,
		},
		{
			name:    "scored emotion without scores",
			record:  DiaryRecord{ID: "d-1", Date: "2024-01-01", Emotion: "gratitude"},
			wantErr: true,
		},
		{
			name: "unscored emotion with scores",
			record: DiaryRecord{
				ID: "d-1", Date: "2024-01-01", Emotion: "anger",
				SelfEsteemScore: intPtr(40), WorthlessnessScore: intPtr(60),
			},
			wantErr: true,
		},
		{
			name: "invalid urgency",
			record: DiaryRecord{
				ID: "d-1", Date: "2024-01-01", Emotion: "fear",
				UrgencyLevel: strPtr("urgent"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDiaryRecord_ScoreDefaults(t *testing.T) {
	d := NewDiaryRecord("d-1", "2024-01-01", "happiness", "walked outside", "felt better")
	if d.SelfEsteemScore == nil || *d.SelfEsteemScore != DefaultScore {
		t.Errorf("scored emotion should default self_esteem_score to %d", DefaultScore)
	}

	d = NewDiaryRecord("d-2", "2024-01-01", "anger", "", "")
	if d.SelfEsteemScore != nil {
		t.Error("unscored emotion should not carry scores")
	}
}

func TestDiaryRecord_RawOmitsAbsentOptionals(t *testing.T) {
	d := NewDiaryRecord("d-1", "2024-01-01", "fear", "e", "r")
	raw := d.Raw()

	for _, key := range []string{"counselor_memo", "urgency_level", "is_visible_to_user"} {
		if _, ok := raw[key]; ok {
			t.Errorf("optional field %q should be absent from raw shape", key)
		}
	}
	if raw.ID() != "d-1" || raw.Date() != "2024-01-01" || raw.Emotion() != "fear" {
		t.Errorf("raw shape lost required fields: %v", raw)
	}
}

func TestDiaryRecord_JSONOmitsAbsentOptionals(t *testing.T) {
	d := DiaryRecord{ID: "d-1", Date: "2024-01-01", Emotion: "fear", CreatedAt: "2024-01-01T00:00:00Z"}
	data, err := json.Marshal(&d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"self_esteem_score", "counselor_memo", "urgency_level"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("wire shape should omit absent %q", key)
		}
	}
}
