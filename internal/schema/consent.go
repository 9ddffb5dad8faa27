package schema

// ConsentHistory is one consent acknowledgment. The remote copy is
// authoritative: the local collection is a read-through cache that the
// reconciliation service overwrites wholesale on every successful pull
// and never partially merges.
type ConsentHistory struct {
	ID           string `json:"id"`
	LineUsername string `json:"line_username"`
	ConsentGiven bool   `json:"consent_given"`
	ConsentDate  string `json:"consent_date"`
	CreatedAt    string `json:"created_at,omitempty"`
}
