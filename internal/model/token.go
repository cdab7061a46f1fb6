package model

// Token is a run-scoped token record keyed by contract.
// Occurrences counts pool participations within a single run.
type Token struct {
	Contract    string `json:"contract"`
	Symbol      string `json:"symbol"`
	Precision   int    `json:"precision"`
	IsWax       bool   `json:"is_wax"`
	Occurrences int    `json:"occurrences"`
}
