package model

// RunSummary aggregates the outcome of one ingestion run.
// SourceErrors and StoreErrors carry non-fatal failures; a run with entries
// in either still completed.
type RunSummary struct {
	RunID           string            `json:"run_id"`
	TokensUpserted  int               `json:"tokens"`
	PoolsPerSource  map[string]int    `json:"pools_per_source"`
	MarketsUpserted int               `json:"markets"`
	SourceErrors    map[string]string `json:"source_errors,omitempty"`
	StoreErrors     map[string]string `json:"store_errors,omitempty"`
	DurationMS      int64             `json:"duration_ms"`
}
