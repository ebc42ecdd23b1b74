package model

// StageCounts exposes how many items survived each pipeline stage. Served in
// diagnostic mode; never includes per-record reasoning.
type StageCounts struct {
	Discovered        int `json:"discovered"`
	Fetched           int `json:"fetched"`
	Relevant          int `json:"relevant"`
	Extracted         int `json:"extracted"`
	AfterDedup        int `json:"after_dedup"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	FannedOut         int `json:"fanned_out"`
	Final             int `json:"final"`
}
