package model

// Batch groups the entries of a single run that share one destination folder
// and one cover art file
type Batch struct {
	AlbumTitle   string
	Folder       string
	CoverArtPath string // "" when cover art processing failed or was skipped
	Entries      []*MediaEntry
}

// ProcessingResult is the outcome of processing one entry
type ProcessingResult struct {
	Title   string
	Success bool
	Err     string
}

// BatchSummary aggregates per-entry outcomes for a whole run
type BatchSummary struct {
	Successful int
	Failed     int
	Skipped    int
}

// OK reports whether the run as a whole counts as successful: at least one
// track must have been processed successfully
func (s BatchSummary) OK() bool {
	return s.Successful > 0
}

// Total returns the number of entries that were actually attempted
func (s BatchSummary) Total() int {
	return s.Successful + s.Failed
}
