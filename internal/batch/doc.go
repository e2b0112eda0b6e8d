package batch

// Package batch runs the per-track processing of a playlist over a bounded
// worker pool. Entries are filtered up front, completions are aggregated in
// arrival order by a single coordinator, and cancellation stops new
// submissions while letting in-flight tracks finish and count.
