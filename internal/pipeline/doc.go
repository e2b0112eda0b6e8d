package pipeline

// Package pipeline orchestrates a full run: URL resolution, folder layout,
// download, cover art, per-track processing and cleanup. Interfaces observe
// the run through the Events contract; the runner owns phase ordering,
// cancellation and the outermost error boundary.
