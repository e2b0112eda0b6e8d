package batch

import (
	"context"
	"sync"

	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/model"
)

// MaxWorkers caps the pool regardless of configuration
const MaxWorkers = 8

// Progress band occupied by batch processing within a whole run
const (
	progressBase = 30
	progressSpan = 60
)

// TrackProcessor processes one entry and reports success. Implementations
// must absorb their own errors and panics; the pool treats any return as a
// completed attempt.
type TrackProcessor interface {
	ProcessTrack(ctx context.Context, entry *model.MediaEntry, folder, coverArtPath, albumTitle string) bool
}

// Orchestrator fans a batch out over a bounded pool of track workers
type Orchestrator struct {
	processor  TrackProcessor
	maxWorkers int
	log        *logger.Logger

	onProgress func(percent int)
	onTrack    func(title string, ok bool, completed, total int)
}

// NewOrchestrator creates a new orchestrator. maxWorkers is clamped to
// 1..MaxWorkers.
func NewOrchestrator(processor TrackProcessor, maxWorkers int, log *logger.Logger) *Orchestrator {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if maxWorkers > MaxWorkers {
		maxWorkers = MaxWorkers
	}
	if log == nil {
		log = logger.Default()
	}
	return &Orchestrator{
		processor:  processor,
		maxWorkers: maxWorkers,
		log:        log.WithComponent("batch"),
	}
}

// SetProgressCallback sets the callback for overall progress updates
func (o *Orchestrator) SetProgressCallback(callback func(percent int)) {
	o.onProgress = callback
}

// SetTrackCallback sets the callback invoked after each completed track
func (o *Orchestrator) SetTrackCallback(callback func(title string, ok bool, completed, total int)) {
	o.onTrack = callback
}

// Process runs every processable entry of b through the worker pool and
// returns the aggregate summary. Counters are mutated only here, in the
// loop consuming worker completions; workers communicate results over a
// channel and share no state with each other.
//
// When ctx is cancelled, submission stops and progress reporting goes
// quiet, but tracks already in flight run to completion and are counted.
func (o *Orchestrator) Process(ctx context.Context, b *model.Batch) model.BatchSummary {
	var summary model.BatchSummary

	entries := make([]*model.MediaEntry, 0, len(b.Entries))
	for _, entry := range b.Entries {
		if !entry.Processable() {
			summary.Skipped++
			o.log.Warn("skipping unavailable entry", "title", entryTitle(entry))
			continue
		}
		entries = append(entries, entry)
	}

	total := len(entries)
	if total == 0 {
		return summary
	}

	workers := o.maxWorkers
	if workers > total {
		workers = total
	}

	sem := make(chan struct{}, workers)
	results := make(chan model.ProcessingResult, total)
	var wg sync.WaitGroup

	go func() {
		defer func() {
			wg.Wait()
			close(results)
		}()

		for _, entry := range entries {
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			// The select above may race a late cancellation
			if ctx.Err() != nil {
				<-sem
				return
			}

			wg.Add(1)
			go func(entry *model.MediaEntry) {
				defer func() {
					<-sem
					wg.Done()
				}()

				ok := o.processor.ProcessTrack(ctx, entry, b.Folder, b.CoverArtPath, b.AlbumTitle)
				results <- model.ProcessingResult{Title: entry.Title, Success: ok}
			}(entry)
		}
	}()

	completed := 0
	for result := range results {
		completed++
		if result.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}

		if ctx.Err() != nil {
			continue
		}
		if o.onTrack != nil {
			o.onTrack(result.Title, result.Success, completed, total)
		}
		if o.onProgress != nil {
			o.onProgress(ProgressFor(completed, total))
		}
	}

	o.log.Info("batch finished",
		"successful", summary.Successful,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return summary
}

// ProgressFor maps batch completion onto the run's 30..90 progress band
func ProgressFor(completed, total int) int {
	if total <= 0 {
		return progressBase
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return progressBase + progressSpan*completed/total
}

func entryTitle(entry *model.MediaEntry) string {
	if entry == nil {
		return ""
	}
	return entry.Title
}
