package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ytmex/yt-music-extractor/internal/batch"
	"github.com/ytmex/yt-music-extractor/internal/extract"
	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/model"
	"github.com/ytmex/yt-music-extractor/internal/platform"
)

// Progress checkpoints outside the batch band
const (
	progressResolved = 10
	progressFetched  = 30
	progressCleanup  = 95
	progressDone     = 100
)

// CoverFileName is the album cover written into every run folder
const CoverFileName = "cover.jpg"

// Extractor resolves URLs and downloads audio
type Extractor interface {
	Resolve(ctx context.Context, url string) (*extract.Resolution, error)
	Download(ctx context.Context, url, outputTemplate string, progress func(done, total int64)) (*extract.Resolution, error)
}

// CoverProcessor fetches and normalizes cover art
type CoverProcessor interface {
	Fetch(url, destPath string) error
	Process(sourcePath, destPath string) (string, bool)
}

// Request describes one run
type Request struct {
	URL       string
	OutputDir string
	Parallel  int
	Metadata  bool
	Cleanup   bool
}

// Runner executes runs. A Runner is reusable but executes one run at a time.
type Runner struct {
	extractor Extractor
	covers    CoverProcessor
	processor batch.TrackProcessor
	events    Events
	log       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRunner creates a runner. events must not be nil.
func NewRunner(extractor Extractor, covers CoverProcessor, processor batch.TrackProcessor, events Events, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}
	return &Runner{
		extractor: extractor,
		covers:    covers,
		processor: processor,
		events:    events,
		log:       log.WithComponent("pipeline"),
	}
}

// Cancel requests cooperative cancellation of the current run. In-flight
// track work finishes; nothing new starts.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Run executes req to completion and reports the outcome through Events.
// It never returns an error and never panics: this is the outermost error
// boundary, and every failure ends in a Finished(false, …) with a
// human-readable message.
func (r *Runner) Run(ctx context.Context, req Request) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer cancel()

	log := r.log.WithRun(uuid.NewString())

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("run panicked", "panic", fmt.Sprintf("%v", rec))
			r.events.Log("Unexpected error during processing", SeverityError)
			r.events.Finished(false, "Unexpected error during processing")
		}
	}()

	// Phase 1: resolve
	r.events.Status("Analyzing URL")
	r.events.Log("Analyzing "+req.URL, SeverityInfo)

	resolution, err := r.extractor.Resolve(ctx, req.URL)
	if err != nil {
		if ctx.Err() != nil {
			r.finishCancelled(log)
			return
		}
		log.Error("resolve failed", "url", req.URL, "error", err)
		r.events.Log("Could not analyze URL: "+err.Error(), SeverityError)
		r.events.Finished(false, "Could not analyze URL")
		return
	}

	// Phase 2: folder layout
	albumTitle, folder := runFolder(req.OutputDir, resolution)
	if err := platform.CreateDirectoryIfNotExists(folder); err != nil {
		log.Error("cannot create output folder", "folder", folder, "error", err)
		r.events.Log("Cannot create output folder: "+err.Error(), SeverityError)
		r.events.Finished(false, "Cannot create output folder")
		return
	}
	log.Info("resolved", "album", albumTitle, "folder", folder, "entries", len(resolution.Entries))
	r.events.Progress(progressResolved)

	// Phase 3: availability check before spending bandwidth
	if countProcessable(resolution.Entries) == 0 {
		r.events.Log("No tracks available for download", SeverityError)
		r.events.Finished(false, "No tracks available")
		return
	}

	// Phase 4: download
	r.events.Status("Downloading audio")
	downloaded, err := r.extractor.Download(ctx, req.URL, filepath.Join(folder, "%(title)s.%(ext)s"), func(done, total int64) {
		r.events.Progress(downloadProgress(done, total))
	})
	if err != nil {
		if ctx.Err() != nil {
			r.finishCancelled(log)
			return
		}
		log.Error("download failed", "url", req.URL, "error", err)
		r.events.Log("Download failed: "+err.Error(), SeverityError)
		r.events.Finished(false, "Download failed")
		return
	}
	// The download resolution carries the actual filenames
	entries := resolution.Entries
	if downloaded != nil && len(downloaded.Entries) > 0 {
		entries = downloaded.Entries
	}
	r.events.Progress(progressFetched)

	if ctx.Err() != nil {
		r.finishCancelled(log)
		return
	}

	// Phase 5: cover art
	coverPath := ""
	if req.Metadata {
		coverPath = r.prepareCoverArt(log, resolution, entries, folder)
	}

	// Phase 6: per-track processing
	r.events.Status("Processing tracks")
	orchestrator := batch.NewOrchestrator(r.processor, req.Parallel, log)
	orchestrator.SetTrackCallback(func(title string, ok bool, completed, total int) {
		severity := SeveritySuccess
		if !ok {
			severity = SeverityWarning
		}
		r.events.Log(fmt.Sprintf("[%d/%d] %s", completed, total, title), severity)
		r.events.TrackProcessed(title, completed, total)
	})
	orchestrator.SetProgressCallback(r.events.Progress)

	summary := orchestrator.Process(ctx, &model.Batch{
		AlbumTitle:   albumTitle,
		Folder:       folder,
		CoverArtPath: coverPath,
		Entries:      entries,
	})

	if ctx.Err() != nil {
		r.finishCancelled(log)
		return
	}

	// Phase 7: cleanup
	if req.Cleanup && summary.OK() {
		removed := platform.CleanupArtifacts(folder, keepAfterRun)
		log.Info("cleanup finished", "removed", removed)
		r.events.Progress(progressCleanup)
	}

	// Phase 8: final outcome
	r.events.Progress(progressDone)
	message := fmt.Sprintf("Done: %d successful, %d failed, %d skipped",
		summary.Successful, summary.Failed, summary.Skipped)
	log.Info("run finished", "summary", message, "ok", summary.OK())
	if summary.OK() {
		r.events.Log(message, SeveritySuccess)
	} else {
		r.events.Log(message, SeverityError)
	}
	r.events.Finished(summary.OK(), message)
}

// prepareCoverArt downloads and normalizes the run's cover art. Every
// failure degrades to "no cover" with a warning; a run never fails over
// artwork.
func (r *Runner) prepareCoverArt(log *logger.Logger, resolution *extract.Resolution, entries []*model.MediaEntry, folder string) string {
	url := resolution.ThumbnailURL
	if url == "" {
		for _, entry := range entries {
			if entry != nil && entry.ThumbnailURL != "" {
				url = entry.ThumbnailURL
				break
			}
		}
	}
	if url == "" {
		r.events.Log("No thumbnail available, continuing without cover art", SeverityWarning)
		return ""
	}

	tmp, err := os.CreateTemp(folder, "thumb-*")
	if err != nil {
		log.Warn("cannot create thumbnail temp file", "error", err)
		r.events.Log("Continuing without cover art", SeverityWarning)
		return ""
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := r.covers.Fetch(url, tmpPath); err != nil {
		log.Warn("thumbnail fetch failed", "url", url, "error", err)
		r.events.Log("Thumbnail download failed, continuing without cover art", SeverityWarning)
		return ""
	}

	coverPath, ok := r.covers.Process(tmpPath, filepath.Join(folder, CoverFileName))
	if !ok {
		r.events.Log("Cover art processing failed, continuing without cover art", SeverityWarning)
		return ""
	}

	r.events.ThumbnailReady(coverPath)
	return coverPath
}

func (r *Runner) finishCancelled(log *logger.Logger) {
	log.Info("run cancelled")
	r.events.Log("Cancelled", SeverityWarning)
	r.events.Finished(false, "Cancelled")
}

// runFolder derives the album title and destination folder for a resolution
func runFolder(outputDir string, resolution *extract.Resolution) (string, string) {
	if resolution.IsPlaylist {
		title := strings.TrimSpace(resolution.Title)
		if title == "" {
			title = "Playlist"
		}
		return title, filepath.Join(outputDir, platform.Sanitize(title))
	}

	title := strings.TrimSpace(resolution.Title)
	if title == "" && len(resolution.Entries) > 0 && resolution.Entries[0] != nil {
		title = strings.TrimSpace(resolution.Entries[0].Title)
	}
	if title == "" {
		title = "Track"
	}
	return title, filepath.Join(outputDir, "Single - "+platform.Sanitize(title))
}

// downloadProgress maps byte counts onto the 10..30 band
func downloadProgress(done, total int64) int {
	if total <= 0 {
		return progressResolved
	}
	if done > total {
		done = total
	}
	return progressResolved + int(int64(progressFetched-progressResolved)*done/total)
}

func countProcessable(entries []*model.MediaEntry) int {
	n := 0
	for _, entry := range entries {
		if entry.Processable() {
			n++
		}
	}
	return n
}

func keepAfterRun(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".m4a" || ext == ".jpg"
}
