package tagging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/model"
	"github.com/ytmex/yt-music-extractor/internal/platform"
)

// DefaultGenre is written when the extractor reports no genre
const DefaultGenre = "YouTube Music"

// Tag fields cleared before writing, so stale values from a previous run
// never survive
var replacedTagFields = []string{"title", "artist", "album", "genre", "day", "cover"}

// Converter turns a downloaded audio file into an M4A file
type Converter interface {
	ToM4A(ctx context.Context, inputPath string) (string, error)
}

// Processor post-processes one downloaded track at a time. It is safe for
// concurrent use by multiple workers.
type Processor struct {
	converter     Converter
	embedMetadata bool
	log           *logger.Logger
}

// NewProcessor creates a track processor. converter may be nil, in which
// case downloads keep their original container. When embedMetadata is false
// tags and covers are skipped entirely.
func NewProcessor(converter Converter, embedMetadata bool, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Default()
	}
	return &Processor{
		converter:     converter,
		embedMetadata: embedMetadata,
		log:           log.WithComponent("tagging"),
	}
}

// ProcessTrack locates, converts and tags the downloaded file for entry
// inside folder. It reports success as a bool and never panics or returns
// an error: any failure is logged and absorbed here so a bad track cannot
// take down the worker running it. A track counts as successful only when
// its tags were written; a failed conversion merely keeps the original
// container.
func (p *Processor) ProcessTrack(ctx context.Context, entry *model.MediaEntry, folder, coverArtPath, albumTitle string) (ok bool) {
	log := p.log.WithTrack(entryTitle(entry))

	defer func() {
		if r := recover(); r != nil {
			log.Error("track processing panicked", "panic", fmt.Sprintf("%v", r))
			ok = false
		}
	}()

	if entry == nil || strings.TrimSpace(entry.Title) == "" {
		log.Error("refusing to process entry without a title")
		return false
	}

	audioPath, err := p.locate(folder, entry)
	if err != nil {
		log.Error("downloaded file not found", "error", err)
		return false
	}

	if p.converter != nil {
		converted, err := p.converter.ToM4A(ctx, audioPath)
		if err != nil {
			// Keep the original container; the audio is still usable
			log.Warn("conversion failed, keeping original file", "path", audioPath, "error", err)
		} else {
			audioPath = converted
		}
	}

	if p.embedMetadata {
		if err := p.writeTags(audioPath, entry, albumTitle, coverArtPath); err != nil {
			log.Error("failed to write tags", "path", audioPath, "error", err)
			return false
		}

		if coverArtPath != "" {
			if err := p.writeExternalCover(coverArtPath, folder, entry.Title); err != nil {
				log.Warn("failed to write external cover", "error", err)
			}
		}
	}

	log.Info("track processed", "path", audioPath)
	return true
}

// locate prefers the exact filename the downloader reported and falls back
// to scanning the folder
func (p *Processor) locate(folder string, entry *model.MediaEntry) (string, error) {
	if entry.Filename != "" {
		if _, err := os.Stat(entry.Filename); err == nil {
			return entry.Filename, nil
		}
	}
	return platform.LocateAudioFile(folder, entry.Title)
}

// writeTags writes MP4 metadata into path. Non-M4A files are skipped: their
// container formats are not tag targets.
func (p *Processor) writeTags(path string, entry *model.MediaEntry, albumTitle, coverArtPath string) error {
	if !strings.EqualFold(filepath.Ext(path), ".m4a") {
		return nil
	}

	genre := entry.Genre
	if genre == "" {
		genre = DefaultGenre
	}

	tags := &mp4tag.MP4Tags{
		Title:       entry.Title,
		Artist:      entry.DisplayArtist(),
		Album:       albumTitle,
		CustomGenre: genre,
		Date:        entry.Year(),
	}

	if coverArtPath != "" {
		if data, err := os.ReadFile(coverArtPath); err == nil && len(data) > 0 {
			tags.Pictures = []*mp4tag.MP4Picture{
				{Format: mp4tag.ImageTypeJPEG, Data: data},
			}
		} else if err != nil {
			p.log.Warn("cover art unreadable, tagging without it", "path", coverArtPath, "error", err)
		}
	}

	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open mp4: %w", err)
	}
	defer mp4.Close()

	if err := mp4.Write(tags, replacedTagFields); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}
	return nil
}

// writeExternalCover copies the album cover to <folder>/<track>.jpg, which
// players that ignore embedded art (VLC among them) pick up
func (p *Processor) writeExternalCover(coverArtPath, folder, title string) error {
	data, err := os.ReadFile(coverArtPath)
	if err != nil {
		return fmt.Errorf("failed to read cover art: %w", err)
	}

	dest := filepath.Join(folder, platform.Sanitize(title)+".jpg")
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write cover copy: %w", err)
	}
	return nil
}

func entryTitle(entry *model.MediaEntry) string {
	if entry == nil {
		return ""
	}
	return entry.Title
}
