package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytmex/yt-music-extractor/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_dir"
	KeyQualityIndex    = "quality_index"
	KeyParallelCount   = "parallel_count"
	KeyMetadataEnabled = "metadata_enabled"
	KeyCleanupEnabled  = "cleanup_enabled"
	KeyLightMode       = "light_mode"
)

// Default values
const (
	DefaultQualityIndex    = 0
	DefaultParallelCount   = 4
	DefaultMetadataEnabled = true
	DefaultCleanupEnabled  = true
	DefaultLightMode       = false
)

// Parallelism bounds
const (
	MinParallelCount = 1
	MaxParallelCount = 8
)

// QualityFormats maps the quality index (0 = best) to the yt-dlp format
// selector used for the download
var QualityFormats = []string{
	"bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio[ext=opus]/bestaudio/best",
	"bestaudio[abr<=256]/bestaudio/best",
	"bestaudio[abr<=128]/bestaudio/best",
	"bestaudio/best",
}

// QualityLabels are the human readable names for each quality index, in the
// same order as QualityFormats
var QualityLabels = []string{
	"Best (m4a preferred)",
	"High (up to 256 kbps)",
	"Standard (up to 128 kbps)",
	"Any available",
}

// Settings manages application configuration persisted through Fyne
// preferences. All access goes through explicit getters and setters.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetQualityIndex returns the configured quality index (0..3, 0 is best)
func (s *Settings) GetQualityIndex() int {
	value := s.app.Preferences().IntWithFallback(KeyQualityIndex, DefaultQualityIndex)
	if value < 0 || value >= len(QualityFormats) {
		return DefaultQualityIndex
	}
	return value
}

// SetQualityIndex sets the quality index, clamping it to the valid range
func (s *Settings) SetQualityIndex(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(QualityFormats) {
		index = len(QualityFormats) - 1
	}
	s.app.Preferences().SetInt(KeyQualityIndex, index)
}

// GetQualityFormat returns the yt-dlp format selector for the configured
// quality index
func (s *Settings) GetQualityFormat() string {
	return QualityFormats[s.GetQualityIndex()]
}

// QualityFormatFor returns the format selector for an arbitrary index,
// falling back to the best preset for out-of-range values
func QualityFormatFor(index int) string {
	if index < 0 || index >= len(QualityFormats) {
		index = DefaultQualityIndex
	}
	return QualityFormats[index]
}

// GetParallelCount returns the configured number of parallel track workers
func (s *Settings) GetParallelCount() int {
	value := s.app.Preferences().Int(KeyParallelCount)
	if value <= 0 {
		s.SetParallelCount(DefaultParallelCount)
		return DefaultParallelCount
	}
	if value > MaxParallelCount {
		return MaxParallelCount
	}
	return value
}

// SetParallelCount sets the parallel worker count, clamped to 1..8
func (s *Settings) SetParallelCount(count int) {
	if count < MinParallelCount {
		count = MinParallelCount
	}
	if count > MaxParallelCount {
		count = MaxParallelCount
	}
	s.app.Preferences().SetInt(KeyParallelCount, count)
}

// GetMetadataEnabled returns whether tags and cover art are written
func (s *Settings) GetMetadataEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyMetadataEnabled, DefaultMetadataEnabled)
}

// SetMetadataEnabled sets whether tags and cover art are written
func (s *Settings) SetMetadataEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyMetadataEnabled, enabled)
}

// GetCleanupEnabled returns whether leftover artifacts are removed after a run
func (s *Settings) GetCleanupEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyCleanupEnabled, DefaultCleanupEnabled)
}

// SetCleanupEnabled sets whether leftover artifacts are removed after a run
func (s *Settings) SetCleanupEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyCleanupEnabled, enabled)
}

// GetLightMode returns whether the light color scheme is active
func (s *Settings) GetLightMode() bool {
	return s.app.Preferences().BoolWithFallback(KeyLightMode, DefaultLightMode)
}

// SetLightMode sets whether the light color scheme is active
func (s *Settings) SetLightMode(enabled bool) {
	s.app.Preferences().SetBool(KeyLightMode, enabled)
}
