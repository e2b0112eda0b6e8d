package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/floostack/transcoder/ffmpeg"

	"github.com/ytmex/yt-music-extractor/internal/logger"
)

// Target encoding parameters
const (
	outputExt      = ".m4a"
	outputFormat   = "ipod" // ffmpeg muxer for .m4a
	audioCodec     = "aac"
	audioBitrate   = "256k"
	ffmpegBinName  = "ffmpeg"
	ffprobeBinName = "ffprobe"
)

// Service converts downloaded audio files to AAC/M4A
type Service struct {
	ffmpegPath  string
	ffprobePath string
	log         *logger.Logger
}

// NewService creates a new conversion service. Empty binary paths resolve
// through $PATH.
func NewService(ffmpegPath, ffprobePath string, log *logger.Logger) *Service {
	if ffmpegPath == "" {
		ffmpegPath = ffmpegBinName
	}
	if ffprobePath == "" {
		ffprobePath = ffprobeBinName
	}
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		log:         log.WithComponent("convert"),
	}
}

// NeedsConversion reports whether path is not already an M4A file
func NeedsConversion(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), outputExt)
}

// ToM4A transcodes inputPath into a sibling .m4a file and returns its path.
// The source file is removed on success. Inputs that are already .m4a are
// returned unchanged.
func (s *Service) ToM4A(ctx context.Context, inputPath string) (string, error) {
	if !NeedsConversion(inputPath) {
		return inputPath, nil
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + outputExt

	format := outputFormat
	codec := audioCodec
	bitrate := audioBitrate
	skipVideo := true
	overwrite := true
	opts := &ffmpeg.Options{
		OutputFormat: &format,
		AudioCodec:   &codec,
		AudioBitrate: &bitrate,
		SkipVideo:    &skipVideo,
		Overwrite:    &overwrite,
	}

	cfg := &ffmpeg.Config{
		ProgressEnabled: true,
		FfmpegBinPath:   s.ffmpegPath,
		FfprobeBinPath:  s.ffprobePath,
	}

	cmdContext, cancel := context.WithCancel(ctx)
	defer cancel()

	progress, err := ffmpeg.
		New(cfg).
		Input(inputPath).
		Output(outputPath).
		WithContext(&cmdContext).
		Start(opts)
	if err != nil {
		return "", fmt.Errorf("failed to start conversion: %w", err)
	}

	// Drain the progress channel; it closes when ffmpeg exits
	for range progress {
	}

	if ctx.Err() != nil {
		os.Remove(outputPath)
		return "", ctx.Err()
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return "", fmt.Errorf("conversion produced no output for %s", inputPath)
	}

	if err := os.Remove(inputPath); err != nil {
		s.log.Warn("failed to remove source after conversion", "path", inputPath, "error", err)
	}

	s.log.Info("converted to m4a", "input", inputPath, "output", outputPath)
	return outputPath, nil
}
