package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Extensions of transient downloader state that must never be treated as
// media files
var SkippedExtensions = []string{".part", ".ytdl"}

// Extensions the downloader may produce for an audio-only download
var AudioExtensions = []string{".m4a", ".webm", ".opus", ".mp4", ".mp3", ".ogg", ".aac", ".wav", ".mkv"}

// Extensions of sidecar files written next to the media
var sidecarExtensions = []string{".json", ".jpg", ".jpeg", ".png", ".webp", ".vtt", ".srt"}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// LocateAudioFile finds the downloaded media file for a track title inside
// dir. The downloader applies its own name mangling on top of Sanitize, so
// an exact match is tried first and a normalized comparison second.
// Transient and sidecar files are never returned.
func LocateAudioFile(dir, title string) (string, error) {
	sanitized := Sanitize(title)
	if sanitized == "" {
		return "", fmt.Errorf("empty title")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var exact []string
	var loose []string

	want := normalizeName(sanitized)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !isMediaFile(name) {
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		switch {
		case base == sanitized:
			exact = append(exact, filepath.Join(dir, name))
		case normalizeName(base) == want:
			loose = append(loose, filepath.Join(dir, name))
		}
	}

	if len(exact) > 0 {
		sort.Strings(exact)
		return exact[0], nil
	}
	if len(loose) > 0 {
		sort.Strings(loose)
		return loose[0], nil
	}

	return "", fmt.Errorf("no media file found for %q in %s", title, dir)
}

// CleanupArtifacts removes files in dir for which keep returns false and
// returns the number of files removed. Subdirectories are left alone.
// Removal errors are counted as kept; cleanup is best effort.
func CleanupArtifacts(dir string, keep func(name string) bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if keep != nil && keep(name) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err == nil {
			removed++
		}
	}
	return removed
}

// isMediaFile reports whether name looks like a finished audio download
func isMediaFile(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return false
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, sidecar := range sidecarExtensions {
		if ext == sidecar {
			return false
		}
	}
	// .info.json sidecars carry a double extension
	if strings.HasSuffix(strings.ToLower(name), ".info.json") {
		return false
	}

	for _, audio := range AudioExtensions {
		if ext == audio {
			return true
		}
	}
	return false
}

// normalizeName lowercases a file base name and strips everything except
// letters and digits, hiding the differences introduced by restricted
// filename modes
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
