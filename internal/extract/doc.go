package extract

// Package extract wraps the yt-dlp integration: resolving a URL into media
// entries without downloading, and performing the actual audio download with
// progress reporting. All extractor metadata is treated as optional.
