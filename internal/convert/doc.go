package convert

// Package convert transcodes downloaded audio into an AAC stream in an M4A
// container via ffmpeg. Conversion failures are reported to the caller, who
// degrades to the original download rather than failing the track.
