package tagging

// Package tagging implements per-track post-processing: locating the
// downloaded file, converting it to M4A, writing MP4 tags with embedded
// cover art, and dropping an external cover copy next to the track. A track
// processor never lets an error or panic escape to its caller.
