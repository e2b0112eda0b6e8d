package platform

// Package platform contains OS/filesystem glue: filename sanitization,
// locating downloaded media files, artifact cleanup, and opening folders in
// the system file manager.
