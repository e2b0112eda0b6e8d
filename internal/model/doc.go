package model

// Package model defines domain data structures used across the app: media
// entries resolved from YouTube URLs, batches bound to one destination
// folder, and run outcome summaries. Structures carry no behavior beyond
// derivations of their own fields.
