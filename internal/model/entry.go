package model

import "strings"

// Availability represents the YouTube availability state of a media entry
type Availability string

const (
	AvailabilityAvailable      Availability = "available"
	AvailabilityPrivate        Availability = "private"
	AvailabilityPremiumOnly    Availability = "premium_only"
	AvailabilitySubscriberOnly Availability = "subscriber_only"
	AvailabilityNeedsAuth      Availability = "needs_auth"
	AvailabilityUnlisted       Availability = "unlisted"
)

// String returns the string representation of Availability
func (a Availability) String() string {
	return string(a)
}

// Blocked returns true if entries with this availability cannot be downloaded
// without credentials the application does not have
func (a Availability) Blocked() bool {
	switch a {
	case AvailabilityPrivate, AvailabilityPremiumOnly, AvailabilitySubscriberOnly,
		AvailabilityNeedsAuth, AvailabilityUnlisted:
		return true
	}
	return false
}

// LiveStatus values reported by the extractor
const (
	LiveStatusUpcoming = "is_upcoming"
)

// Placeholder titles YouTube substitutes for entries it will not serve
var placeholderTitles = []string{
	"[Private video]",
	"[Deleted video]",
	"Private video",
	"Deleted video",
}

// MediaEntry represents a single track resolved from a URL. Every field is
// optional: the extractor frequently omits metadata, and consumers must
// tolerate zero values.
type MediaEntry struct {
	Title        string
	Artist       string
	Uploader     string
	Album        string
	Genre        string
	ThumbnailURL string
	UploadDate   string // YYYYMMDD as reported by the extractor
	Ext          string
	Availability Availability
	LiveStatus   string
	WebpageURL   string
	Filename     string // set after download
}

// Processable reports whether the entry can actually be downloaded and
// processed. Entries without a title, with a placeholder title, with blocked
// availability, or announcing an upcoming live stream are skipped.
func (e *MediaEntry) Processable() bool {
	if e == nil {
		return false
	}

	title := strings.TrimSpace(e.Title)
	if title == "" {
		return false
	}
	for _, placeholder := range placeholderTitles {
		if title == placeholder {
			return false
		}
	}

	if e.Availability.Blocked() {
		return false
	}

	if e.LiveStatus == LiveStatusUpcoming {
		return false
	}

	return true
}

// DisplayArtist returns the best available artist name: the tagged artist,
// then the uploader, then "Unknown"
func (e *MediaEntry) DisplayArtist() string {
	if e.Artist != "" {
		return e.Artist
	}
	if e.Uploader != "" {
		return e.Uploader
	}
	return "Unknown"
}

// Year returns the release year derived from the upload date, or "" when the
// upload date is absent or malformed
func (e *MediaEntry) Year() string {
	if len(e.UploadDate) < 4 {
		return ""
	}
	return e.UploadDate[:4]
}
