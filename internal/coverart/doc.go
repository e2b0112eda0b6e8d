package coverart

// Package coverart fetches video thumbnails and normalizes them into the
// cover art embedded in tags: center-cropped to a square, at most 500px on a
// side, encoded as JPEG. Processing failures degrade to "no cover art" and
// never abort a run.
