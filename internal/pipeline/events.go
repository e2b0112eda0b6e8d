package pipeline

// Severity classifies log lines surfaced to the interface layer
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Events is the contract between a run and the interface driving it. The
// console and the GUI both implement it; the runner calls it from its own
// goroutines, so implementations marshal onto their UI thread themselves.
type Events interface {
	// Progress reports overall run progress in percent (0..100, monotonic)
	Progress(percent int)

	// Status reports a short human-readable phase description
	Status(message string)

	// Log surfaces a severity-tagged log line
	Log(message string, severity Severity)

	// ThumbnailReady reports that the processed cover art exists at path
	ThumbnailReady(path string)

	// TrackProcessed reports a completed track and the running counts
	TrackProcessed(title string, current, total int)

	// Finished reports the final outcome; exactly one call ends every run
	Finished(success bool, message string)
}
