package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/ytmex/yt-music-extractor/internal/pipeline"
)

// progressStep is the minimum percent change between printed progress lines
const progressStep = 10

// consoleEvents renders run events as plain text lines. It implements
// pipeline.Events and is called from the runner's goroutines.
type consoleEvents struct {
	out io.Writer

	mu          sync.Mutex
	lastPercent int
	success     bool
	outcome     string
}

func newConsoleEvents(out io.Writer) *consoleEvents {
	return &consoleEvents{out: out, lastPercent: -progressStep}
}

// Success reports the final run outcome; valid after the run finished
func (c *consoleEvents) Success() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.success
}

// Outcome returns the final outcome message
func (c *consoleEvents) Outcome() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Progress implements pipeline.Events. Lines are throttled so long
// downloads do not flood the terminal.
func (c *consoleEvents) Progress(percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if percent < c.lastPercent+progressStep && percent != 100 {
		return
	}
	if percent == c.lastPercent {
		return
	}
	c.lastPercent = percent
	fmt.Fprintf(c.out, "[%3d%%]\n", percent)
}

// Status implements pipeline.Events
func (c *consoleEvents) Status(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "==> %s\n", message)
}

// Log implements pipeline.Events
func (c *consoleEvents) Log(message string, severity pipeline.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch severity {
	case pipeline.SeverityWarning:
		fmt.Fprintf(c.out, "warning: %s\n", message)
	case pipeline.SeverityError:
		fmt.Fprintf(c.out, "error: %s\n", message)
	default:
		fmt.Fprintln(c.out, message)
	}
}

// ThumbnailReady implements pipeline.Events
func (c *consoleEvents) ThumbnailReady(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "Cover art saved to %s\n", path)
}

// TrackProcessed implements pipeline.Events
func (c *consoleEvents) TrackProcessed(title string, current, total int) {
	// Already rendered through Log by the runner's per-track callback
}

// Finished implements pipeline.Events
func (c *consoleEvents) Finished(success bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.success = success
	c.outcome = message
}
