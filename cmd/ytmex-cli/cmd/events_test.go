package cmd

import (
	"strings"
	"testing"

	"github.com/ytmex/yt-music-extractor/internal/pipeline"
)

func TestConsoleEventsProgressThrottled(t *testing.T) {
	var sb strings.Builder
	events := newConsoleEvents(&sb)

	for percent := 0; percent <= 100; percent++ {
		events.Progress(percent)
	}

	lines := strings.Count(sb.String(), "\n")
	if lines != 11 {
		t.Errorf("printed %d progress lines, want 11 (every 10%% plus 100%%)", lines)
	}
}

func TestConsoleEventsProgressAlwaysPrintsCompletion(t *testing.T) {
	var sb strings.Builder
	events := newConsoleEvents(&sb)

	events.Progress(95)
	events.Progress(100)

	if !strings.Contains(sb.String(), "100%") {
		t.Error("completion should always be printed")
	}
}

func TestConsoleEventsSeverities(t *testing.T) {
	var sb strings.Builder
	events := newConsoleEvents(&sb)

	events.Log("plain", pipeline.SeverityInfo)
	events.Log("careful", pipeline.SeverityWarning)
	events.Log("broken", pipeline.SeverityError)

	out := sb.String()
	if !strings.Contains(out, "plain\n") {
		t.Error("info line missing")
	}
	if !strings.Contains(out, "warning: careful") {
		t.Error("warning prefix missing")
	}
	if !strings.Contains(out, "error: broken") {
		t.Error("error prefix missing")
	}
}

func TestConsoleEventsOutcome(t *testing.T) {
	var sb strings.Builder
	events := newConsoleEvents(&sb)

	if events.Success() {
		t.Error("success should be false before the run finished")
	}

	events.Finished(true, "Done: 2 successful, 0 failed, 0 skipped")

	if !events.Success() {
		t.Error("success should reflect the finished outcome")
	}
	if events.Outcome() != "Done: 2 successful, 0 failed, 0 skipped" {
		t.Errorf("unexpected outcome %q", events.Outcome())
	}
}
