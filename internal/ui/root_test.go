package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytmex/yt-music-extractor/internal/pipeline"
)

func newTestRootUI(t *testing.T) *RootUI {
	t.Helper()
	app := test.NewApp()
	window := app.NewWindow("test")
	factory := func(events pipeline.Events, qualityFormat string, embedMetadata bool) *pipeline.Runner {
		return nil
	}
	return NewRootUI(window, app, factory, nil)
}

func TestValidateURL(t *testing.T) {
	ui := newTestRootUI(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"whitespace only", "   ", false},
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", false},
		{"music URL", "https://music.youtube.com/watch?v=abc123", false},
		{"playlist URL", "https://www.youtube.com/playlist?list=PLabc", false},
		{"mobile URL", "https://m.youtube.com/watch?v=abc123", false},
		{"bare host", "http://youtube.com/watch?v=abc", false},
		{"no scheme", "youtube.com/watch?v=abc", true},
		{"ftp scheme", "ftp://youtube.com/watch?v=abc", true},
		{"other site", "https://vimeo.com/12345", true},
		{"lookalike host", "https://notyoutube.com/watch?v=abc", true},
		{"subdomain lookalike", "https://youtube.com.evil.example/watch", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ui.validateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestAppendLogCapped(t *testing.T) {
	ui := newTestRootUI(t)

	for i := 0; i < RootLogLines+50; i++ {
		ui.appendLog("line", pipeline.SeverityInfo)
	}

	ui.mu.Lock()
	defer ui.mu.Unlock()
	if len(ui.logLines) != RootLogLines {
		t.Errorf("log length = %d, want %d", len(ui.logLines), RootLogLines)
	}
}

func TestSeverityPrefix(t *testing.T) {
	if severityPrefix(pipeline.SeverityInfo) != "" {
		t.Error("info lines should have no prefix")
	}
	for _, severity := range []pipeline.Severity{
		pipeline.SeveritySuccess,
		pipeline.SeverityWarning,
		pipeline.SeverityError,
	} {
		if severityPrefix(severity) == "" {
			t.Errorf("severity %s should have a prefix", severity)
		}
	}
}

func TestFinishedResetsRunState(t *testing.T) {
	ui := newTestRootUI(t)

	ui.mu.Lock()
	ui.running = true
	ui.mu.Unlock()

	ui.Finished(true, "Done: 1 successful, 0 failed, 0 skipped")

	ui.mu.Lock()
	defer ui.mu.Unlock()
	if ui.running {
		t.Error("running should be false after Finished")
	}
	if ui.runner != nil {
		t.Error("runner should be cleared after Finished")
	}
}
