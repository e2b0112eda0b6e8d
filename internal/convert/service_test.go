package convert

import (
	"context"
	"testing"
)

func TestNeedsConversion(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/music/track.webm", true},
		{"/music/track.opus", true},
		{"/music/track.mp4", true},
		{"/music/track.m4a", false},
		{"/music/track.M4A", false},
		{"/music/track", true},
	}

	for _, test := range tests {
		if got := NeedsConversion(test.path); got != test.expected {
			t.Errorf("NeedsConversion(%s) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestToM4A_AlreadyM4A(t *testing.T) {
	s := NewService("", "", nil)

	// .m4a input must be returned as-is without invoking ffmpeg
	out, err := s.ToM4A(context.Background(), "/music/track.m4a")
	if err != nil {
		t.Fatalf("ToM4A on .m4a input should not fail: %v", err)
	}
	if out != "/music/track.m4a" {
		t.Errorf("Expected input path back, got %s", out)
	}
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService("", "", nil)
	if s.ffmpegPath != "ffmpeg" || s.ffprobePath != "ffprobe" {
		t.Errorf("Expected PATH-resolved binary names, got %s / %s", s.ffmpegPath, s.ffprobePath)
	}

	s = NewService("/opt/ffmpeg", "/opt/ffprobe", nil)
	if s.ffmpegPath != "/opt/ffmpeg" || s.ffprobePath != "/opt/ffprobe" {
		t.Error("Explicit binary paths should be preserved")
	}
}
