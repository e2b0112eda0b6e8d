package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestLocateAudioFile_ExactMatch(t *testing.T) {
	tempDir := t.TempDir()
	touch(t, tempDir, "My Track.m4a")
	touch(t, tempDir, "My Track.jpg")
	touch(t, tempDir, "My Track.m4a.part")

	found, err := LocateAudioFile(tempDir, "My Track")
	if err != nil {
		t.Fatalf("LocateAudioFile failed: %v", err)
	}
	if filepath.Base(found) != "My Track.m4a" {
		t.Errorf("Expected 'My Track.m4a', got %s", filepath.Base(found))
	}
}

func TestLocateAudioFile_SanitizedTitle(t *testing.T) {
	tempDir := t.TempDir()
	touch(t, tempDir, "AC_DC - Back In Black.webm")

	found, err := LocateAudioFile(tempDir, "AC/DC - Back In Black")
	if err != nil {
		t.Fatalf("LocateAudioFile failed: %v", err)
	}
	if filepath.Base(found) != "AC_DC - Back In Black.webm" {
		t.Errorf("Unexpected match: %s", filepath.Base(found))
	}
}

func TestLocateAudioFile_RestrictedFilenames(t *testing.T) {
	// yt-dlp's restricted mode swaps spaces for underscores
	tempDir := t.TempDir()
	touch(t, tempDir, "My_Great_Track.opus")

	found, err := LocateAudioFile(tempDir, "My Great Track")
	if err != nil {
		t.Fatalf("LocateAudioFile failed: %v", err)
	}
	if filepath.Base(found) != "My_Great_Track.opus" {
		t.Errorf("Unexpected match: %s", filepath.Base(found))
	}
}

func TestLocateAudioFile_SkipsArtifacts(t *testing.T) {
	tempDir := t.TempDir()
	touch(t, tempDir, "Track.m4a.part")
	touch(t, tempDir, "Track.ytdl")
	touch(t, tempDir, "Track.info.json")
	touch(t, tempDir, "Track.webp")

	if _, err := LocateAudioFile(tempDir, "Track"); err == nil {
		t.Error("Expected error when only artifacts are present, got nil")
	}
}

func TestLocateAudioFile_EmptyTitle(t *testing.T) {
	if _, err := LocateAudioFile(t.TempDir(), "   "); err == nil {
		t.Error("Expected error for empty title, got nil")
	}
}

func TestCleanupArtifacts(t *testing.T) {
	tempDir := t.TempDir()
	touch(t, tempDir, "Track One.m4a")
	touch(t, tempDir, "Track One.jpg")
	touch(t, tempDir, "cover.jpg")
	touch(t, tempDir, "Track One.info.json")
	touch(t, tempDir, "Track One.webm")
	touch(t, tempDir, "leftover.part")
	if err := os.Mkdir(filepath.Join(tempDir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	keep := func(name string) bool {
		ext := filepath.Ext(name)
		return ext == ".m4a" || ext == ".jpg"
	}

	removed := CleanupArtifacts(tempDir, keep)
	if removed != 3 {
		t.Errorf("Expected 3 files removed, got %d", removed)
	}

	for _, name := range []string{"Track One.m4a", "Track One.jpg", "cover.jpg"} {
		if _, err := os.Stat(filepath.Join(tempDir, name)); err != nil {
			t.Errorf("Expected %s to survive cleanup: %v", name, err)
		}
	}
	for _, name := range []string{"Track One.info.json", "Track One.webm", "leftover.part"} {
		if _, err := os.Stat(filepath.Join(tempDir, name)); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", name)
		}
	}
	if _, err := os.Stat(filepath.Join(tempDir, "nested")); err != nil {
		t.Errorf("Expected subdirectory to survive cleanup: %v", err)
	}
}

func TestCleanupArtifacts_MissingDir(t *testing.T) {
	if removed := CleanupArtifacts("/nonexistent/path", nil); removed != 0 {
		t.Errorf("Expected 0 removed for missing dir, got %d", removed)
	}
}
