package coverart

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func decodeBounds(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open processed cover: %v", err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("Processed cover is not a valid JPEG: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcess_LandscapeThumbnail(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "thumb.png")
	dst := filepath.Join(tempDir, "cover.jpg")
	writePNG(t, src, 1920, 1080)

	p := NewProcessor(nil)
	out, ok := p.Process(src, dst)
	if !ok {
		t.Fatal("Process failed on a valid landscape image")
	}
	if out != dst {
		t.Errorf("Expected output path %s, got %s", dst, out)
	}

	w, h := decodeBounds(t, dst)
	if w != h {
		t.Errorf("Processed cover is not square: %dx%d", w, h)
	}
	if w > MaxCoverSize {
		t.Errorf("Processed cover exceeds %dpx: %dx%d", MaxCoverSize, w, h)
	}

	// Source must survive processing
	if _, err := os.Stat(src); err != nil {
		t.Errorf("Source image should not be deleted: %v", err)
	}
}

func TestProcess_SmallSquareUnchanged(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "thumb.png")
	dst := filepath.Join(tempDir, "cover.jpg")
	writePNG(t, src, 100, 100)

	p := NewProcessor(nil)
	if _, ok := p.Process(src, dst); !ok {
		t.Fatal("Process failed on a valid square image")
	}

	w, h := decodeBounds(t, dst)
	if w != 100 || h != 100 {
		t.Errorf("Small square image should keep its dimensions, got %dx%d", w, h)
	}
}

func TestProcess_PortraitThumbnail(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "thumb.png")
	dst := filepath.Join(tempDir, "cover.jpg")
	writePNG(t, src, 600, 1200)

	p := NewProcessor(nil)
	if _, ok := p.Process(src, dst); !ok {
		t.Fatal("Process failed on a valid portrait image")
	}

	w, h := decodeBounds(t, dst)
	if w != h {
		t.Errorf("Processed cover is not square: %dx%d", w, h)
	}
	if w != MaxCoverSize {
		t.Errorf("600x1200 source should produce a %dpx cover, got %dx%d", MaxCoverSize, w, h)
	}
}

func TestProcess_CorruptInput(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "garbage.png")
	dst := filepath.Join(tempDir, "cover.jpg")
	if err := os.WriteFile(src, []byte("not an image at all"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewProcessor(nil)
	out, ok := p.Process(src, dst)
	if ok {
		t.Error("Process should fail on corrupt input")
	}
	if out != "" {
		t.Errorf("Failed processing should return an empty path, got %s", out)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("No output file should be written for corrupt input")
	}
}

func TestProcess_MissingInput(t *testing.T) {
	p := NewProcessor(nil)
	if _, ok := p.Process("/nonexistent/thumb.jpg", filepath.Join(t.TempDir(), "cover.jpg")); ok {
		t.Error("Process should fail when the source file is missing")
	}
}

func TestCenterCropSquare(t *testing.T) {
	tests := []struct {
		w, h     int
		expected int
	}{
		{1920, 1080, 1080},
		{1080, 1920, 1080},
		{640, 640, 640},
		{3, 5, 3},
	}

	for _, test := range tests {
		img := image.NewRGBA(image.Rect(0, 0, test.w, test.h))
		cropped := centerCropSquare(img)
		bounds := cropped.Bounds()
		if bounds.Dx() != test.expected || bounds.Dy() != test.expected {
			t.Errorf("centerCropSquare(%dx%d) = %dx%d, expected %dx%d square",
				test.w, test.h, bounds.Dx(), bounds.Dy(), test.expected, test.expected)
		}
	}
}

func TestFetch(t *testing.T) {
	tempDir := t.TempDir()
	imgPath := filepath.Join(tempDir, "served.png")
	writePNG(t, imgPath, 64, 64)
	payload, err := os.ReadFile(imgPath)
	if err != nil {
		t.Fatal(err)
	}

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer server.Close()

	dst := filepath.Join(tempDir, "fetched.png")
	p := NewProcessor(nil)
	if err := p.Fetch(server.URL, dst); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Fetched file missing: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("Fetched %d bytes, expected %d", len(data), len(payload))
	}
	if gotUA == "" {
		t.Error("Fetch should send a user agent")
	}
}

func TestFetch_Errors(t *testing.T) {
	p := NewProcessor(nil)

	if err := p.Fetch("", filepath.Join(t.TempDir(), "x.jpg")); err == nil {
		t.Error("Expected error for empty URL")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if err := p.Fetch(server.URL, filepath.Join(t.TempDir(), "x.jpg")); err == nil {
		t.Error("Expected error for 404 response")
	}
}
