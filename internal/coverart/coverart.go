package coverart

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nfnt/resize"

	// Register decoders for the thumbnail formats YouTube serves
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/ytmex/yt-music-extractor/internal/logger"
)

// Cover art constraints
const (
	MaxCoverSize = 500 // longest side in pixels after processing
	JPEGQuality  = 95

	FetchTimeout = 15 * time.Second
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// Processor downloads and normalizes cover art images
type Processor struct {
	client *http.Client
	log    *logger.Logger
}

// NewProcessor creates a new cover art processor
func NewProcessor(log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Default()
	}
	return &Processor{
		client: &http.Client{Timeout: FetchTimeout},
		log:    log.WithComponent("coverart"),
	}
}

// Fetch downloads the image at url into destPath. The request is bounded by
// FetchTimeout; some thumbnail hosts reject requests without a browser
// user agent.
func (p *Processor) Fetch(url, destPath string) error {
	if url == "" {
		return fmt.Errorf("empty thumbnail URL")
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download image: status %d (URL: %s)", resp.StatusCode, url)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write image data: %w", err)
	}
	return nil
}

// Process reads the image at sourcePath, center-crops it to a square,
// downscales it to at most MaxCoverSize pixels per side without ever
// upscaling, and writes the result as JPEG to destPath. It returns destPath
// and true on success. On any failure it logs a warning and returns
// ("", false); the source file is left in place either way.
func (p *Processor) Process(sourcePath, destPath string) (string, bool) {
	img, err := decodeImage(sourcePath)
	if err != nil {
		p.log.Warn("cover art decode failed", "path", sourcePath, "error", err)
		return "", false
	}

	img = centerCropSquare(img)

	bounds := img.Bounds()
	if bounds.Dx() > MaxCoverSize {
		img = resize.Resize(MaxCoverSize, MaxCoverSize, img, resize.Lanczos3)
	}

	if err := encodeJPEG(img, destPath); err != nil {
		p.log.Warn("cover art encode failed", "path", destPath, "error", err)
		return "", false
	}

	return destPath, true
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// centerCropSquare crops the largest centered square out of img. Square
// images are returned unchanged.
func centerCropSquare(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == h {
		return img
	}

	side := w
	if h < side {
		side = h
	}

	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2
	rect := image.Rect(x0, y0, x0+side, y0+side)

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}

	// Decoder returned an image type without SubImage; copy the region
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			out.Set(x, y, img.At(x0+x, y0+y))
		}
	}
	return out
}

func encodeJPEG(img image.Image, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, img, &jpeg.Options{Quality: JPEGQuality})
}
