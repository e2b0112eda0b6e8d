package extract

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/model"
)

// Defaults applied when Options fields are zero
const (
	DefaultSocketTimeout       = 30 * time.Second
	DefaultRetries             = 3
	DefaultConcurrentFragments = 4

	progressInterval = 500 * time.Millisecond
)

// Options configures the extraction client
type Options struct {
	Format              string // yt-dlp format selector
	SocketTimeout       time.Duration
	Retries             int
	ConcurrentFragments int
}

// withDefaults fills in zero fields
func (o Options) withDefaults() Options {
	if o.SocketTimeout <= 0 {
		o.SocketTimeout = DefaultSocketTimeout
	}
	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}
	if o.ConcurrentFragments <= 0 {
		o.ConcurrentFragments = DefaultConcurrentFragments
	}
	return o
}

// Resolution is the outcome of resolving or downloading a URL
type Resolution struct {
	Title        string
	ThumbnailURL string
	WebpageURL   string
	IsPlaylist   bool
	Entries      []*model.MediaEntry
}

// Client performs metadata resolution and downloads through yt-dlp
type Client struct {
	opts Options
	log  *logger.Logger
}

// NewClient creates a new extraction client
func NewClient(opts Options, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		opts: opts.withDefaults(),
		log:  log.WithComponent("extract"),
	}
}

// Resolve fetches metadata for url without downloading anything. It
// distinguishes playlists from single tracks and maps every entry the
// extractor reports, including ones that later turn out unprocessable.
func (c *Client) Resolve(ctx context.Context, url string) (*Resolution, error) {
	dl := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoWarnings().
		IgnoreErrors().
		SocketTimeout(c.opts.SocketTimeout.Seconds()).
		Retries(strconv.Itoa(c.opts.Retries))

	result, err := dl.Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to analyze URL: %w", err)
	}

	resolution, err := c.mapResult(result)
	if err != nil {
		return nil, err
	}

	c.log.Info("resolved URL",
		"title", resolution.Title,
		"playlist", resolution.IsPlaylist,
		"entries", len(resolution.Entries))
	return resolution, nil
}

// Download downloads the audio for url into outputTemplate (a yt-dlp output
// template). The progress callback, when non-nil, receives cumulative byte
// counts; total is 0 while unknown.
func (c *Client) Download(ctx context.Context, url, outputTemplate string, progress func(done, total int64)) (*Resolution, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		NoWarnings().
		IgnoreErrors().
		Format(c.opts.Format).
		Output(outputTemplate).
		SocketTimeout(c.opts.SocketTimeout.Seconds()).
		Retries(strconv.Itoa(c.opts.Retries)).
		ConcurrentFragments(c.opts.ConcurrentFragments)

	if progress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(int64(update.DownloadedBytes), int64(update.TotalBytes))
		})
	}

	result, err := c.downloadWithRetry(ctx, dl, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("download failed: %w", err)
	}

	return c.mapResult(result)
}

// downloadWithRetry attempts the download with retry logic on top of
// yt-dlp's own fragment retries
func (c *Client) downloadWithRetry(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
	const maxRetries = 1

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			c.log.Warn("retrying download", "url", url, "attempt", attempt+1)
		}

		result, err := dl.Run(ctx, url)
		if err == nil {
			return result, nil
		}

		lastErr = err
		c.log.Warn("download attempt failed", "url", url, "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// mapResult converts a yt-dlp result into a Resolution
func (c *Client) mapResult(result *ytdlp.Result) (*Resolution, error) {
	if result == nil {
		return nil, fmt.Errorf("no content found at URL")
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse extractor output: %w", err)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("no content found at URL")
	}

	root := info[0]
	resolution := &Resolution{
		Title:        optStr(root.Title),
		ThumbnailURL: optStr(root.Thumbnail),
		WebpageURL:   optStr(root.WebpageURL),
	}

	if len(root.Entries) > 0 {
		resolution.IsPlaylist = true
		resolution.Entries = make([]*model.MediaEntry, 0, len(root.Entries))
		for _, raw := range root.Entries {
			if raw == nil {
				continue
			}
			resolution.Entries = append(resolution.Entries, mapEntry(raw))
		}
		return resolution, nil
	}

	entry := mapEntry(root)
	resolution.Entries = []*model.MediaEntry{entry}
	if resolution.Title == "" {
		resolution.Title = entry.Title
	}
	return resolution, nil
}

// mapEntry converts a single extracted info block into a MediaEntry
func mapEntry(info *ytdlp.ExtractedInfo) *model.MediaEntry {
	return &model.MediaEntry{
		Title:        optStr(info.Title),
		Artist:       optStr(info.Artist),
		Uploader:     optStr(info.Uploader),
		Album:        optStr(info.Album),
		Genre:        optStr(info.Genre),
		ThumbnailURL: optStr(info.Thumbnail),
		UploadDate:   optStr(info.UploadDate),
		Ext:          info.Extension,
		Availability: model.Availability(optStr(info.Availability)),
		LiveStatus:   optStr(info.LiveStatus),
		WebpageURL:   optStr(info.WebpageURL),
		Filename:     optStr(info.Filename),
	}
}

// optStr dereferences an optional string-like field
func optStr[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
