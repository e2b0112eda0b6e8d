package ui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytmex/yt-music-extractor/internal/config"
	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/pipeline"
	"github.com/ytmex/yt-music-extractor/internal/platform"
)

// Window layout constants
const (
	RootWindowWidth  = 560
	RootWindowHeight = 640
	RootCoverSize    = 160
	RootLogLines     = 500
)

// RunnerFactory builds a runner bound to an event sink and the selected
// quality format. The GUI creates a fresh runner per run.
type RunnerFactory func(events pipeline.Events, qualityFormat string, embedMetadata bool) *pipeline.Runner

// hostSuffixes lists the accepted source hosts
var acceptedHosts = []string{
	"youtube.com",
	"www.youtube.com",
	"music.youtube.com",
	"m.youtube.com",
	"youtu.be",
}

// logLine is one severity-tagged row in the activity log
type logLine struct {
	text     string
	severity pipeline.Severity
}

// RootUI is the main window. It implements pipeline.Events; the runner
// calls those methods from worker goroutines and RootUI marshals every
// update onto the UI thread with fyne.Do.
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	settings *config.Settings
	factory  RunnerFactory
	log      *logger.Logger

	urlEntry       *widget.Entry
	downloadBtn    *widget.Button
	cancelBtn      *widget.Button
	openFolderBtn  *widget.Button
	qualitySelect  *widget.Select
	parallelSelect *widget.Select
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label
	trackLabel     *widget.Label
	coverImage     *canvas.Image
	logList        *widget.List

	mu       sync.Mutex
	runner   *pipeline.Runner
	running  bool
	logLines []logLine
}

// NewRootUI creates and initializes the main window content
func NewRootUI(window fyne.Window, app fyne.App, factory RunnerFactory, log *logger.Logger) *RootUI {
	if log == nil {
		log = logger.Default()
	}
	settings := config.NewSettings(app)

	// Ensure the output directory exists up front
	platform.CreateDirectoryIfNotExists(settings.GetOutputDirectory())

	ui := &RootUI{
		window:   window,
		app:      app,
		settings: settings,
		factory:  factory,
		log:      log.WithComponent("ui"),
	}

	window.SetTitle("YT Music Extractor")
	ui.setupUI()
	return ui
}

// Settings returns the persistent application settings
func (ui *RootUI) Settings() *config.Settings {
	return ui.settings
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// URL row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("YouTube track or playlist URL")
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	pasteBtn := widget.NewButtonWithIcon("", theme.ContentPasteIcon(), func() {
		ui.urlEntry.SetText(ui.app.Clipboard().Content())
	})
	clearBtn := widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		ui.urlEntry.SetText("")
	})

	ui.downloadBtn = widget.NewButtonWithIcon("Download", theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), ui.onCancelClick)
	ui.cancelBtn.Disable()

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	urlRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(pasteBtn, clearBtn, settingsBtn),
		ui.urlEntry,
	)

	// Per-run option row; defaults come from settings
	ui.qualitySelect = widget.NewSelect(config.QualityLabels, nil)
	ui.qualitySelect.SetSelectedIndex(ui.settings.GetQualityIndex())

	parallelOptions := make([]string, 0, config.MaxParallelCount)
	for i := config.MinParallelCount; i <= config.MaxParallelCount; i++ {
		parallelOptions = append(parallelOptions, strconv.Itoa(i))
	}
	ui.parallelSelect = widget.NewSelect(parallelOptions, nil)
	ui.parallelSelect.SetSelected(strconv.Itoa(ui.settings.GetParallelCount()))

	optionsRow := container.NewHBox(
		widget.NewLabel("Quality"), ui.qualitySelect,
		widget.NewLabel("Parallel"), ui.parallelSelect,
		ui.downloadBtn, ui.cancelBtn,
	)

	// Progress block
	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = 100
	ui.statusLabel = widget.NewLabel("Ready")
	ui.trackLabel = widget.NewLabel("")
	ui.trackLabel.Truncation = fyne.TextTruncateEllipsis

	// Cover preview, filled once the run's artwork is processed
	ui.coverImage = canvas.NewImageFromResource(theme.FileAudioIcon())
	ui.coverImage.FillMode = canvas.ImageFillContain
	ui.coverImage.SetMinSize(fyne.NewSize(RootCoverSize, RootCoverSize))

	ui.openFolderBtn = widget.NewButtonWithIcon("Open folder", theme.FolderOpenIcon(), ui.onOpenFolder)

	statusBlock := container.NewVBox(
		ui.statusLabel,
		ui.progressBar,
		ui.trackLabel,
		ui.openFolderBtn,
	)
	infoRow := container.NewBorder(nil, nil, ui.coverImage, nil, statusBlock)

	// Activity log
	ui.logList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.logLines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			if id >= len(ui.logLines) {
				return
			}
			line := ui.logLines[id]
			label := obj.(*widget.Label)
			label.SetText(severityPrefix(line.severity) + line.text)
		},
	)

	content := container.NewBorder(
		container.NewVBox(urlRow, optionsRow, infoRow),
		nil, nil, nil,
		ui.logList,
	)

	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(RootWindowWidth, RootWindowHeight))
}

// validateURL accepts only YouTube track and playlist URLs
func (ui *RootUI) validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil // Empty is allowed
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	host := strings.ToLower(parsed.Hostname())
	for _, accepted := range acceptedHosts {
		if host == accepted {
			return nil
		}
	}
	return fmt.Errorf("not a YouTube URL")
}

// onDownloadClick starts a run from the current inputs
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.appendLog("Please enter a URL", pipeline.SeverityWarning)
		return
	}
	if err := ui.validateURL(urlText); err != nil {
		ui.appendLog("Invalid URL: "+err.Error(), pipeline.SeverityError)
		return
	}

	ui.mu.Lock()
	if ui.running {
		ui.mu.Unlock()
		ui.appendLog("A download is already in progress", pipeline.SeverityWarning)
		return
	}
	ui.running = true
	ui.mu.Unlock()

	// Persist the per-run selections as the new defaults
	qualityIndex := ui.qualitySelect.SelectedIndex()
	ui.settings.SetQualityIndex(qualityIndex)
	parallel, err := strconv.Atoi(ui.parallelSelect.Selected)
	if err != nil {
		parallel = config.DefaultParallelCount
	}
	ui.settings.SetParallelCount(parallel)

	req := pipeline.Request{
		URL:       urlText,
		OutputDir: ui.settings.GetOutputDirectory(),
		Parallel:  parallel,
		Metadata:  ui.settings.GetMetadataEnabled(),
		Cleanup:   ui.settings.GetCleanupEnabled(),
	}

	runner := ui.factory(ui, config.QualityFormatFor(qualityIndex), req.Metadata)
	ui.mu.Lock()
	ui.runner = runner
	ui.logLines = nil
	ui.mu.Unlock()

	ui.log.Info("starting run", "url", urlText, "parallel", parallel, "quality", qualityIndex)

	fyne.Do(func() {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
		ui.progressBar.SetValue(0)
		ui.trackLabel.SetText("")
		ui.coverImage.Resource = theme.FileAudioIcon()
		ui.coverImage.File = ""
		ui.coverImage.Refresh()
		ui.logList.Refresh()
	})

	go runner.Run(context.Background(), req)
}

// onCancelClick requests cancellation of the active run
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	runner := ui.runner
	ui.mu.Unlock()
	if runner != nil {
		runner.Cancel()
	}
}

// onOpenFolder opens the output directory in the system file manager
func (ui *RootUI) onOpenFolder() {
	dir := ui.settings.GetOutputDirectory()
	if err := platform.OpenFolder(dir); err != nil {
		ui.appendLog("Cannot open folder: "+err.Error(), pipeline.SeverityError)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, func() {
		fyne.Do(func() {
			ui.app.Settings().SetTheme(NewPurpleTheme(ui.settings.GetLightMode()))
			ui.qualitySelect.SetSelectedIndex(ui.settings.GetQualityIndex())
			ui.parallelSelect.SetSelected(strconv.Itoa(ui.settings.GetParallelCount()))
		})
	})
}

// appendLog adds a line to the activity log and scrolls to it
func (ui *RootUI) appendLog(message string, severity pipeline.Severity) {
	ui.mu.Lock()
	ui.logLines = append(ui.logLines, logLine{text: message, severity: severity})
	if len(ui.logLines) > RootLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-RootLogLines:]
	}
	last := len(ui.logLines) - 1
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.logList.Refresh()
		ui.logList.ScrollTo(last)
	})
}

func severityPrefix(severity pipeline.Severity) string {
	switch severity {
	case pipeline.SeveritySuccess:
		return "✓ "
	case pipeline.SeverityWarning:
		return "⚠ "
	case pipeline.SeverityError:
		return "✗ "
	default:
		return ""
	}
}

// Progress implements pipeline.Events
func (ui *RootUI) Progress(percent int) {
	fyne.Do(func() {
		ui.progressBar.SetValue(float64(percent))
	})
}

// Status implements pipeline.Events
func (ui *RootUI) Status(message string) {
	fyne.Do(func() {
		ui.statusLabel.SetText(message)
	})
}

// Log implements pipeline.Events
func (ui *RootUI) Log(message string, severity pipeline.Severity) {
	ui.appendLog(message, severity)
}

// ThumbnailReady implements pipeline.Events
func (ui *RootUI) ThumbnailReady(path string) {
	fyne.Do(func() {
		ui.coverImage.Resource = nil
		ui.coverImage.File = path
		ui.coverImage.Refresh()
	})
}

// TrackProcessed implements pipeline.Events
func (ui *RootUI) TrackProcessed(title string, current, total int) {
	fyne.Do(func() {
		ui.trackLabel.SetText(fmt.Sprintf("%d/%d  %s", current, total, title))
	})
}

// Finished implements pipeline.Events
func (ui *RootUI) Finished(success bool, message string) {
	ui.mu.Lock()
	ui.running = false
	ui.runner = nil
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.downloadBtn.Enable()
		ui.cancelBtn.Disable()
		ui.statusLabel.SetText(message)
	})

	ui.app.SendNotification(&fyne.Notification{
		Title:   "YT Music Extractor",
		Content: message,
	})
}
