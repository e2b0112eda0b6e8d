package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytmex/yt-music-extractor/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	outputDirEntry *widget.Entry
	qualitySelect  *widget.Select
	parallelSelect *widget.Select
	metadataCheck  *widget.Check
	cleanupCheck   *widget.Check
	lightModeCheck *widget.Check
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved is
// called after a confirmed save.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, onSaved func()) {
	sd := NewSettingsDialog(settings, window, onSaved)
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Output directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Audio quality selection
	sd.qualitySelect = widget.NewSelect(config.QualityLabels, nil)

	// Parallel processing count
	parallelOptions := make([]string, 0, config.MaxParallelCount)
	for i := config.MinParallelCount; i <= config.MaxParallelCount; i++ {
		parallelOptions = append(parallelOptions, strconv.Itoa(i))
	}
	sd.parallelSelect = widget.NewSelect(parallelOptions, nil)

	// Behavior toggles
	sd.metadataCheck = widget.NewCheck("Embed metadata and cover art", nil)
	sd.cleanupCheck = widget.NewCheck("Remove leftover files after a run", nil)
	sd.lightModeCheck = widget.NewCheck("Light theme", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Output Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Output Directory:"),
		outputDirRow,

		widget.NewLabel("Audio Quality:"),
		sd.qualitySelect,

		widget.NewLabel("Parallel Processing:"),
		sd.parallelSelect,

		widget.NewSeparator(),
		widget.NewLabel("Behavior"),
		widget.NewSeparator(),

		sd.metadataCheck,
		sd.cleanupCheck,
		sd.lightModeCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(480, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.qualitySelect.SetSelectedIndex(sd.settings.GetQualityIndex())
	sd.parallelSelect.SetSelected(strconv.Itoa(sd.settings.GetParallelCount()))
	sd.metadataCheck.SetChecked(sd.settings.GetMetadataEnabled())
	sd.cleanupCheck.SetChecked(sd.settings.GetCleanupEnabled())
	sd.lightModeCheck.SetChecked(sd.settings.GetLightMode())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}

	if idx := sd.qualitySelect.SelectedIndex(); idx >= 0 {
		sd.settings.SetQualityIndex(idx)
	}

	if sd.parallelSelect.Selected != "" {
		if parallel, err := strconv.Atoi(sd.parallelSelect.Selected); err == nil {
			sd.settings.SetParallelCount(parallel)
		}
	}

	sd.settings.SetMetadataEnabled(sd.metadataCheck.Checked)
	sd.settings.SetCleanupEnabled(sd.cleanupCheck.Checked)
	sd.settings.SetLightMode(sd.lightModeCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
