package ui

// Package ui contains the Fyne-based desktop interface. The main window
// drives runs through a RunnerFactory and renders their progress, activity
// log and cover art; updates arriving from worker goroutines are marshalled
// onto the UI thread with fyne.Do.
