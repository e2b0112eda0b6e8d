package main

import (
	"fmt"

	"fyne.io/fyne/v2/app"

	"github.com/ytmex/yt-music-extractor/internal/convert"
	"github.com/ytmex/yt-music-extractor/internal/coverart"
	"github.com/ytmex/yt-music-extractor/internal/extract"
	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/pipeline"
	"github.com/ytmex/yt-music-extractor/internal/tagging"
	"github.com/ytmex/yt-music-extractor/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytmex.yt-music-extractor"
	AppName = "YT Music Extractor"
)

func main() {
	log := logger.New(logger.Config{})
	log.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Each run gets a fresh runner bound to the selected quality
	factory := func(events pipeline.Events, qualityFormat string, embedMetadata bool) *pipeline.Runner {
		extractor := extract.NewClient(extract.Options{Format: qualityFormat}, log)
		covers := coverart.NewProcessor(log)
		converter := convert.NewService("", "", log)
		processor := tagging.NewProcessor(converter, embedMetadata, log)
		return pipeline.NewRunner(extractor, covers, processor, events, log)
	}

	rootUI := ui.NewRootUI(myWindow, myApp, factory, log)
	myApp.Settings().SetTheme(ui.NewPurpleTheme(rootUI.Settings().GetLightMode()))

	myWindow.ShowAndRun()
}
