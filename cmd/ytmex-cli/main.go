package main

import (
	"github.com/ytmex/yt-music-extractor/cmd/ytmex-cli/cmd"
)

func main() {
	// Execute the root command (defined in cmd/root.go)
	cmd.Execute()
}
