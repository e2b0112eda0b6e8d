package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytmex/yt-music-extractor/internal/config"
	"github.com/ytmex/yt-music-extractor/internal/convert"
	"github.com/ytmex/yt-music-extractor/internal/coverart"
	"github.com/ytmex/yt-music-extractor/internal/extract"
	"github.com/ytmex/yt-music-extractor/internal/logger"
	"github.com/ytmex/yt-music-extractor/internal/pipeline"
	"github.com/ytmex/yt-music-extractor/internal/platform"
	"github.com/ytmex/yt-music-extractor/internal/tagging"
)

// Flag values
var (
	outputDirFlag  string
	qualityFlag    int
	parallelFlag   int
	noMetadataFlag bool
	noCleanupFlag  bool
	ffmpegFlag     string
	ffprobeFlag    string
	verboseFlag    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ytmex-cli [url]",
	Short: "Download music from YouTube as tagged M4A files",
	Long: `ytmex-cli downloads a YouTube track or playlist, converts the audio
to AAC/M4A and embeds metadata with square cover art. When no URL is
given on the command line it is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownload,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputDirFlag, "out", "o", "", "Output directory (default: the user's Downloads folder)")
	rootCmd.Flags().IntVarP(&qualityFlag, "quality", "q", config.DefaultQualityIndex, "Audio quality index, 0 is best (0-3)")
	rootCmd.Flags().IntVarP(&parallelFlag, "parallel", "p", config.DefaultParallelCount, "Parallel track workers (1-8)")
	rootCmd.Flags().BoolVar(&noMetadataFlag, "no-metadata", false, "Skip tags and cover art")
	rootCmd.Flags().BoolVar(&noCleanupFlag, "no-cleanup", false, "Keep leftover files after the run")
	rootCmd.Flags().StringVar(&ffmpegFlag, "ffmpeg", "", "Path to the ffmpeg binary (default: $PATH)")
	rootCmd.Flags().StringVar(&ffprobeFlag, "ffprobe", "", "Path to the ffprobe binary (default: $PATH)")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

func runDownload(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) == 1 {
		url = strings.TrimSpace(args[0])
	}
	if url == "" {
		var err error
		url, err = promptURL(cmd)
		if err != nil {
			return err
		}
	}
	if url == "" {
		return fmt.Errorf("no URL given")
	}

	outputDir := outputDirFlag
	if outputDir == "" {
		var err error
		outputDir, err = platform.GetHomeDownloadsDir()
		if err != nil {
			return fmt.Errorf("cannot determine output directory: %w", err)
		}
	}

	level := "info"
	if verboseFlag {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level})

	embedMetadata := !noMetadataFlag
	extractor := extract.NewClient(extract.Options{Format: config.QualityFormatFor(qualityFlag)}, log)
	covers := coverart.NewProcessor(log)
	converter := convert.NewService(ffmpegFlag, ffprobeFlag, log)
	processor := tagging.NewProcessor(converter, embedMetadata, log)

	events := newConsoleEvents(cmd.OutOrStdout())
	runner := pipeline.NewRunner(extractor, covers, processor, events, log)

	// Ctrl-C cancels the run cooperatively; a second one kills the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner.Run(ctx, pipeline.Request{
		URL:       url,
		OutputDir: outputDir,
		Parallel:  parallelFlag,
		Metadata:  embedMetadata,
		Cleanup:   !noCleanupFlag,
	})

	if !events.Success() {
		return fmt.Errorf("%s", events.Outcome())
	}
	return nil
}

// promptURL reads a URL from the command's input stream
func promptURL(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter a YouTube URL: ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no URL given")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
