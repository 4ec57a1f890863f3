package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"navitunes/internal/cli"
	"navitunes/internal/config"
	"navitunes/internal/library"
)

func main() {
	// Command line flags
	var (
		xmlFlag      = flag.String("xml", "", "Path to iTunes Music Library.xml")
		outFlag      = flag.String("out", "", "Output directory for playlist files (overrides config)")
		extFlag      = flag.String("ext", "", "Playlist file extension, .m3u or .m3u8 (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		backfillFlag = flag.Bool("backfill-tags", false, "Read artist/title from ID3 tags when the library lacks them")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *xmlFlag != "" {
		settings.LibraryXML = *xmlFlag
	} else if flag.NArg() > 0 {
		settings.LibraryXML = flag.Arg(0)
	}
	if *outFlag != "" {
		settings.PlaylistDir = *outFlag
	}
	if *extFlag != "" {
		settings.PlaylistExtension = *extFlag
	}
	if *backfillFlag {
		settings.BackfillTags = true
	}

	if settings.LibraryXML == "" {
		fmt.Println("navitunes-extract - Write iTunes playlists as .m3u files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  navitunes-extract -xml <Library.xml> [options]")
		fmt.Println("  navitunes-extract <Library.xml> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: navitunes-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	printer := cli.NewPrinter(os.Stdout, *verboseFlag)

	lib, err := library.Load(settings.LibraryXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading library: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d tracks, %d user playlists\n\n", len(lib.Tracks), len(lib.UserPlaylists()))

	ex := library.NewExtractor(lib, library.Options{
		Extension:    settings.PlaylistExtension,
		BackfillTags: settings.BackfillTags,
	}, printer.Event)

	summary, err := ex.Run(ctx, settings.PlaylistOutputDir())
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExtraction cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during extraction: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	printer.Summary(summary)
	if summary.Failed() > 0 {
		os.Exit(1)
	}
}
