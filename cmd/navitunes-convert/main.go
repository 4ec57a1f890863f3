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
	"navitunes/internal/convert"
)

func main() {
	// Command line flags
	var (
		dirFlag     = flag.String("dir", "", "Directory containing .m3u playlists to convert")
		sourceFlag  = flag.String("source", "", "Path prefix to replace (overrides config)")
		targetFlag  = flag.String("target", "", "Replacement prefix, e.g. ../ or /music/ (overrides config)")
		stripFlag   = flag.String("strip", "", "Subpath to remove after the prefix (overrides config)")
		detectFlag  = flag.Bool("detect", false, "Print the suggested source prefix and exit")
		previewFlag = flag.Bool("preview", false, "Show sample conversions without writing anything")
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
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
	dir := *dirFlag
	if dir == "" && flag.NArg() > 0 {
		dir = flag.Arg(0)
	}
	if dir == "" {
		dir = settings.PlaylistOutputDir()
	}
	if *sourceFlag != "" {
		settings.SourcePrefix = *sourceFlag
	}
	if *targetFlag != "" {
		settings.TargetPrefix = *targetFlag
	}
	if *stripFlag != "" {
		settings.StripSubpath = *stripFlag
	}

	if *detectFlag {
		prefix, err := convert.DetectPrefix(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error detecting prefix: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(prefix)
		return
	}

	if settings.SourcePrefix == "" {
		fmt.Println("navitunes-convert - Rewrite Windows paths in playlists for a Linux server")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  navitunes-convert -dir <playlists> -source <prefix> -target <prefix> [options]")
		fmt.Println()
		fmt.Println("Use -detect to get a suggested source prefix.")
		fmt.Println("For interactive mode, use: navitunes-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	printer := cli.NewPrinter(os.Stdout, *verboseFlag)
	c := convert.New(settings.ToPrefixRule(), printer.Event)

	if *previewFlag {
		samples, err := c.Preview(dir, 5)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error previewing: %v\n", err)
			os.Exit(1)
		}
		if len(samples) == 0 {
			fmt.Println("No track lines to preview.")
			return
		}
		for _, s := range samples {
			fmt.Printf("  %s\n→ %s\n\n", s.Input, s.Output)
		}
		return
	}

	names, err := convert.Candidates(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory: %v\n", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no .m3u files found in %s\n", dir)
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

	summary, err := c.Run(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nConversion cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during conversion: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	printer.Summary(summary)
	if summary.Failed() > 0 {
		os.Exit(1)
	}
}
