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
	"navitunes/internal/syncer"
)

func main() {
	// Command line flags
	var (
		srcFlag         = flag.String("src", "", "Music library source directory (overrides config)")
		dstFlag         = flag.String("dst", "", "Destination directory (overrides config)")
		concurrencyFlag = flag.Int("concurrency", 0, "Number of concurrent rsync transfers (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
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
	if *srcFlag != "" {
		settings.MusicSource = *srcFlag
	} else if flag.NArg() > 0 {
		settings.MusicSource = flag.Arg(0)
	}
	if *dstFlag != "" {
		settings.MusicDest = *dstFlag
	} else if flag.NArg() > 1 {
		settings.MusicDest = flag.Arg(1)
	}
	if *concurrencyFlag > 0 {
		settings.SyncConcurrency = *concurrencyFlag
	}

	if settings.MusicSource == "" || settings.MusicDest == "" {
		fmt.Println("navitunes-sync - Copy a music library with rsync, one artist folder at a time")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  navitunes-sync -src <library> -dst <destination> [options]")
		fmt.Println("  navitunes-sync <library> <destination> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: navitunes-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := syncer.Available(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	m := syncer.New(settings.SyncConcurrency, printer.Event)

	summary, err := m.Sync(ctx, settings.MusicSource, settings.MusicDest)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nSync cancelled. Rerun to resume; rsync keeps partial transfers.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during sync: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	printer.Summary(summary)
	if summary.Failed() > 0 {
		os.Exit(1)
	}
}
