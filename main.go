package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"youtube2mp3/cli"
	"youtube2mp3/config"
	"youtube2mp3/console"
	"youtube2mp3/dispatch"
	"youtube2mp3/history"
	"youtube2mp3/urls"
	"youtube2mp3/yt"

	"github.com/Strum355/log"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

const (
	exitOK          = 0
	exitSetup       = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log.InitSimpleLogger(&log.Config{Output: os.Stderr})

	// Sets up Configurations for Viper
	config.InitConfig()
	settings := config.Load()

	name := filepath.Base(os.Args[0])
	opts, err := cli.Parse(name, args, os.Stderr, settings.Workers)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		fmt.Fprintf(os.Stderr, "Try '%s --help' for more information.\n", name)
		return exitUsage
	}
	if opts.JSONLogs {
		log.InitJSONLogger(&log.Config{Output: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	converter := yt.NewConverter(settings)
	if opts.Install {
		tools, err := yt.Install(ctx)
		if err != nil {
			log.WithError(err).Error("Could not install tools")
			return exitSetup
		}
		converter.Use(tools)
	}

	candidates := []string{opts.URL}
	if opts.File != "" {
		candidates, err = urls.ReadFile(opts.File)
		if err != nil {
			log.WithError(err).Error("Could not read url file")
			return exitSetup
		}
	}

	if urls.AnyValid(candidates) {
		if err := converter.Available(); err != nil {
			log.WithError(err).Error("yt-dlp is not available")
			return exitSetup
		}
	}

	store, err := history.Open(ctx, settings)
	if err != nil {
		log.WithError(err).Error("Could not open conversion archive")
		return exitSetup
	}
	defer store.Close()

	out := console.New(color.Output, !opts.NoColor && !color.NoColor)
	defer out.Close()

	out.Banner(opts.Settings(), len(candidates), opts.Threads)
	if len(candidates) == 0 {
		out.NoURLs(opts.File)
		return exitOK
	}

	d := dispatch.New(converter, out,
		dispatch.WithWorkers(opts.Threads),
		dispatch.WithHistory(store),
		dispatch.WithSkipArchived(opts.SkipArchived),
		dispatch.WithYouTubeOnly(opts.YouTubeOnly),
	)
	summary := d.Run(ctx, candidates, opts.Settings())
	out.Summary(summary.Dispatched, summary.Succeeded, summary.Failed, summary.Skipped)

	log.WithFields(log.Fields{
		"dispatched": summary.Dispatched,
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
	}).Info("Run finished")

	if ctx.Err() != nil {
		out.Interrupted()
		return exitInterrupted
	}
	return exitOK
}
