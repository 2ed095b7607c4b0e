package yt

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Strum355/log"
	"github.com/lrstanley/go-ytdlp"
)

// Tools are the resolved locations of the external binaries
type Tools struct {
	YtDlp  string
	FFmpeg string
}

// Install downloads yt-dlp, ffmpeg and ffprobe into the user cache when they
// are not already cached, and returns where they live
func Install(ctx context.Context) (Tools, error) {
	log.Info("Installing yt-dlp and ffmpeg...")

	dl, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return Tools{}, fmt.Errorf("installing yt-dlp: %w", err)
	}
	ff, err := ytdlp.InstallFFmpeg(ctx, nil)
	if err != nil {
		return Tools{}, fmt.Errorf("installing ffmpeg: %w", err)
	}
	if _, err := ytdlp.InstallFFprobe(ctx, nil); err != nil {
		return Tools{}, fmt.Errorf("installing ffprobe: %w", err)
	}

	log.WithFields(log.Fields{
		"yt-dlp":  dl.Executable,
		"version": dl.Version,
		"ffmpeg":  ff.Executable,
	}).Info("Tools installed successfully")

	return Tools{YtDlp: dl.Executable, FFmpeg: filepath.Dir(ff.Executable)}, nil
}

// Use points the converter at installed tools
func (c *Converter) Use(t Tools) {
	if t.YtDlp != "" {
		c.Executable = t.YtDlp
	}
	if t.FFmpeg != "" {
		c.FFmpeg = t.FFmpeg
	}
}
