package yt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"youtube2mp3/config"
	"youtube2mp3/model"
	"youtube2mp3/utils"

	"github.com/Strum355/log"
	"github.com/alessio/shellescape"
)

// Converter runs yt-dlp to download a url and extract its audio through ffmpeg
type Converter struct {
	Executable   string
	FFmpeg       string // optional ffmpeg binary or directory
	AudioFormat  string
	AudioQuality string
	Template     string
}

// NewConverter creates a Converter from the loaded configuration
func NewConverter(s config.Settings) *Converter {
	c := &Converter{
		Executable:   s.YtDlpPath,
		FFmpeg:       s.FFmpegPath,
		AudioFormat:  s.AudioFormat,
		AudioQuality: s.AudioQuality,
		Template:     s.OutputTemplate,
	}
	if c.Executable == "" {
		c.Executable = "yt-dlp"
	}
	if c.AudioFormat == "" {
		c.AudioFormat = "mp3"
	}
	if c.AudioQuality == "" {
		c.AudioQuality = "192K"
	}
	return c
}

// Args builds the yt-dlp argument list for job
func (c *Converter) Args(job model.Job) []string {
	args := []string{
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", c.AudioFormat,
		"--audio-quality", c.AudioQuality,
		"-o", utils.OutputTemplate(job.OutputDir, c.Template),
		"--no-simulate",
		"--print", "after_move:filepath",
	}
	if job.Playlist {
		args = append(args, "--yes-playlist")
	} else {
		args = append(args, "--no-playlist")
	}
	if c.FFmpeg != "" {
		args = append(args, "--ffmpeg-location", c.FFmpeg)
	}
	return append(args, job.URL)
}

// Convert downloads job.URL and returns the paths of the produced audio files
func (c *Converter) Convert(ctx context.Context, job model.Job) ([]string, error) {
	args := c.Args(job)
	cmd := exec.CommandContext(ctx, c.Executable, args...)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WithFields(log.Fields{
			"url":     job.URL,
			"command": shellescape.QuoteCommand(append([]string{c.Executable}, args...)),
			"error":   err.Error(),
		}).Error("yt-dlp failed")

		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s (%w)", msg, err)
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	return lines(stdout.String()), nil
}

// Available reports whether the configured executable can be found
func (c *Converter) Available() error {
	if _, err := exec.LookPath(c.Executable); err != nil {
		return fmt.Errorf("%s not found, install it or run with --install: %w", c.Executable, err)
	}
	return nil
}

func lines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func lastLine(s string) string {
	all := lines(s)
	if len(all) == 0 {
		return ""
	}
	return all[len(all)-1]
}
