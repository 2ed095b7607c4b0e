package yt

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"youtube2mp3/config"
	"youtube2mp3/model"

	"github.com/Strum355/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.InitSimpleLogger(&log.Config{Output: io.Discard})
	os.Exit(m.Run())
}

func testConverter() *Converter {
	return NewConverter(config.Settings{OutputTemplate: "%(title)s.%(ext)s"})
}

// fakeTool writes a shell script standing in for yt-dlp
func fakeTool(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestNewConverter_Defaults(t *testing.T) {
	c := NewConverter(config.Settings{})

	assert.Equal(t, "yt-dlp", c.Executable)
	assert.Equal(t, "mp3", c.AudioFormat)
	assert.Equal(t, "192K", c.AudioQuality)
}

func TestArgs_SingleVideo(t *testing.T) {
	job := model.NewJob("https://youtu.be/abc123", "", model.Settings{})

	args := testConverter().Args(job)

	assert.Equal(t, []string{
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", filepath.Join(".", "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		"--no-playlist",
		"https://youtu.be/abc123",
	}, args)
}

func TestArgs_PlaylistAndFFmpeg(t *testing.T) {
	c := testConverter()
	c.FFmpeg = "/opt/ffmpeg"
	job := model.NewJob("https://www.youtube.com/playlist?list=PL123", "", model.Settings{OutputDir: "/tmp/out", Playlist: true})

	args := c.Args(job)

	assert.Contains(t, args, "--yes-playlist")
	assert.NotContains(t, args, "--no-playlist")
	assert.Contains(t, args, filepath.Join("/tmp/out", "%(title)s.%(ext)s"))
	assert.Equal(t, "https://www.youtube.com/playlist?list=PL123", args[len(args)-1])
	assert.Equal(t, "/opt/ffmpeg", args[len(args)-2])
}

func TestConvert_ReturnsPrintedFiles(t *testing.T) {
	dir := t.TempDir()
	record := filepath.Join(dir, "args.txt")
	c := testConverter()
	c.Executable = fakeTool(t, `printf '%s\n' "$@" > "`+record+`"
echo "`+dir+`/First Song.mp3"
echo "`+dir+`/Second Song.mp3"`)
	job := model.NewJob("https://youtu.be/abc123", "", model.Settings{OutputDir: dir})

	files, err := c.Convert(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, []string{dir + "/First Song.mp3", dir + "/Second Song.mp3"}, files)

	recorded, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, c.Args(job), strings.Split(strings.TrimSpace(string(recorded)), "\n"))
}

func TestConvert_FailureCarriesToolMessage(t *testing.T) {
	c := testConverter()
	c.Executable = fakeTool(t, `echo "[generic] extracting" >&2
echo "ERROR: Unsupported URL: https://example.com/x" >&2
exit 1`)

	_, err := c.Convert(context.Background(), model.NewJob("https://example.com/x", "", model.Settings{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERROR: Unsupported URL: https://example.com/x")
}

func TestConvert_MissingExecutable(t *testing.T) {
	c := testConverter()
	c.Executable = filepath.Join(t.TempDir(), "does-not-exist")

	_, err := c.Convert(context.Background(), model.NewJob("https://youtu.be/abc123", "", model.Settings{}))

	assert.Error(t, err)
	assert.Error(t, c.Available())
}

func TestConvert_Cancelled(t *testing.T) {
	c := testConverter()
	c.Executable = fakeTool(t, "sleep 5")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Convert(ctx, model.NewJob("https://youtu.be/abc123", "", model.Settings{}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestUse(t *testing.T) {
	c := testConverter()

	c.Use(Tools{YtDlp: "/cache/yt-dlp", FFmpeg: "/cache"})

	assert.Equal(t, "/cache/yt-dlp", c.Executable)
	assert.Equal(t, "/cache", c.FFmpeg)
}
