package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	var out bytes.Buffer
	return Parse("youtube2mp3", args, &out, 0)
}

func TestParse_SingleURLDefaults(t *testing.T) {
	o, err := parse(t, "-u", "https://youtu.be/abc123")

	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc123", o.URL)
	assert.False(t, o.Playlist)
	assert.Equal(t, ".", o.Output)
	assert.Equal(t, 0, o.Threads)
	assert.Equal(t, ".", o.Settings().OutputDir)
	assert.False(t, o.Settings().Playlist)
}

func TestParse_PlaylistAndOutput(t *testing.T) {
	dir := t.TempDir()

	o, err := parse(t, "--url", "https://youtu.be/abc123", "-p", "-o", dir, "-t", "3")

	require.NoError(t, err)
	assert.True(t, o.Settings().Playlist)
	assert.Equal(t, dir, o.Settings().OutputDir)
	assert.Equal(t, 3, o.Threads)
}

func TestParse_BothSourcesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://youtu.be/abc123"), 0644))

	_, err := parse(t, "-u", "https://youtu.be/abc123", "-f", path)

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestParse_NoSourceRejected(t *testing.T) {
	_, err := parse(t, "-p")

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer

	_, err := Parse("youtube2mp3", []string{"-h"}, &out, 0)

	assert.True(t, errors.Is(err, pflag.ErrHelp))
	assert.Contains(t, out.String(), "--url")
	assert.Contains(t, out.String(), "--playlist")
}

func TestParse_UnknownFlag(t *testing.T) {
	_, err := parse(t, "--bogus")

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestParse_StrayArguments(t *testing.T) {
	_, err := parse(t, "-u", "https://youtu.be/abc123", "extra")

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestValidate_MissingFile(t *testing.T) {
	err := Validate(Options{File: filepath.Join(t.TempDir(), "missing.txt"), Output: "."})

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestValidate_FileIsDirectory(t *testing.T) {
	err := Validate(Options{File: t.TempDir(), Output: "."})

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestValidate_MissingOutputDir(t *testing.T) {
	err := Validate(Options{URL: "https://youtu.be/abc123", Output: filepath.Join(t.TempDir(), "nope")})

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestValidate_NegativeThreads(t *testing.T) {
	err := Validate(Options{URL: "https://youtu.be/abc123", Output: ".", Threads: -1})

	assert.True(t, errors.Is(err, ErrUsage))
}

func TestValidate_InvalidURLIsNotAUsageError(t *testing.T) {
	err := Validate(Options{URL: "not a url", Output: "."})

	assert.NoError(t, err)
}
