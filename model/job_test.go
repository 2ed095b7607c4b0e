package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewJob_DefaultsOutputDir(t *testing.T) {
	job := NewJob("https://youtu.be/abc123", "abc123", Settings{})

	assert.Equal(t, ".", job.OutputDir)
	assert.False(t, job.Playlist)
}

func TestNewJob_CopiesSettings(t *testing.T) {
	job := NewJob("https://youtu.be/abc123", "", Settings{OutputDir: "/tmp/out", Playlist: true})

	assert.Equal(t, "/tmp/out", job.OutputDir)
	assert.True(t, job.Playlist)
}

func TestJob_Label(t *testing.T) {
	assert.Equal(t, "abc123", Job{URL: "https://youtu.be/abc123", VideoID: "abc123"}.Label())
	assert.Equal(t, "https://example.com/list", Job{URL: "https://example.com/list"}.Label())
}
