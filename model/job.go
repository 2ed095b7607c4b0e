package model

import "time"

// Settings is the run-wide configuration shared read-only by every job
type Settings struct {
	OutputDir string
	Playlist  bool
}

// Job pairs one validated URL with the shared settings
type Job struct {
	URL       string
	VideoID   string // empty for playlists and non-YouTube links
	OutputDir string
	Playlist  bool
}

// NewJob creates a job for url using the given settings
func NewJob(url, videoID string, s Settings) Job {
	dir := s.OutputDir
	if dir == "" {
		dir = "."
	}
	return Job{
		URL:       url,
		VideoID:   videoID,
		OutputDir: dir,
		Playlist:  s.Playlist,
	}
}

// Label returns the shortest useful name for console output
func (j Job) Label() string {
	if j.VideoID != "" {
		return j.VideoID
	}
	return j.URL
}

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome is the terminal result of one job
type Outcome struct {
	Job       Job
	Status    Status
	Err       error
	Files     []string
	StartedAt time.Time
	Elapsed   time.Duration
}
