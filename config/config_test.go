package config

import (
	"io"
	"os"
	"testing"

	"github.com/Strum355/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.InitSimpleLogger(&log.Config{Output: io.Discard})
	os.Exit(m.Run())
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()
	s := Load()

	assert.Equal(t, "yt-dlp", s.YtDlpPath)
	assert.Equal(t, "mp3", s.AudioFormat)
	assert.Equal(t, "192K", s.AudioQuality)
	assert.Equal(t, "%(title)s.%(ext)s", s.OutputTemplate)
	assert.Equal(t, 0, s.Workers)
	assert.Equal(t, 10, s.DatabaseRetries)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("YTDLP_PATH", "/opt/bin/yt-dlp")
	t.Setenv("AUDIO_QUALITY", "320K")
	t.Setenv("WORKERS", "4")

	InitConfig()
	s := Load()

	assert.Equal(t, "/opt/bin/yt-dlp", s.YtDlpPath)
	assert.Equal(t, "320K", s.AudioQuality)
	assert.Equal(t, 4, s.Workers)
}
