package config

import (
	"os"

	"github.com/spf13/viper"
)

func initDefaults() {
	viper.SetDefault("ytdlp.path", "yt-dlp")
	viper.SetDefault("ffmpeg.path", "")
	viper.SetDefault("audio.format", "mp3")
	viper.SetDefault("audio.quality", "192K")
	viper.SetDefault("output.template", "%(title)s.%(ext)s")
	viper.SetDefault("workers", 0)
	viper.SetDefault("redis.address", os.Getenv("redis_address"))
	viper.SetDefault("database.dsn", os.Getenv("database_dsn"))
	viper.SetDefault("database.retries", 10)
	viper.SetDefault("history.ttl", 0)
}
