package config

import (
	"strings"

	"github.com/Strum355/log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is a typed snapshot of the loaded configuration
type Settings struct {
	YtDlpPath       string
	FFmpegPath      string
	AudioFormat     string
	AudioQuality    string
	OutputTemplate  string
	Workers         int
	RedisAddress    string
	DatabaseDSN     string
	DatabaseRetries int
	HistoryTTL      int
}

func InitConfig() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, proceeding with defaults.")
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	initDefaults()
	viper.AutomaticEnv()
}

// Load reads the current viper state into Settings
func Load() Settings {
	return Settings{
		YtDlpPath:       viper.GetString("ytdlp.path"),
		FFmpegPath:      viper.GetString("ffmpeg.path"),
		AudioFormat:     viper.GetString("audio.format"),
		AudioQuality:    viper.GetString("audio.quality"),
		OutputTemplate:  viper.GetString("output.template"),
		Workers:         viper.GetInt("workers"),
		RedisAddress:    viper.GetString("redis.address"),
		DatabaseDSN:     viper.GetString("database.dsn"),
		DatabaseRetries: viper.GetInt("database.retries"),
		HistoryTTL:      viper.GetInt("history.ttl"),
	}
}
