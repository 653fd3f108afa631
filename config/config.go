package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Assessment   Assessment
	Speech       Speech
	GeminiApiKey string
	BaseURL      string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Assessment carries the session and scoring policy values. They are injected
// into the services at construction instead of being read ad hoc.
type Assessment struct {
	SessionDuration  time.Duration
	UpstreamTimeout  time.Duration
	MCQPassThreshold int
	FallbackScoreMin int
	FallbackScoreMax int
}

type Speech struct {
	Voice        string
	LanguageCode string
	AudioDir     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3008")
	viper.SetDefault("SESSION_DURATION_MINUTES", 3)
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("MCQ_PASS_THRESHOLD", 45)
	viper.SetDefault("FALLBACK_SCORE_MIN", 40)
	viper.SetDefault("FALLBACK_SCORE_MAX", 60)
	viper.SetDefault("TTS_VOICE", "en-IN-Wavenet-B")
	viper.SetDefault("TTS_LANGUAGE_CODE", "en-IN")
	viper.SetDefault("AUDIO_DIR", "static/audio")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Assessment.SessionDuration = time.Duration(viper.GetInt("SESSION_DURATION_MINUTES")) * time.Minute
	config.Assessment.UpstreamTimeout = time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second
	config.Assessment.MCQPassThreshold = viper.GetInt("MCQ_PASS_THRESHOLD")
	config.Assessment.FallbackScoreMin = viper.GetInt("FALLBACK_SCORE_MIN")
	config.Assessment.FallbackScoreMax = viper.GetInt("FALLBACK_SCORE_MAX")

	config.Speech.Voice = viper.GetString("TTS_VOICE")
	config.Speech.LanguageCode = viper.GetString("TTS_LANGUAGE_CODE")
	config.Speech.AudioDir = viper.GetString("AUDIO_DIR")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.BaseURL = viper.GetString("BASE_URL")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
