package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	assert.NoError(t, err)

	assert.Equal(t, "3008", cfg.Server.Port)
	assert.Equal(t, 3*time.Minute, cfg.Assessment.SessionDuration)
	assert.Equal(t, 30*time.Second, cfg.Assessment.UpstreamTimeout)
	assert.Equal(t, 45, cfg.Assessment.MCQPassThreshold)
	assert.Equal(t, 40, cfg.Assessment.FallbackScoreMin)
	assert.Equal(t, 60, cfg.Assessment.FallbackScoreMax)
	assert.Equal(t, "en-IN", cfg.Speech.LanguageCode)
	assert.Equal(t, "static/audio", cfg.Speech.AudioDir)
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SESSION_DURATION_MINUTES", "5")
	t.Setenv("MCQ_PASS_THRESHOLD", "60")

	cfg, err := NewConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Assessment.SessionDuration)
	assert.Equal(t, 60, cfg.Assessment.MCQPassThreshold)
}
