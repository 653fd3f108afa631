package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/hiresense/backend/config"
	"github.com/rs/zerolog/log"
)

// SpeechSynthesizer renders a question to an mp3 served from the static audio
// directory and returns its public URL.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, filename string) (string, error)
}

type ttsService struct {
	client *texttospeech.Client
	cfg    *config.Config
}

// NewTTSService builds the Cloud Text-to-Speech synthesizer. Credentials come
// from the application-default chain; without them the service stays
// non-functional instead of failing startup, mirroring the Gemini client.
func NewTTSService(cfg *config.Config) (SpeechSynthesizer, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Text-to-Speech client unavailable. Questions will be returned without audio.")
		return &ttsService{cfg: cfg, client: nil}, nil
	}
	return &ttsService{client: client, cfg: cfg}, nil
}

func (s *ttsService) Synthesize(ctx context.Context, text, filename string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("text-to-speech client not initialized")
	}

	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.cfg.Speech.LanguageCode,
			Name:         s.cfg.Speech.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}

	if err := os.MkdirAll(s.cfg.Speech.AudioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	path := filepath.Join(s.cfg.Speech.AudioDir, filename)
	if err := os.WriteFile(path, resp.AudioContent, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return s.cfg.BaseURL + "/static/audio/" + filename, nil
}
