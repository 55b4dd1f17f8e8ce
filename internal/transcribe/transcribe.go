// Package transcribe turns recorded answers into transcripts.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"
)

const Provider = "assemblyai"

// Transcript is the recognised text of one answer with a best-effort language code.
type Transcript struct {
	Text     string `json:"text" yaml:"text"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (Transcript, error)
}

type transcriptAPI interface {
	TranscribeFromURL(ctx context.Context, audioURL string, opts *aai.TranscriptOptionalParams) (aai.Transcript, error)
}

// AssemblyAI submits the audio URL and waits for the transcript to complete.
type AssemblyAI struct {
	transcripts transcriptAPI
	logger      *zap.Logger
}

func NewAssemblyAI(apiKey string, logger *zap.Logger) (*AssemblyAI, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("assemblyai api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := aai.NewClient(apiKey)
	return &AssemblyAI{transcripts: client.Transcripts, logger: logger}, nil
}

func (a *AssemblyAI) Transcribe(ctx context.Context, audioURL string) (Transcript, error) {
	audioURL = strings.TrimSpace(audioURL)
	if audioURL == "" {
		return Transcript{}, errors.New("audio url is required")
	}

	a.logger.Debug("submitting audio for transcription", zap.String("audio_url", audioURL))

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		Punctuate:         aai.Bool(true),
	}

	t, err := a.transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return Transcript{}, fmt.Errorf("transcribe %q: %w", audioURL, err)
	}

	if t.Status == aai.TranscriptStatusError {
		msg := aai.ToString(t.Error)
		if msg == "" {
			msg = "unknown error"
		}
		return Transcript{}, fmt.Errorf("transcribe %q: %s", audioURL, msg)
	}

	result := Transcript{
		Text:     strings.TrimSpace(aai.ToString(t.Text)),
		Language: string(t.LanguageCode),
	}

	a.logger.Debug("transcription completed",
		zap.String("transcript_id", aai.ToString(t.ID)),
		zap.String("language", result.Language),
		zap.Int("text_length", len(result.Text)),
	)

	return result, nil
}
