// Package screening runs the full evaluation for one answer or a batch of
// answers: optional transcription, analysis and decision.
package screening

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rishabhsingroha/hr-screener/internal/analysis"
	"github.com/rishabhsingroha/hr-screener/internal/decision"
	"github.com/rishabhsingroha/hr-screener/internal/logger"
	"github.com/rishabhsingroha/hr-screener/internal/transcribe"
)

// ErrNoTranscriber is returned by ScreenAudio when no transcriber is configured.
var ErrNoTranscriber = errors.New("transcription is not configured")

type Analyzer interface {
	Analyze(ctx context.Context, transcript string) *analysis.Record
}

type Evaluator interface {
	Evaluate(record *analysis.Record) decision.Result
}

// Screening is the outcome of one evaluation.
type Screening struct {
	ID         string           `json:"id" yaml:"id"`
	Transcript string           `json:"transcript" yaml:"transcript"`
	Language   string           `json:"language,omitempty" yaml:"language,omitempty"`
	Analysis   *analysis.Record `json:"analysis" yaml:"analysis"`
	Result     decision.Result  `json:"result" yaml:"result"`
}

type Screener struct {
	analyzer    Analyzer
	evaluator   Evaluator
	transcriber transcribe.Transcriber
	concurrency int
	logger      *zap.Logger
	newID       func() string
}

type Option func(*Screener)

// WithTranscriber enables ScreenAudio.
func WithTranscriber(t transcribe.Transcriber) Option {
	return func(s *Screener) {
		s.transcriber = t
	}
}

// WithConcurrency bounds the number of evaluations ScreenAll runs at once.
func WithConcurrency(n int) Option {
	return func(s *Screener) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func New(analyzer Analyzer, evaluator Evaluator, log *zap.Logger, opts ...Option) *Screener {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Screener{
		analyzer:    analyzer,
		evaluator:   evaluator,
		concurrency: 1,
		logger:      log,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CanTranscribe reports whether ScreenAudio is available.
func (s *Screener) CanTranscribe() bool {
	return s.transcriber != nil
}

// Screen analyzes and evaluates one transcript.
func (s *Screener) Screen(ctx context.Context, transcript string) Screening {
	id := s.newID()
	log := s.logger.With(zap.String(logger.FieldEvaluationID, id))

	record := s.analyzer.Analyze(ctx, transcript)
	result := s.evaluator.Evaluate(record)

	log.Info("candidate screened",
		zap.String("decision", string(result.Decision)),
		zap.String("sentiment", result.Sentiment),
		zap.Float64("total_score", result.Scores.Total),
	)

	return Screening{
		ID:         id,
		Transcript: transcript,
		Analysis:   record,
		Result:     result,
	}
}

// ScreenAudio transcribes the answer at audioURL and screens it.
func (s *Screener) ScreenAudio(ctx context.Context, audioURL string) (Screening, error) {
	if s.transcriber == nil {
		return Screening{}, ErrNoTranscriber
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return Screening{}, err
	}

	screening := s.Screen(ctx, transcript.Text)
	screening.Language = transcript.Language
	return screening, nil
}

// ScreenAll screens transcripts concurrently. Results keep the input order. It
// stops early only when ctx is cancelled.
func (s *Screener) ScreenAll(ctx context.Context, transcripts []string) ([]Screening, error) {
	results := make([]Screening, len(transcripts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, transcript := range transcripts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Screen(ctx, transcript)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screen batch: %w", err)
	}

	return results, nil
}
