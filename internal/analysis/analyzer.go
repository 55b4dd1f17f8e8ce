// Package analysis turns a transcript into an analysis record: sentiment,
// keywords, named entities, tone flags and extracted candidate info. Each
// sub-step prefers the configured primary model and degrades to a local
// heuristic when the model is missing or fails, so Analyze always returns a
// record.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/logger"
	"github.com/rishabhsingroha/hr-screener/internal/utils"

	"go.uber.org/zap"
)

const previewLength = 80

var errModelUnavailable = errors.New("model unavailable")

// Analyzer is built once and shared. It holds no mutable state.
type Analyzer struct {
	models ai.Models
	logger *zap.Logger

	maxKeywords        int
	minKeywordLength   int
	maxInfoSkills      int
	shortResponseWords int

	stopWords        map[string]struct{}
	positiveWords    map[string]struct{}
	negativeWords    map[string]struct{}
	negativePatterns []*regexp.Regexp
	vaguePhrases     []string
	nonLocations     map[string]struct{}
}

type Option func(*Analyzer)

// WithNonLocations adds words that are never reported as the candidate's
// location, such as skill names a recognizer tends to tag as places.
func WithNonLocations(words ...string) Option {
	return func(a *Analyzer) {
		for _, w := range words {
			if key := strings.ToLower(strings.TrimSpace(w)); key != "" {
				a.nonLocations[key] = struct{}{}
			}
		}
	}
}

// New compiles the tone rules and word sets of cfg. It fails only on an invalid
// negative-language pattern.
func New(cfg config.Analysis, models ai.Models, log *zap.Logger, opts ...Option) (*Analyzer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	patterns := make([]*regexp.Regexp, 0, len(cfg.NegativePatterns))
	for _, expr := range cfg.NegativePatterns {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compile negative pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}

	vague := make([]string, 0, len(cfg.VaguePhrases))
	for _, phrase := range cfg.VaguePhrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase != "" {
			vague = append(vague, phrase)
		}
	}

	a := &Analyzer{
		models:             models,
		logger:             logger.WithCommonFields(log, models.Provider, models.Model),
		maxKeywords:        cfg.MaxKeywords,
		minKeywordLength:   cfg.MinKeywordLength,
		maxInfoSkills:      cfg.MaxInfoSkills,
		shortResponseWords: cfg.ShortResponseWords,
		stopWords:          wordSet(cfg.StopWords),
		positiveWords:      wordSet(cfg.PositiveWords),
		negativeWords:      wordSet(cfg.NegativeWords),
		negativePatterns:   patterns,
		vaguePhrases:       vague,
		nonLocations:       wordSet(cfg.NonLocations),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Analyze runs every sub-step over transcript. A failure that escapes the
// sub-step guards yields the error marker record.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (record *Record) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis failed", zap.Any("panic", r))
			record = &Record{Error: fmt.Sprint(r)}
		}
	}()

	a.logger.Debug("analyzing transcript", zap.String("transcript", utils.TruncateForLog(transcript, previewLength)))

	record = newRecord()

	sentiment, report := a.sentiment(ctx, transcript)
	record.Sentiment = sentiment
	record.Stages = append(record.Stages, report)

	keywords, report := a.keywords(ctx, transcript)
	record.Keywords = keywords
	record.Stages = append(record.Stages, report)

	entities, report := a.entities(ctx, transcript)
	record.Entities = entities
	record.Stages = append(record.Stages, report)

	record.ToneFlags = a.toneFlags(transcript)
	record.Stages = append(record.Stages, StageReport{Stage: StageTone, Path: PathPrimary})

	record.ExtractedInfo = a.extractInfo(transcript, entities)
	record.Stages = append(record.Stages, StageReport{Stage: StageExtractedInfo, Path: report.Path, Error: report.Error})

	return record
}

// runStage calls primary and falls back when it is nil, returns an error or
// panics. fallback must not fail.
func runStage[T any](ctx context.Context, a *Analyzer, stage Stage, primary func(context.Context) (T, error), fallback func() T) (T, StageReport) {
	if primary == nil {
		a.logger.Debug("model unavailable, using fallback", logger.StageFields(string(stage), string(PathFallback))...)
		return fallback(), StageReport{Stage: stage, Path: PathFallback, Error: errModelUnavailable.Error()}
	}

	value, err := guard(ctx, primary)
	if err == nil {
		return value, StageReport{Stage: stage, Path: PathPrimary}
	}

	fields := append(logger.StageFields(string(stage), string(PathFallback)), zap.Error(err))
	a.logger.Warn("primary model failed, using fallback", fields...)

	return fallback(), StageReport{Stage: stage, Path: PathFallback, Error: err.Error()}
}

func guard[T any](ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return fn(ctx)
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
