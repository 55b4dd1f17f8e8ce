package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/ai/gemini"
	"github.com/rishabhsingroha/hr-screener/internal/analysis"
	"github.com/rishabhsingroha/hr-screener/internal/analysis/lexicon"
	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/decision"
	zaplog "github.com/rishabhsingroha/hr-screener/internal/logger"
	"github.com/rishabhsingroha/hr-screener/internal/nlp"
	"github.com/rishabhsingroha/hr-screener/internal/screening"
	"github.com/rishabhsingroha/hr-screener/internal/secrets"
	"github.com/rishabhsingroha/hr-screener/internal/transcribe"
)

type pipeline struct {
	config   *config.Config
	logger   *zap.Logger
	screener *screening.Screener
}

// mustPipeline builds the logger, config, models and screener shared by every
// command. Any failure here is fatal.
func mustPipeline(ctx context.Context) *pipeline {
	logger, err := zaplog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-screener", zap.String("version", version), zap.String("config", viper.ConfigFileUsed()))

	models := newModels(ctx, cfg.NLP, logger)

	// Recognizers often tag skill names like "Python" as places.
	skillTerms := append(append([]string{}, cfg.Decision.TechnicalSkills...), cfg.Decision.SoftSkills...)

	analyzer, err := analysis.New(cfg.Analysis, models, logger.Named("analysis"), analysis.WithNonLocations(skillTerms...))
	if err != nil {
		logger.Fatal("creating the analyzer", zap.Error(err))
	}

	engine := decision.New(cfg.Decision, logger.Named("decision"))

	opts := []screening.Option{screening.WithConcurrency(cfg.Concurrency)}

	transcriber, err := newTranscriber(cfg.Transcription, logger.Named("transcribe"))
	if err != nil {
		logger.Warn("skipping transcription", zap.Error(err))
	} else if transcriber != nil {
		opts = append(opts, screening.WithTranscriber(transcriber))
	}

	return &pipeline{
		config:   cfg,
		logger:   logger,
		screener: screening.New(analyzer, engine, logger, opts...),
	}
}

// newModels resolves the primary models for the configured provider. A remote
// provider that cannot be initialised degrades to the local models.
func newModels(ctx context.Context, cfg config.NLP, logger *zap.Logger) ai.Models {
	switch cfg.Provider {
	case config.ProviderNone:
		logger.Info("nlp models disabled, using heuristics")
		return ai.Models{Provider: config.ProviderNone}
	case config.ProviderGemini:
		models, err := newGeminiModels(ctx, cfg.Gemini, logger)
		if err == nil {
			return models
		}
		logger.Warn("skipping gemini models, using local models", zap.Error(err))
	}

	return newLocalModels(logger)
}

func newLocalModels(logger *zap.Logger) ai.Models {
	models := ai.Models{
		Provider:  config.ProviderLocal,
		Model:     nlp.Provider + "+" + lexicon.Provider,
		Sentiment: lexicon.New(nil),
	}

	p, err := nlp.NewProse()
	if err != nil {
		logger.Warn("prose model unavailable, using heuristics for keywords and entities", zap.Error(err))
		return models
	}

	models.Phrases = p
	models.Entities = p
	return models
}

func newGeminiModels(ctx context.Context, cfg *config.Gemini, logger *zap.Logger) (ai.Models, error) {
	if cfg == nil {
		return ai.Models{}, errors.New("nlp.gemini is not configured")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return ai.Models{}, fmt.Errorf("%w (set nlp.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := zaplog.WithCommonFields(logger, gemini.Provider, cfg.Model).With(
		zap.Int("ai_retry_attempts", cfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		return ai.Models{}, err
	}

	return gemini.NewModel(generator, genLogger, cfg.MaxLogLength, cfg.CacheSize).Models(), nil
}

func newTranscriber(cfg config.Transcription, logger *zap.Logger) (transcribe.Transcriber, error) {
	if cfg.Provider == "" {
		return nil, nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "assemblyai api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "ASSEMBLYAI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set transcription.api-key-file or ASSEMBLYAI_API_KEY_FILE)", err)
	}

	t, err := transcribe.NewAssemblyAI(apiKey, logger)
	if err != nil {
		return nil, err
	}
	return t, nil
}
