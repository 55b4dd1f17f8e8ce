package gemini

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/utils"
)

const (
	Provider = "gemini"

	defaultMaxLogLength = 200
	defaultCacheSize    = 256

	// Upper bound for one shared request, retries included.
	requestTimeout = 2 * time.Minute
)

//go:embed prompt.md
var systemPrompt string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Reading is what the model returns for one transcript.
type Reading struct {
	Compound float64     `mapstructure:"compound"`
	Phrases  []string    `mapstructure:"phrases"`
	Entities []ai.Entity `mapstructure:"entities"`
}

// Model serves the sentiment, phrase and entity contracts from a single request
// per transcript. Readings are cached by transcript hash so the three sub-steps
// of one analysis cost one call.
type Model struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	cacheSize int

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Reading
	order []string
}

func NewModel(generator contentGenerator, logger *zap.Logger, maxLogLength, cacheSize int) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	return &Model{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		cacheSize: cacheSize,
		cache:     make(map[string]*Reading, cacheSize),
	}
}

// Models exposes m through all three analyzer contracts.
func (m *Model) Models() ai.Models {
	return ai.Models{
		Provider:  Provider,
		Model:     m.generator.Model(),
		Sentiment: m,
		Phrases:   m,
		Entities:  m,
	}
}

func (m *Model) Compound(ctx context.Context, text string) (float64, error) {
	reading, err := m.read(ctx, text)
	if err != nil {
		return 0, err
	}
	return reading.Compound, nil
}

func (m *Model) Phrases(ctx context.Context, text string) ([]string, error) {
	reading, err := m.read(ctx, text)
	if err != nil {
		return nil, err
	}
	return reading.Phrases, nil
}

func (m *Model) Entities(ctx context.Context, text string) ([]ai.Entity, error) {
	reading, err := m.read(ctx, text)
	if err != nil {
		return nil, err
	}
	return reading.Entities, nil
}

func (m *Model) read(ctx context.Context, text string) (*Reading, error) {
	if strings.TrimSpace(text) == "" {
		return &Reading{}, nil
	}

	key := keyFor(text)

	if reading, ok := m.cached(key); ok {
		return reading, nil
	}

	// The request is shared by every caller joined on key, so it runs detached
	// from ctx and each caller only stops waiting when its own ctx ends.
	ch := m.group.DoChan(key, func() (any, error) {
		if reading, ok := m.cached(key); ok {
			return reading, nil
		}

		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requestTimeout)
		defer cancel()

		reading, err := m.request(reqCtx, text)
		if err != nil {
			return nil, err
		}

		m.store(key, reading)
		return reading, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Reading), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Model) request(ctx context.Context, text string) (*Reading, error) {
	m.logger.Debug("gemini generate content request",
		zap.Int("transcript_length", utf8.RuneCountInString(text)),
		zap.String("transcript_preview", utils.TruncateForLog(text, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, systemPrompt, text)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	return parseReading(raw)
}

func (m *Model) cached(key string) (*Reading, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reading, ok := m.cache[key]
	return reading, ok
}

func (m *Model) store(key string, reading *Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cache[key]; ok {
		return
	}

	for len(m.order) >= m.cacheSize {
		delete(m.cache, m.order[0])
		m.order = m.order[1:]
	}

	m.cache[key] = reading
	m.order = append(m.order, key)
}

func keyFor(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func parseReading(raw string) (*Reading, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if _, ok := data["compound"]; !ok {
		return nil, errors.New("parse gemini response: compound is missing")
	}

	var reading Reading
	if err := mapstructure.WeakDecode(data, &reading); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	if math.IsNaN(reading.Compound) || reading.Compound < -1 || reading.Compound > 1 {
		return nil, fmt.Errorf("gemini compound %v outside [-1, 1]", reading.Compound)
	}

	return &reading, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
