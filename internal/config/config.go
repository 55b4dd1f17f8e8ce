// Package config holds the screening configuration: keyword dictionaries, score
// weights, decision thresholds and the settings of the external collaborators.
// It is loaded once at start-up and treated as read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	ProviderLocal  = "local"
	ProviderGemini = "gemini"
	ProviderNone   = "none"

	TranscriberAssemblyAI = "assemblyai"
)

type Config struct {
	Analysis      Analysis      `mapstructure:"analysis"`
	Decision      Decision      `mapstructure:"decision"`
	NLP           NLP           `mapstructure:"nlp"`
	Transcription Transcription `mapstructure:"transcription"`
	Interview     Interview     `mapstructure:"interview"`
	Server        Server        `mapstructure:"server"`
	Concurrency   int           `mapstructure:"concurrency" validate:"gte=1"`
}

// Analysis configures the text analyzer and its heuristic fallbacks.
type Analysis struct {
	MaxKeywords        int      `mapstructure:"max-keywords" validate:"gte=1"`
	MinKeywordLength   int      `mapstructure:"min-keyword-length" validate:"gte=1"`
	MaxInfoSkills      int      `mapstructure:"max-info-skills" validate:"gte=0"`
	StopWords          []string `mapstructure:"stop-words"`
	PositiveWords      []string `mapstructure:"positive-words"`
	NegativeWords      []string `mapstructure:"negative-words"`
	NegativePatterns   []string `mapstructure:"negative-patterns" validate:"dive,required"`
	VaguePhrases       []string `mapstructure:"vague-phrases" validate:"dive,required"`
	ShortResponseWords int      `mapstructure:"short-response-words" validate:"gte=0"`
	NonLocations       []string `mapstructure:"non-locations"`
}

// Decision configures the scoring tables and the decision policy.
type Decision struct {
	TechnicalSkills       []string           `mapstructure:"technical-skills" validate:"min=1"`
	SoftSkills            []string           `mapstructure:"soft-skills"`
	TechnicalMatchWeight  float64            `mapstructure:"technical-match-weight" validate:"gte=0"`
	SoftMatchWeight       float64            `mapstructure:"soft-match-weight" validate:"gte=0"`
	MaxSkillNormalizer    float64            `mapstructure:"max-skill-normalizer" validate:"gt=0"`
	ExperienceYearsCap    float64            `mapstructure:"experience-years-cap" validate:"gt=0"`
	SentimentScores       map[string]float64 `mapstructure:"sentiment-scores" validate:"dive,gte=0,lte=1"`
	DefaultSentimentScore float64            `mapstructure:"default-sentiment-score" validate:"gte=0,lte=1"`
	ToneFlagPenalty       float64            `mapstructure:"tone-flag-penalty" validate:"gte=0"`
	MaxFormattedSkills    int                `mapstructure:"max-formatted-skills" validate:"gte=0"`
	Weights               Weights            `mapstructure:"weights"`
	Thresholds            Thresholds         `mapstructure:"thresholds"`
}

type Weights struct {
	Skills     float64 `mapstructure:"skills" validate:"gte=0,lte=1"`
	Tone       float64 `mapstructure:"tone" validate:"gte=0,lte=1"`
	Experience float64 `mapstructure:"experience" validate:"gte=0,lte=1"`
}

type Thresholds struct {
	Recommend float64 `mapstructure:"recommend" validate:"lte=1,gtefield=Consider"`
	Consider  float64 `mapstructure:"consider" validate:"gtefield=Escalate"`
	Escalate  float64 `mapstructure:"escalate" validate:"gte=0"`
}

// NLP selects the primary models used by the analyzer. Fallback heuristics are
// always available regardless of the provider.
type NLP struct {
	Provider string  `mapstructure:"provider" validate:"oneof=local gemini none"`
	Gemini   *Gemini `mapstructure:"gemini"`
}

type Gemini struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
	CacheSize    int    `mapstructure:"cache-size" validate:"gte=0"`
}

type Transcription struct {
	Provider   string `mapstructure:"provider" validate:"omitempty,oneof=assemblyai"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

// Interview lists the scripted questions asked by the interview command.
type Interview struct {
	Greeting  string     `mapstructure:"greeting"`
	Farewell  string     `mapstructure:"farewell"`
	Questions []Question `mapstructure:"questions" validate:"dive"`
}

type Question struct {
	ID   string `mapstructure:"id" validate:"required"`
	Text string `mapstructure:"text" validate:"required"`
	Type string `mapstructure:"type"`
}

type Server struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gte=0"`
}

// Default returns the built-in screening tables.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			MaxKeywords:      10,
			MinKeywordLength: 3,
			MaxInfoSkills:    5,
			StopWords: []string{
				"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
				"your", "yours", "yourself", "yourselves", "he", "him", "his", "himself",
			},
			PositiveWords: []string{"good", "great", "excellent", "happy", "interested", "positive"},
			NegativeWords: []string{"bad", "poor", "terrible", "unhappy", "negative", "not"},
			NegativePatterns: []string{
				`\b(never|no|not|cannot|won't)\b`,
				`\b(hate|dislike|awful|terrible)\b`,
				`\b(impossible|difficult|hard|problem)\b`,
			},
			VaguePhrases:       []string{"maybe", "somewhat", "kind of", "sort of", "i guess"},
			ShortResponseWords: 5,
			NonLocations:       []string{"hi", "hello", "hey", "yes", "no", "okay", "sure", "thanks"},
		},
		Decision: Decision{
			TechnicalSkills: []string{
				"python", "java", "javascript", "react", "angular", "vue", "node",
				"aws", "azure", "gcp", "docker", "kubernetes", "ml", "ai",
			},
			SoftSkills: []string{
				"leadership", "communication", "teamwork", "problem-solving",
				"analytical", "project management", "agile", "scrum",
			},
			TechnicalMatchWeight: 0.7,
			SoftMatchWeight:      0.3,
			MaxSkillNormalizer:   5,
			ExperienceYearsCap:   5,
			SentimentScores: map[string]float64{
				"Very Positive": 1.0,
				"Positive":      0.8,
				"Neutral":       0.6,
				"Negative":      0.3,
				"Very Negative": 0.0,
			},
			DefaultSentimentScore: 0.6,
			ToneFlagPenalty:       0.2,
			MaxFormattedSkills:    5,
			Weights:               Weights{Skills: 0.4, Tone: 0.3, Experience: 0.3},
			Thresholds:            Thresholds{Recommend: 0.8, Consider: 0.6, Escalate: 0.4},
		},
		NLP: NLP{
			Provider: ProviderLocal,
			Gemini: &Gemini{
				Model:        "gemini-2.5-flash",
				MaxRetries:   3,
				MaxLogLength: 200,
				CacheSize:    256,
			},
		},
		Interview: Interview{
			Greeting: "Hello, this is the HR team calling regarding your job application. " +
				"We would like to ask you a few questions.",
			Farewell: "Thank you for your time. We will review your responses " +
				"and get back to you soon. Have a great day!",
			Questions: []Question{
				{ID: "intro", Text: "Can you tell me about yourself?", Type: "open_ended"},
				{ID: "skills", Text: "What are your key skills?", Type: "skills"},
				{ID: "experience", Text: "How many years of experience do you have?", Type: "numeric"},
				{ID: "location", Text: "What is your current location?", Type: "location"},
				{ID: "availability", Text: "Are you available to join immediately?", Type: "boolean"},
			},
		},
		Server: Server{
			Addr:           ":8000",
			RequestTimeout: 30 * time.Second,
		},
		Concurrency: 4,
	}
}

// RegisterDefaults seeds v with the values of Default so that file, env and flag
// values override them key by key.
func RegisterDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("analysis.max-keywords", d.Analysis.MaxKeywords)
	v.SetDefault("analysis.min-keyword-length", d.Analysis.MinKeywordLength)
	v.SetDefault("analysis.max-info-skills", d.Analysis.MaxInfoSkills)
	v.SetDefault("analysis.stop-words", d.Analysis.StopWords)
	v.SetDefault("analysis.positive-words", d.Analysis.PositiveWords)
	v.SetDefault("analysis.negative-words", d.Analysis.NegativeWords)
	v.SetDefault("analysis.negative-patterns", d.Analysis.NegativePatterns)
	v.SetDefault("analysis.vague-phrases", d.Analysis.VaguePhrases)
	v.SetDefault("analysis.short-response-words", d.Analysis.ShortResponseWords)
	v.SetDefault("analysis.non-locations", d.Analysis.NonLocations)

	v.SetDefault("decision.technical-skills", d.Decision.TechnicalSkills)
	v.SetDefault("decision.soft-skills", d.Decision.SoftSkills)
	v.SetDefault("decision.technical-match-weight", d.Decision.TechnicalMatchWeight)
	v.SetDefault("decision.soft-match-weight", d.Decision.SoftMatchWeight)
	v.SetDefault("decision.max-skill-normalizer", d.Decision.MaxSkillNormalizer)
	v.SetDefault("decision.experience-years-cap", d.Decision.ExperienceYearsCap)
	v.SetDefault("decision.sentiment-scores", d.Decision.SentimentScores)
	v.SetDefault("decision.default-sentiment-score", d.Decision.DefaultSentimentScore)
	v.SetDefault("decision.tone-flag-penalty", d.Decision.ToneFlagPenalty)
	v.SetDefault("decision.max-formatted-skills", d.Decision.MaxFormattedSkills)
	v.SetDefault("decision.weights.skills", d.Decision.Weights.Skills)
	v.SetDefault("decision.weights.tone", d.Decision.Weights.Tone)
	v.SetDefault("decision.weights.experience", d.Decision.Weights.Experience)
	v.SetDefault("decision.thresholds.recommend", d.Decision.Thresholds.Recommend)
	v.SetDefault("decision.thresholds.consider", d.Decision.Thresholds.Consider)
	v.SetDefault("decision.thresholds.escalate", d.Decision.Thresholds.Escalate)

	v.SetDefault("nlp.provider", d.NLP.Provider)
	v.SetDefault("nlp.gemini.model", d.NLP.Gemini.Model)
	v.SetDefault("nlp.gemini.max-retries", d.NLP.Gemini.MaxRetries)
	v.SetDefault("nlp.gemini.max-log-length", d.NLP.Gemini.MaxLogLength)
	v.SetDefault("nlp.gemini.cache-size", d.NLP.Gemini.CacheSize)

	v.SetDefault("interview.greeting", d.Interview.Greeting)
	v.SetDefault("interview.farewell", d.Interview.Farewell)
	v.SetDefault("interview.questions", questionMaps(d.Interview.Questions))

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request-timeout", d.Server.RequestTimeout)
	v.SetDefault("concurrency", d.Concurrency)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg *Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg == nil {
		return nil, errors.New("config is empty")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and threshold ordering.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.NLP.Provider == ProviderGemini && (c.NLP.Gemini == nil || strings.TrimSpace(c.NLP.Gemini.Model) == "") {
		return errors.New("invalid config: nlp.gemini.model is required when nlp.provider is gemini")
	}

	return nil
}

func questionMaps(questions []Question) []map[string]any {
	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, map[string]any{"id": q.ID, "text": q.Text, "type": q.Type})
	}
	return out
}
