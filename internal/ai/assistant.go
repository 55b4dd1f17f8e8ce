// Package ai declares the model contracts the analyzer consumes. Implementations
// live in internal/nlp (local prose models), internal/analysis/lexicon and
// internal/ai/gemini (remote model). All implementations must be safe for
// concurrent use: one handle is built at start-up and shared by every evaluation.
package ai

import "context"

// Entity labels produced by the recognizers.
const (
	EntityPerson = "PERSON"
	EntityGPE    = "GPE"
)

// Entity is a named entity found in a transcript, in document order.
type Entity struct {
	Text  string
	Label string
}

// SentimentEstimator returns a compound polarity score in [-1, 1].
type SentimentEstimator interface {
	Compound(ctx context.Context, text string) (float64, error)
}

// PhraseExtractor returns candidate key phrases in extraction order.
type PhraseExtractor interface {
	Phrases(ctx context.Context, text string) ([]string, error)
}

// EntityRecognizer returns named entities in document order.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// Models bundles the primary models. A nil member means the model is unavailable
// and the analyzer goes straight to the fallback heuristic for that sub-step.
type Models struct {
	Provider  string
	Model     string
	Sentiment SentimentEstimator
	Phrases   PhraseExtractor
	Entities  EntityRecognizer
}
