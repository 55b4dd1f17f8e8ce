package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/rishabhsingroha/hr-screener/internal/analysis/lexicon"
)

func (a *Analyzer) sentiment(ctx context.Context, text string) (Sentiment, StageReport) {
	var primary func(context.Context) (Sentiment, error)
	if a.models.Sentiment != nil {
		primary = func(ctx context.Context) (Sentiment, error) {
			compound, err := a.models.Sentiment.Compound(ctx, text)
			if err != nil {
				return "", err
			}
			if math.IsNaN(compound) || compound < -1 || compound > 1 {
				return "", fmt.Errorf("compound score %v outside [-1, 1]", compound)
			}
			return SentimentFromCompound(compound), nil
		}
	}

	return runStage(ctx, a, StageSentiment, primary, func() Sentiment {
		return a.fallbackSentiment(text)
	})
}

// fallbackSentiment counts tokens found in the positive and negative word sets.
// The larger count wins; a tie is Neutral.
func (a *Analyzer) fallbackSentiment(text string) Sentiment {
	var positive, negative int
	for _, token := range lexicon.Tokenize(text) {
		if _, ok := a.positiveWords[token]; ok {
			positive++
		}
		if _, ok := a.negativeWords[token]; ok {
			negative++
		}
	}

	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}
