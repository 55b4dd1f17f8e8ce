package analysis

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rishabhsingroha/hr-screener/internal/analysis/lexicon"
)

func (a *Analyzer) keywords(ctx context.Context, text string) ([]string, StageReport) {
	var primary func(context.Context) ([]string, error)
	if a.models.Phrases != nil {
		primary = func(ctx context.Context) ([]string, error) {
			phrases, err := a.models.Phrases.Phrases(ctx, text)
			if err != nil {
				return nil, err
			}
			return a.collect(phrases, nil), nil
		}
	}

	return runStage(ctx, a, StageKeywords, primary, func() []string {
		return a.fallbackKeywords(text)
	})
}

// fallbackKeywords keeps lowercase tokens that are not stop words, in first
// occurrence order.
func (a *Analyzer) fallbackKeywords(text string) []string {
	return a.collect(lexicon.Tokenize(text), a.stopWords)
}

// collect trims candidates, drops short ones and those in skip, removes case
// insensitive duplicates and caps the result at maxKeywords.
func (a *Analyzer) collect(candidates []string, skip map[string]struct{}) []string {
	keywords := make([]string, 0, a.maxKeywords)
	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		if len(keywords) >= a.maxKeywords {
			break
		}

		candidate = strings.TrimSpace(candidate)
		if utf8.RuneCountInString(candidate) < a.minKeywordLength {
			continue
		}

		key := strings.ToLower(candidate)
		if _, ok := skip[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		keywords = append(keywords, candidate)
	}

	return keywords
}
