// Package lexicon implements the local compound polarity estimator: a valence
// lexicon with negation handling, normalised to [-1, 1].
package lexicon

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode"
)

const (
	Provider = "lexicon"

	normalizationAlpha = 15.0
	negationScalar     = -0.74
	negationWindow     = 3
)

var defaultValence = map[string]float64{
	"amazing":     2.8,
	"awesome":     3.1,
	"best":        3.2,
	"confident":   2.2,
	"eager":       1.5,
	"enjoy":       2.2,
	"enjoyed":     2.3,
	"excellent":   3.2,
	"excited":     1.4,
	"fantastic":   2.6,
	"glad":        2.0,
	"good":        1.9,
	"great":       3.1,
	"happy":       2.7,
	"interested":  1.7,
	"like":        1.5,
	"love":        3.2,
	"motivated":   1.6,
	"passionate":  2.4,
	"positive":    2.6,
	"proud":       2.1,
	"strong":      2.3,
	"success":     2.7,
	"successful":  2.8,
	"sure":        1.3,
	"thanks":      1.9,
	"yes":         1.7,
	"angry":       -2.3,
	"awful":       -2.0,
	"bad":         -2.5,
	"boring":      -1.3,
	"confused":    -1.3,
	"difficult":   -1.5,
	"dislike":     -1.6,
	"fail":        -2.5,
	"failed":      -2.3,
	"frustrated":  -2.1,
	"hard":        -0.4,
	"hate":        -2.7,
	"impossible":  -1.3,
	"negative":    -2.7,
	"poor":        -2.1,
	"problem":     -1.7,
	"sad":         -2.1,
	"stress":      -1.8,
	"terrible":    -2.1,
	"tired":       -1.9,
	"unhappy":     -1.8,
	"unsure":      -1.0,
	"worried":     -1.2,
	"worst":       -3.1,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "cannot": {}, "can't": {}, "won't": {},
	"don't": {}, "didn't": {}, "doesn't": {}, "isn't": {}, "wasn't": {},
	"aren't": {}, "nothing": {}, "nobody": {}, "none": {}, "neither": {},
	"nor": {}, "without": {},
}

// Estimator is immutable after New and safe for concurrent use.
type Estimator struct {
	valence map[string]float64
}

// New builds an estimator from the default lexicon, with extra entries overriding it.
func New(extra map[string]float64) *Estimator {
	valence := make(map[string]float64, len(defaultValence)+len(extra))
	for word, score := range defaultValence {
		valence[word] = score
	}
	for word, score := range extra {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		valence[word] = score
	}

	return &Estimator{valence: valence}
}

// Compound implements ai.SentimentEstimator.
func (e *Estimator) Compound(ctx context.Context, text string) (float64, error) {
	if e == nil || len(e.valence) == 0 {
		return 0, errors.New("sentiment lexicon is empty")
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tokens := Tokenize(text)

	sum := 0.0
	for i, tok := range tokens {
		score, ok := e.valence[tok]
		if !ok {
			continue
		}
		if negated(tokens, i) {
			score *= negationScalar
		}
		sum += score
	}

	if sum == 0 {
		return 0, nil
	}

	return sum / math.Sqrt(sum*sum+normalizationAlpha), nil
}

func negated(tokens []string, idx int) bool {
	start := max(idx-negationWindow, 0)
	for _, tok := range tokens[start:idx] {
		if _, ok := negations[tok]; ok {
			return true
		}
	}
	return false
}

// Tokenize lowercases text, splits it on whitespace and trims punctuation from the
// edges of every token. Empty tokens are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tok := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
