// Package nlp provides the local primary models: a part-of-speech based key phrase
// chunker and a named-entity recognizer, both backed by one shared prose model.
package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
)

const Provider = "prose"

// Prose holds the loaded tagger/recognizer weights. The model is only read after
// construction, so one instance serves concurrent callers.
type Prose struct {
	model *prose.Model
}

// NewProse loads the embedded prose model once.
func NewProse() (*Prose, error) {
	doc, err := prose.NewDocument("warm up", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("load prose model: %w", err)
	}

	if doc.Model == nil {
		return nil, fmt.Errorf("load prose model: no model attached to document")
	}

	return &Prose{model: doc.Model}, nil
}

func (p *Prose) document(ctx context.Context, text string) (*prose.Document, error) {
	if p == nil || p.model == nil {
		return nil, fmt.Errorf("prose model is not initialized")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
	)
}

// Entities implements ai.EntityRecognizer.
func (p *Prose) Entities(ctx context.Context, text string) ([]ai.Entity, error) {
	doc, err := p.document(ctx, text)
	if err != nil {
		return nil, err
	}

	found := doc.Entities()
	entities := make([]ai.Entity, 0, len(found))
	for _, ent := range found {
		label := strings.TrimSpace(ent.Label)
		value := strings.TrimSpace(ent.Text)
		if label == "" || value == "" {
			continue
		}
		entities = append(entities, ai.Entity{Text: value, Label: label})
	}

	return entities, nil
}

// Phrases implements ai.PhraseExtractor.
func (p *Prose) Phrases(ctx context.Context, text string) ([]string, error) {
	doc, err := p.document(ctx, text)
	if err != nil {
		return nil, err
	}

	return chunk(doc.Tokens()), nil
}

// chunk groups tokens into noun phrases matching (JJ*)*(NN*)+. Any other tag closes
// the current phrase; an adjective after a noun starts a new one.
func chunk(tokens []prose.Token) []string {
	var (
		phrases []string
		current []string
		hasNoun bool
	)

	flush := func() {
		if hasNoun {
			phrases = append(phrases, strings.Join(current, " "))
		}
		current = current[:0]
		hasNoun = false
	}

	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			current = append(current, tok.Text)
			hasNoun = true
		case strings.HasPrefix(tok.Tag, "JJ"):
			if hasNoun {
				flush()
			}
			current = append(current, tok.Text)
		default:
			flush()
		}
	}
	flush()

	return phrases
}
