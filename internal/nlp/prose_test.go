package nlp

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/jdkato/prose/v2"
)

func tokens(pairs ...string) []prose.Token {
	out := make([]prose.Token, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, prose.Token{Text: pairs[i], Tag: pairs[i+1]})
	}
	return out
}

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []prose.Token
		expect []string
	}{
		{
			name:   "empty",
			tokens: nil,
			expect: nil,
		},
		{
			name: "noun run and conjunction split",
			tokens: tokens(
				"software", "NN", "development", "NN", "experience", "NN",
				"in", "IN", "Python", "NNP", "and", "CC", "React", "NNP", ".", ".",
			),
			expect: []string{"software development experience", "Python", "React"},
		},
		{
			name:   "adjectives lead a phrase",
			tokens: tokens("strong", "JJ", "analytical", "JJ", "skills", "NNS"),
			expect: []string{"strong analytical skills"},
		},
		{
			name:   "dangling adjective dropped",
			tokens: tokens("I", "PRP", "am", "VBP", "happy", "JJ"),
			expect: nil,
		},
		{
			name:   "adjective after noun starts new phrase",
			tokens: tokens("cloud", "NN", "native", "JJ", "services", "NNS"),
			expect: []string{"cloud", "native services"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := chunk(tt.tokens)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestProseSharedModel(t *testing.T) {
	p, err := NewProse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	text := "I am John Doe with 5 years of software development experience in Python and React."

	phrases, err := p.Phrases(ctx, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			t.Fatalf("expected non-empty phrases, got %q", phrases)
		}
	}

	entities, err := p.Entities(ctx, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ent := range entities {
		if ent.Label == "" || ent.Text == "" {
			t.Fatalf("unexpected empty entity: %+v", ent)
		}
	}
}

func TestProseRespectsCancelledContext(t *testing.T) {
	p, err := NewProse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Phrases(ctx, "anything"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNilProse(t *testing.T) {
	var p *Prose
	if _, err := p.Entities(context.Background(), "text"); err == nil {
		t.Fatal("expected error from nil model")
	}
}
