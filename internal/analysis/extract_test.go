package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/config"
)

func TestExtractInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		stub       *stubModel
		wantName   string
		wantPlace  string
		wantYears  string
		wantSkills int
	}{
		{
			name:       "empty transcript",
			text:       "",
			wantSkills: 0,
		},
		{
			name:       "abbreviated years",
			text:       "I have 10 yrs of Go",
			wantYears:  "10 years",
			wantSkills: 2,
		},
		{
			name:       "no space and first match wins",
			text:       "About 3years in Berlin, 7 years overall",
			wantYears:  "3 years",
			wantSkills: 5,
		},
		{
			name: "person and place are independent",
			text: "I'm based in New York.",
			stub: &stubModel{entities: []ai.Entity{
				{Text: "New York", Label: ai.EntityGPE},
				{Text: "Boston", Label: ai.EntityGPE},
			}},
			wantPlace:  "New York",
			wantSkills: 4,
		},
		{
			name:       "recognizer failure",
			text:       "Hi, I'm John Smith",
			stub:       &stubModel{err: errors.New("offline")},
			wantSkills: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			models := ai.Models{}
			if tt.stub != nil {
				models.Entities = tt.stub
			}

			a := newTestAnalyzer(t, models, nil)
			info := a.ExtractInfo(context.Background(), tt.text)

			if info.Name != tt.wantName || info.Location != tt.wantPlace || info.Experience != tt.wantYears {
				t.Fatalf("unexpected info: %+v", info)
			}
			if info.Skills == nil || len(info.Skills) != tt.wantSkills {
				t.Fatalf("expected %d skills, got %v", tt.wantSkills, info.Skills)
			}
		})
	}
}

func TestExtractInfoSkipsNonLocations(t *testing.T) {
	t.Parallel()

	stub := &stubModel{entities: []ai.Entity{
		{Text: "John Doe", Label: ai.EntityPerson},
		{Text: "Python", Label: ai.EntityGPE},
		{Text: "Hi", Label: ai.EntityGPE},
		{Text: "React", Label: ai.EntityGPE},
		{Text: "New York", Label: ai.EntityGPE},
	}}

	a, err := New(config.Default().Analysis, ai.Models{Entities: stub}, nil, WithNonLocations("python", " REACT ", ""))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	info := a.ExtractInfo(context.Background(), "Hi, I'm John Doe, I know Python and React and live in New York.")
	if info.Name != "John Doe" {
		t.Fatalf("expected name John Doe, got %q", info.Name)
	}
	if info.Location != "New York" {
		t.Fatalf("expected location New York, got %q", info.Location)
	}

	// Greetings come from the config defaults; skill names only from the option.
	plain := newTestAnalyzer(t, ai.Models{Entities: stub}, nil)
	if got := plain.ExtractInfo(context.Background(), "Hi").Location; got != "Python" {
		t.Fatalf("expected Python without the option, got %q", got)
	}

	onlyNoise := &stubModel{entities: []ai.Entity{{Text: "Hello", Label: ai.EntityGPE}}}
	if got := newTestAnalyzer(t, ai.Models{Entities: onlyNoise}, nil).ExtractInfo(context.Background(), "Hello").Location; got != "" {
		t.Fatalf("expected no location, got %q", got)
	}
}
