package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rishabhsingroha/hr-screener/internal/decision"
	"github.com/rishabhsingroha/hr-screener/internal/screening"
)

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	result := decision.Result{
		CandidateName: "John Smith",
		Skills:        []string{"Python"},
		Experience:    "5 years",
		Location:      "New York",
		Sentiment:     "Positive",
		Decision:      decision.Consider,
		Reason:        "Potential candidate but some areas need discussion",
		Scores:        decision.ScoreSet{Total: 0.7},
	}

	tests := []struct {
		format string
		want   []string
	}{
		{format: "json", want: []string{`"candidate_name": "John Smith"`, `"decision": "Consider"`}},
		{format: "yaml", want: []string{"candidate_name: John Smith", "skills:\n  - Python"}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := writeOutput(&buf, tt.format, result); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		for _, want := range tt.want {
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("%s: expected %q in\n%s", tt.format, want, buf.String())
			}
		}
		if strings.Contains(buf.String(), "0.7") {
			t.Fatalf("%s: scores must not be written:\n%s", tt.format, buf.String())
		}
	}

	if err := writeOutput(&bytes.Buffer{}, "xml", result); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestPresent(t *testing.T) {
	t.Parallel()

	one := []screening.Screening{{ID: "a", Result: decision.Result{Decision: decision.Escalate}}}
	if got, ok := present(one, false).(decision.Result); !ok || got.Decision != decision.Escalate {
		t.Fatalf("expected a single result, got %#v", present(one, false))
	}
	if _, ok := present(one, true).(screening.Screening); !ok {
		t.Fatalf("expected full screening with details")
	}

	two := append(one, screening.Screening{ID: "b"})
	if got, ok := present(two, false).([]any); !ok || len(got) != 2 {
		t.Fatalf("expected a list of two, got %#v", present(two, false))
	}
}

func TestReadTranscripts(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader("Yes.\n\n  I'm based in New York.  \n")
	got, err := readTranscripts("-", stdin)
	if err != nil {
		t.Fatalf("readTranscripts: %v", err)
	}
	if len(got) != 2 || got[1] != "I'm based in New York." {
		t.Fatalf("unexpected transcripts %q", got)
	}

	if _, err := readTranscripts("/does/not/exist", nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
