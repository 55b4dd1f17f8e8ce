package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rishabhsingroha/hr-screener/internal/analysis"
	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/decision"
	"github.com/rishabhsingroha/hr-screener/internal/screening"
)

func TestDemoAnswersWriteToOutput(t *testing.T) {
	t.Parallel()

	q := config.Question{ID: "intro", Text: "Can you tell me about yourself?"}

	tests := []struct {
		index int
		want  string
	}{
		{index: 0, want: demoAnswers[0]},
		{index: len(demoAnswers), want: demoFallbackAnswer},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		answer, err := answerFor(&buf, q, tt.index, true)
		if err != nil {
			t.Fatalf("answerFor(%d): %v", tt.index, err)
		}
		if answer != tt.want {
			t.Fatalf("answerFor(%d): expected %q, got %q", tt.index, tt.want, answer)
		}
		if want := q.Text + "\n> " + tt.want + "\n"; buf.String() != want {
			t.Fatalf("answerFor(%d): expected output %q, got %q", tt.index, want, buf.String())
		}
	}
}

func TestPrintAnswerSummary(t *testing.T) {
	t.Parallel()

	s := screening.Screening{
		Analysis: &analysis.Record{
			ToneFlags: []analysis.ToneFlag{analysis.ShortResponse},
			ExtractedInfo: analysis.ExtractedInfo{
				Experience: "5 years",
				Location:   "New York",
			},
		},
		Result: decision.Result{Sentiment: "Positive", Decision: decision.Consider},
	}

	var buf bytes.Buffer
	printAnswerSummary(&buf, config.Question{ID: "experience"}, s)

	got := buf.String()
	for _, want := range []string{
		"[experience] sentiment=Positive decision=Consider",
		"flags=[Very short response]",
		`experience="5 years"`,
		`location="New York"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("expected summary to end with a newline, got %q", got)
	}
}
