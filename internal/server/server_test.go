package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/analysis"
	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/decision"
	"github.com/rishabhsingroha/hr-screener/internal/screening"
	"github.com/rishabhsingroha/hr-screener/internal/transcribe"
)

type fakeTranscriber struct {
	text string
	err  error
	url  string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioURL string) (transcribe.Transcript, error) {
	f.url = audioURL
	return transcribe.Transcript{Text: f.text, Language: "en"}, f.err
}

func newTestServer(t *testing.T, transcriber transcribe.Transcriber) http.Handler {
	t.Helper()

	cfg := config.Default()
	analyzer, err := analysis.New(cfg.Analysis, ai.Models{}, nil)
	if err != nil {
		t.Fatalf("analysis.New: %v", err)
	}

	var opts []screening.Option
	if transcriber != nil {
		opts = append(opts, screening.WithTranscriber(transcriber))
	}
	screener := screening.New(analyzer, decision.New(cfg.Decision, nil), nil, opts...)

	return New(config.Server{Addr: ":0", RequestTimeout: time.Second}, screener, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatusEndpoints(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil)

	for _, path := range []string{"/", "/health"} {
		rec := do(t, h, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/health", "")
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected health body %s", rec.Body.String())
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/evaluate",
		`{"transcript": "I am John Doe with 5 years of software development experience in Python and React.", "language": "en"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result decision.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if result.Decision != decision.ConsiderWithReservations || result.Experience != "5 years" {
		t.Fatalf("unexpected result %+v", result)
	}
	if strings.Contains(rec.Body.String(), "Scores") || strings.Contains(rec.Body.String(), "total") {
		t.Fatalf("scores must not be serialised: %s", rec.Body.String())
	}
}

func TestEvaluateRejectsInvalidRequests(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing transcript", body: `{"language": "en"}`, want: http.StatusBadRequest},
		{name: "bad json", body: `{"transcript": `, want: http.StatusBadRequest},
		{name: "bad language", body: `{"transcript": "hi", "language": "not a tag!"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		if rec := do(t, h, http.MethodPost, "/evaluate", tt.body); rec.Code != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, rec.Code)
		}
	}
}

func TestProcessResponse(t *testing.T) {
	t.Parallel()

	if rec := do(t, newTestServer(t, nil), http.MethodPost, "/process-response", `{"audio_url": "https://x/a.wav"}`); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without transcriber, got %d", rec.Code)
	}

	fake := &fakeTranscriber{text: "Yes, I can join within 2 weeks."}
	h := newTestServer(t, fake)

	rec := do(t, h, http.MethodPost, "/process-response?audio_url=https://x/q.wav", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for query parameter, got %d: %s", rec.Code, rec.Body.String())
	}
	if fake.url != "https://x/q.wav" {
		t.Fatalf("unexpected audio url %q", fake.url)
	}

	rec = do(t, h, http.MethodPost, "/process-response", `{"audio_url": "https://x/b.wav"}`)
	if rec.Code != http.StatusOK || fake.url != "https://x/b.wav" {
		t.Fatalf("expected body url to be used, got %d %q", rec.Code, fake.url)
	}

	if rec := do(t, h, http.MethodPost, "/process-response", `{"audio_url": "not a url"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid url, got %d", rec.Code)
	}

	failing := newTestServer(t, &fakeTranscriber{err: errors.New("decode failed")})
	if rec := do(t, failing, http.MethodPost, "/process-response", `{"audio_url": "https://x/c.wav"}`); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on transcription failure, got %d", rec.Code)
	}
}
