package analysis

import (
	"encoding/json"
	"slices"
)

// Sentiment is a label on the five point polarity scale.
type Sentiment string

const (
	VeryPositive Sentiment = "Very Positive"
	Positive     Sentiment = "Positive"
	Neutral      Sentiment = "Neutral"
	Negative     Sentiment = "Negative"
	VeryNegative Sentiment = "Very Negative"
)

// Rank orders the scale from VeryNegative (0) to VeryPositive (4). Unknown labels
// rank -1.
func (s Sentiment) Rank() int {
	switch s {
	case VeryPositive:
		return 4
	case Positive:
		return 3
	case Neutral:
		return 2
	case Negative:
		return 1
	case VeryNegative:
		return 0
	default:
		return -1
	}
}

// SentimentFromCompound maps a compound polarity score in [-1, 1] to a label.
func SentimentFromCompound(compound float64) Sentiment {
	switch {
	case compound >= 0.5:
		return VeryPositive
	case compound > 0:
		return Positive
	case compound == 0:
		return Neutral
	case compound > -0.5:
		return Negative
	default:
		return VeryNegative
	}
}

// ToneFlag is a red-flag signal about the phrasing of a response.
type ToneFlag string

const (
	NegativeLanguage ToneFlag = "Negative language detected"
	VagueResponse    ToneFlag = "Vague response"
	ShortResponse    ToneFlag = "Very short response"
)

// Stage names one guarded sub-step of the analyzer.
type Stage string

const (
	StageSentiment     Stage = "sentiment"
	StageKeywords      Stage = "keywords"
	StageEntities      Stage = "entities"
	StageTone          Stage = "tone"
	StageExtractedInfo Stage = "extracted_info"
)

// Path tells which implementation produced a stage value.
type Path string

const (
	PathPrimary  Path = "primary"
	PathFallback Path = "fallback"
)

// StageReport records how a stage was computed. Error holds the reason the primary
// path was abandoned, if it was.
type StageReport struct {
	Stage Stage  `json:"stage" yaml:"stage"`
	Path  Path   `json:"path" yaml:"path"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExtractedInfo holds the structured candidate fields. Empty strings mean absent.
type ExtractedInfo struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Experience string   `json:"experience,omitempty" yaml:"experience,omitempty"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Skills     []string `json:"skills" yaml:"skills"`
}

// Record is the analyzer output for one transcript. A record with a non-empty
// Error is the error marker: none of the other fields are meaningful.
type Record struct {
	Sentiment     Sentiment           `json:"sentiment" yaml:"sentiment"`
	Keywords      []string            `json:"keywords" yaml:"keywords"`
	Entities      map[string][]string `json:"entities" yaml:"entities"`
	ToneFlags     []ToneFlag          `json:"tone_flags" yaml:"tone_flags"`
	ExtractedInfo ExtractedInfo       `json:"extracted_info" yaml:"extracted_info"`
	Stages        []StageReport       `json:"stages,omitempty" yaml:"stages,omitempty"`
	Error         string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether r is the error marker.
func (r *Record) Failed() bool {
	return r == nil || r.Error != ""
}

// HasFlag reports whether flag was raised.
func (r *Record) HasFlag(flag ToneFlag) bool {
	return r != nil && slices.Contains(r.ToneFlags, flag)
}

// Path returns the path recorded for stage, or an empty Path when the stage did not run.
func (r *Record) Path(stage Stage) Path {
	if r == nil {
		return ""
	}
	for _, report := range r.Stages {
		if report.Stage == stage {
			return report.Path
		}
	}
	return ""
}

// MarshalJSON emits only {"error": ...} for the error marker.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error" yaml:"error"`
		}{Error: r.Error})
	}

	type plain Record
	return json.Marshal(plain(r))
}

// MarshalYAML mirrors MarshalJSON.
func (r Record) MarshalYAML() (any, error) {
	if r.Error != "" {
		return map[string]string{"error": r.Error}, nil
	}

	type plain Record
	return plain(r), nil
}

func newRecord() *Record {
	return &Record{
		Keywords:  []string{},
		Entities:  map[string][]string{},
		ToneFlags: []ToneFlag{},
		ExtractedInfo: ExtractedInfo{
			Skills: []string{},
		},
	}
}
