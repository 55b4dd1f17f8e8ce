package decision

// Verdict is the screening outcome.
type Verdict string

const (
	Recommend                Verdict = "Recommend"
	Consider                 Verdict = "Consider"
	ConsiderWithReservations Verdict = "Consider with Reservations"
	Escalate                 Verdict = "Escalate"
	DoNotRecommend           Verdict = "Do Not Recommend"
	Error                    Verdict = "Error"
)

const (
	unknownName  = "Unknown"
	notSpecified = "Not specified"
	notAvailable = "N/A"
)

// ScoreSet holds the component scores, each in [0, 1].
type ScoreSet struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Tone       float64 `json:"tone" yaml:"tone"`
	Experience float64 `json:"experience" yaml:"experience"`
	Total      float64 `json:"total" yaml:"total"`
}

// Result is the flat verdict handed to consumers. Scores stay out of the
// serialised shape and are only logged.
type Result struct {
	CandidateName string   `json:"candidate_name" yaml:"candidate_name"`
	Skills        []string `json:"skills" yaml:"skills"`
	Experience    string   `json:"experience" yaml:"experience"`
	Location      string   `json:"location" yaml:"location"`
	Sentiment     string   `json:"sentiment" yaml:"sentiment"`
	Decision      Verdict  `json:"decision" yaml:"decision"`
	Reason        string   `json:"reason,omitempty" yaml:"reason,omitempty"`

	Scores ScoreSet `json:"-" yaml:"-"`
}

func errorResult(msg string) Result {
	return Result{
		CandidateName: string(Error),
		Skills:        []string{},
		Experience:    notAvailable,
		Location:      notAvailable,
		Sentiment:     notAvailable,
		Decision:      Error,
		Reason:        "Evaluation failed: " + msg,
	}
}
