// Package decision scores an analysis record and maps the total onto a
// screening verdict.
package decision

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rishabhsingroha/hr-screener/internal/analysis"
	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/utils"

	"go.uber.org/zap"
)

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	cfg    config.Decision
	logger *zap.Logger

	technical       map[string]struct{}
	soft            map[string]struct{}
	sentimentScores map[string]float64
}

func New(cfg config.Decision, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	scores := make(map[string]float64, len(cfg.SentimentScores))
	for label, score := range cfg.SentimentScores {
		scores[normalize(label)] = score
	}

	return &Engine{
		cfg:             cfg,
		logger:          log,
		technical:       skillSet(cfg.TechnicalSkills),
		soft:            skillSet(cfg.SoftSkills),
		sentimentScores: scores,
	}
}

// Evaluate turns record into a verdict. It never panics: a failed record or an
// internal failure produces the Error verdict.
func (e *Engine) Evaluate(record *analysis.Record) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("evaluation failed", zap.Any("panic", r))
			result = errorResult(fmt.Sprint(r))
		}
	}()

	if record == nil {
		return errorResult("analysis record is missing")
	}
	if record.Failed() {
		e.logger.Warn("evaluating failed analysis", zap.String("error", record.Error))
		return errorResult(record.Error)
	}

	scores := e.Score(record)
	verdict, reason := e.decide(scores.Total, record.ToneFlags)

	info := record.ExtractedInfo
	result = Result{
		CandidateName: orDefault(info.Name, unknownName),
		Skills:        e.formatSkills(record.Keywords),
		Experience:    orDefault(info.Experience, notSpecified),
		Location:      orDefault(info.Location, notSpecified),
		Sentiment:     string(record.Sentiment),
		Decision:      verdict,
		Reason:        reason,
		Scores:        scores,
	}

	e.logger.Debug("candidate evaluated",
		zap.String("decision", string(verdict)),
		zap.Float64("skills_score", scores.Skills),
		zap.Float64("tone_score", scores.Tone),
		zap.Float64("experience_score", scores.Experience),
		zap.Float64("total_score", scores.Total),
	)

	return result
}

// Score computes the component scores and their weighted total.
func (e *Engine) Score(record *analysis.Record) ScoreSet {
	s := ScoreSet{
		Skills:     e.skillScore(record.Keywords),
		Tone:       e.toneScore(record.Sentiment, len(record.ToneFlags)),
		Experience: e.experienceScore(record.ExtractedInfo.Experience),
	}

	w := e.cfg.Weights
	s.Total = w.Skills*s.Skills + w.Tone*s.Tone + w.Experience*s.Experience
	return s
}

// skillScore counts each dictionary entry once, however often it appears among
// the keywords.
func (e *Engine) skillScore(keywords []string) float64 {
	var technical, soft int
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		key := normalize(kw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := e.technical[key]; ok {
			technical++
		}
		if _, ok := e.soft[key]; ok {
			soft++
		}
	}

	weighted := float64(technical)*e.cfg.TechnicalMatchWeight + float64(soft)*e.cfg.SoftMatchWeight
	return min(weighted/e.cfg.MaxSkillNormalizer, 1)
}

func (e *Engine) toneScore(sentiment analysis.Sentiment, flags int) float64 {
	base, ok := e.sentimentScores[normalize(string(sentiment))]
	if !ok {
		base = e.cfg.DefaultSentimentScore
	}
	return max(base-e.cfg.ToneFlagPenalty*float64(flags), 0)
}

// experienceScore reads the leading number of experience, e.g. "5 years" or
// "2.5 years".
func (e *Engine) experienceScore(experience string) float64 {
	fields := strings.Fields(experience)
	if len(fields) == 0 {
		return 0
	}

	years, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0
	}

	return min(years/e.cfg.ExperienceYearsCap, 1)
}

func (e *Engine) decide(total float64, flags []analysis.ToneFlag) (Verdict, string) {
	t := e.cfg.Thresholds

	switch {
	case total >= t.Recommend:
		return Recommend, "Strong candidate with good skills and positive interaction"
	case total >= t.Consider:
		return Consider, "Potential candidate but some areas need discussion"
	case total >= t.Escalate && len(flags) > 0:
		names := make([]string, len(flags))
		for i, f := range flags {
			names[i] = string(f)
		}
		return Escalate, "Review needed due to: " + strings.Join(names, ", ")
	case total >= t.Escalate:
		return ConsiderWithReservations, "Below average performance in key areas"
	default:
		return DoNotRecommend, "Does not meet minimum requirements"
	}
}

// formatSkills keeps the keywords found in either skill dictionary, title-cased,
// in their original order.
func (e *Engine) formatSkills(keywords []string) []string {
	skills := []string{}
	for _, kw := range keywords {
		key := normalize(kw)
		_, technical := e.technical[key]
		_, soft := e.soft[key]
		if technical || soft {
			skills = append(skills, titleCase(kw))
		}
	}
	return utils.FirstN(skills, e.cfg.MaxFormattedSkills)
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if key := normalize(s); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
