package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rishabhsingroha/hr-screener/internal/ai"
	"github.com/rishabhsingroha/hr-screener/internal/utils"

	"go.uber.org/zap"
)

var experiencePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:years?|yrs?)\b`)

// ExtractInfo pulls the candidate fields out of transcript on its own, without
// the rest of the analysis. It never fails: missing fields stay empty.
func (a *Analyzer) ExtractInfo(ctx context.Context, transcript string) (info ExtractedInfo) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("info extraction failed", zap.Any("panic", r))
			info = ExtractedInfo{Skills: []string{}}
		}
	}()

	entities, _ := a.entities(ctx, transcript)
	return a.extractInfo(transcript, entities)
}

func (a *Analyzer) extractInfo(text string, entities map[string][]string) ExtractedInfo {
	info := ExtractedInfo{Skills: []string{}}

	if names := entities[ai.EntityPerson]; len(names) > 0 {
		info.Name = names[0]
	}
	for _, place := range entities[ai.EntityGPE] {
		if _, skip := a.nonLocations[strings.ToLower(strings.TrimSpace(place))]; !skip {
			info.Location = place
			break
		}
	}

	if m := experiencePattern.FindStringSubmatch(text); m != nil {
		info.Experience = fmt.Sprintf("%s years", m[1])
	}

	info.Skills = append(info.Skills, utils.FirstN(a.fallbackKeywords(text), a.maxInfoSkills)...)

	return info
}
