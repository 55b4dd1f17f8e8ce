package analysis

import "strings"

// toneFlags applies the three tone rules independently. Flags come back in
// canonical order.
func (a *Analyzer) toneFlags(text string) []ToneFlag {
	flags := []ToneFlag{}

	for _, re := range a.negativePatterns {
		if re.MatchString(text) {
			flags = append(flags, NegativeLanguage)
			break
		}
	}

	lower := strings.ToLower(text)
	for _, phrase := range a.vaguePhrases {
		if strings.Contains(lower, phrase) {
			flags = append(flags, VagueResponse)
			break
		}
	}

	if len(strings.Fields(text)) < a.shortResponseWords {
		flags = append(flags, ShortResponse)
	}

	return flags
}
