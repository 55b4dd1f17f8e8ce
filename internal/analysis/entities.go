package analysis

import (
	"context"
	"strings"
)

func (a *Analyzer) entities(ctx context.Context, text string) (map[string][]string, StageReport) {
	var primary func(context.Context) (map[string][]string, error)
	if a.models.Entities != nil {
		primary = func(ctx context.Context) (map[string][]string, error) {
			found, err := a.models.Entities.Entities(ctx, text)
			if err != nil {
				return nil, err
			}

			grouped := make(map[string][]string)
			for _, entity := range found {
				label := strings.ToUpper(strings.TrimSpace(entity.Label))
				value := strings.TrimSpace(entity.Text)
				if label == "" || value == "" {
					continue
				}
				grouped[label] = append(grouped[label], value)
			}
			return grouped, nil
		}
	}

	return runStage(ctx, a, StageEntities, primary, func() map[string][]string {
		return map[string][]string{}
	})
}
