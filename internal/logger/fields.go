package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider names the nlp provider serving the primary models.
	FieldProvider = "nlp_provider"
	// FieldModel names the model behind the provider.
	FieldModel = "nlp_model"
	// FieldStage names the analyzer sub-step a log line refers to.
	FieldStage = "stage"
	// FieldPath tells whether the primary model or the fallback produced a value.
	FieldPath = "path"
	// FieldEvaluationID carries the identifier of one screening.
	FieldEvaluationID = "evaluation_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields. Keys and values are
// trimmed and pairs with an empty side are dropped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the nlp provider and model. Empty values are skipped.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// StageFields tags a log line with an analyzer stage and the path it took.
func StageFields(stage, path string) []zap.Field {
	return StringFields(
		StringField{Key: FieldStage, Value: stage},
		StringField{Key: FieldPath, Value: path},
	)
}
