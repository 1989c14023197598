package services

import (
	"encoding/json"
	"strings"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/types"
)

// generateWithFallback coordinates the two-tier generation strategy: try the
// AI-assisted primary, and on any failure run the deterministic fallback.
// A primary failure is never propagated to the caller; the returned source
// says which tier produced the value.
func generateWithFallback[T any](log *logger.Logger, op string, primary func() (T, error), fallback func() (T, error)) (T, string, error) {
	out, err := primary()
	if err == nil {
		return out, types.GenerationSourceAI, nil
	}
	log.Warn("primary generation failed, falling back", "op", op, "error", err)

	out, fbErr := fallback()
	if fbErr != nil {
		var zero T
		return zero, types.GenerationSourceFallback, fbErr
	}
	return out, types.GenerationSourceFallback, nil
}

// stripCodeFences removes a surrounding markdown code fence, which models
// frequently wrap JSON answers in despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
