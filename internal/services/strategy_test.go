package services

import (
	"errors"
	"testing"

	"github.com/okaforcj/examforge-backend/internal/types"
)

func TestGenerateWithFallbackPrimaryWins(t *testing.T) {
	out, source, err := generateWithFallback(testLogger(), "test",
		func() (string, error) { return "primary", nil },
		func() (string, error) { return "fallback", nil },
	)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if out != "primary" || source != types.GenerationSourceAI {
		t.Fatalf("got %q/%q, want primary/ai", out, source)
	}
}

func TestGenerateWithFallbackSwallowsPrimaryError(t *testing.T) {
	out, source, err := generateWithFallback(testLogger(), "test",
		func() (string, error) { return "", errors.New("boom") },
		func() (string, error) { return "fallback", nil },
	)
	if err != nil {
		t.Fatalf("primary error must not surface: %v", err)
	}
	if out != "fallback" || source != types.GenerationSourceFallback {
		t.Fatalf("got %q/%q, want fallback/fallback", out, source)
	}
}

func TestGenerateWithFallbackPropagatesFallbackError(t *testing.T) {
	fbErr := errors.New("fallback broke")
	_, _, err := generateWithFallback(testLogger(), "test",
		func() (string, error) { return "", errors.New("boom") },
		func() (string, error) { return "", fbErr },
	)
	if !errors.Is(err, fbErr) {
		t.Fatalf("err = %v, want fallback error", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`[1,2]`, `[1,2]`},
		{"```json\n[1,2]\n```", `[1,2]`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json\n[]\n```\n ", `[]`},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
