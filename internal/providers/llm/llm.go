package llm

import (
	"context"
	"errors"
	"strings"
)

// Options are the sampling settings for one completion.
type Options struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// ResumeOptions are the fixed settings used for CV content generation.
var ResumeOptions = Options{
	Temperature:     0.7,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 2048,
}

type Completion struct {
	Text       string
	TokensUsed int
}

type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts Options) (*Completion, error)
	Close() error
}

var ErrEmptyResponse = errors.New("llm: model returned no text")

// joinParts concatenates text parts of the first candidate that has any.
func joinParts(parts []string) (string, error) {
	s := strings.TrimSpace(strings.Join(parts, ""))
	if s == "" {
		return "", ErrEmptyResponse
	}
	return s, nil
}
