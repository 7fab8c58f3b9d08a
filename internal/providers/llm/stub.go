package llm

import (
	"context"
	"sync"
)

// StaticReply is a well-formed optimization payload for LLM_PROVIDER=static.
const StaticReply = `{
  "optimized_summary": "Results-driven professional with a record of measurable impact.",
  "optimized_skills": ["Communication", "Project Management", "Data Analysis"],
  "key_achievements": ["Delivered projects on time and under budget"],
  "ats_keywords": ["leadership", "analysis", "stakeholder management"],
  "tips": ["Quantify achievements with numbers", "Mirror keywords from the job posting"],
  "ats_score": 80
}`

// Static replies with a canned completion. It backs local runs without cloud
// credentials (LLM_PROVIDER=static) and the tests of callers.
type Static struct {
	Text   string
	Tokens int
	Err    error

	mu      sync.Mutex
	prompts []string
}

func NewStatic(text string) *Static {
	if text == "" {
		text = StaticReply
	}
	return &Static{Text: text}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Close() error { return nil }

func (s *Static) Generate(_ context.Context, prompt string, _ Options) (*Completion, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return &Completion{Text: s.Text, TokensUsed: s.Tokens}, nil
}

// Prompts returns a copy of every prompt seen so far.
func (s *Static) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
