package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/providers/llm"
	"github.com/sirupsen/logrus"
)

type GenerationSource string

const (
	SourceModel         GenerationSource = "model"
	SourceFallback      GenerationSource = "fallback"
	SourceParseFallback GenerationSource = "parse_fallback"
)

const (
	fallbackATSScore      = 75
	parseFallbackATSScore = 70
	maxFallbackSkills     = 10
	maxFallbackKeywords   = 5
)

var errNoProvider = errors.New("no language model configured")

// GenerationResult always carries a usable Optimization. Cause records why the
// model output was not used, if it was not.
type GenerationResult struct {
	Optimization models.Optimization
	Source       GenerationSource
	Provider     string
	Prompt       string
	RawText      string
	TokensUsed   int
	Latency      time.Duration
	Cause        error
}

// ResumeGenerator turns raw resume facts into optimized content. It never
// fails; model errors are absorbed into a deterministic fallback.
type ResumeGenerator interface {
	Generate(ctx context.Context, in GenerationInput) *GenerationResult
}

type resumeGenerator struct {
	provider llm.Provider
	opts     llm.Options
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewResumeGenerator accepts a nil provider; every call then takes the
// fallback path.
func NewResumeGenerator(provider llm.Provider, log logrus.FieldLogger) ResumeGenerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &resumeGenerator{
		provider: provider,
		opts:     llm.ResumeOptions,
		log:      log,
		now:      time.Now,
	}
}

func (g *resumeGenerator) Generate(ctx context.Context, in GenerationInput) *GenerationResult {
	res := &GenerationResult{Prompt: BuildResumePrompt(in)}
	fallback := FallbackOptimization(in)

	if g.provider == nil {
		res.Optimization = fallback
		res.Source = SourceFallback
		res.Cause = errNoProvider
		return res
	}
	res.Provider = g.provider.Name()

	start := g.now()
	comp, err := g.provider.Generate(ctx, res.Prompt, g.opts)
	res.Latency = g.now().Sub(start)
	if err != nil {
		g.log.WithError(err).WithField("provider", res.Provider).Warn("resume generation failed, using fallback content")
		res.Optimization = fallback
		res.Source = SourceFallback
		res.Cause = err
		return res
	}
	res.RawText = comp.Text
	res.TokensUsed = comp.TokensUsed

	raw, err := parseOptimization(comp.Text)
	if err != nil {
		g.log.WithError(err).WithField("provider", res.Provider).Warn("unparseable model response, using fallback content")
		fallback.ATSScore = parseFallbackATSScore
		res.Optimization = fallback
		res.Source = SourceParseFallback
		res.Cause = err
		return res
	}

	res.Optimization = raw.merge(fallback)
	res.Source = SourceModel
	return res
}

// FallbackOptimization derives a payload from the input alone.
func FallbackOptimization(in GenerationInput) models.Optimization {
	req := in.Request

	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = fmt.Sprintf("Experienced %s with %d+ years in the %s industry.",
			req.JobTitle, len(req.Experience), in.IndustryName)
	}

	skills := req.Skills
	if len(skills) > maxFallbackSkills {
		skills = skills[:maxFallbackSkills]
	}
	skills = append([]string{}, skills...)

	keywords := skills
	if len(keywords) > maxFallbackKeywords {
		keywords = keywords[:maxFallbackKeywords]
	}
	keywords = append([]string{}, keywords...)

	return models.Optimization{
		OptimizedSummary: summary,
		OptimizedSkills:  skills,
		KeyAchievements: []string{
			"Demonstrated expertise in core responsibilities",
			"Contributed to team and organizational success",
			"Maintained professional development",
		},
		ATSKeywords: keywords,
		Tips: []string{
			"Quantify your achievements with specific metrics",
			"Use action verbs to describe your responsibilities",
			fmt.Sprintf("Highlight %s-specific skills and certifications", in.IndustryName),
			"Tailor your resume for each application",
		},
		ATSScore: fallbackATSScore,
	}
}
