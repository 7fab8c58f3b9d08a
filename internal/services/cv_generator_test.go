package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maplepath/api/internal/logger"
	"github.com/maplepath/api/internal/providers/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financeInput() GenerationInput {
	ind := financeIndustry()
	return GenerationInput{IndustryName: ind.Name, IndustryTips: ind.Tips, Request: sampleRequest()}
}

func TestGenerator_NoProviderUsesFallback(t *testing.T) {
	g := NewResumeGenerator(nil, logger.Discard())

	res := g.Generate(context.Background(), financeInput())

	assert.Equal(t, SourceFallback, res.Source)
	assert.ErrorIs(t, res.Cause, errNoProvider)
	assert.Contains(t, res.Optimization.OptimizedSummary, "Finance & Banking")
	assert.Contains(t, res.Optimization.OptimizedSummary, "2+ years")
	assert.Equal(t, sampleRequest().Skills, res.Optimization.OptimizedSkills)
	assert.Len(t, res.Optimization.ATSKeywords, 5)
	assert.Len(t, res.Optimization.KeyAchievements, 3)
	assert.Len(t, res.Optimization.Tips, 4)
	assert.Contains(t, res.Optimization.Tips, "Highlight Finance & Banking-specific skills and certifications")
	assert.Equal(t, 75, res.Optimization.ATSScore)
	assert.NotEmpty(t, res.Prompt)
}

func TestGenerator_ProviderErrorUsesFallback(t *testing.T) {
	p := &llm.Static{Err: errors.New("quota exceeded")}
	g := NewResumeGenerator(p, logger.Discard())

	res := g.Generate(context.Background(), financeInput())

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "static", res.Provider)
	assert.EqualError(t, res.Cause, "quota exceeded")
	assert.Equal(t, 75, res.Optimization.ATSScore)
	require.Len(t, p.Prompts(), 1)
	assert.Equal(t, res.Prompt, p.Prompts()[0])
}

func TestGenerator_UnparseableReplyScores70(t *testing.T) {
	cases := map[string]string{
		"no json":      "I'm sorry, I can't help with that.",
		"broken json":  `{"optimized_summary": "x",`,
		"wrong types":  `{"optimized_summary": 12, "ats_score": "high"}`,
		"no content":   `{"ats_score": 90}`,
		"reversed":     `} nothing {`,
		"skills types": `{"optimized_skills": [1, 2, 3]}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewResumeGenerator(&llm.Static{Text: reply, Tokens: 12}, logger.Discard())

			res := g.Generate(context.Background(), financeInput())

			assert.Equal(t, SourceParseFallback, res.Source)
			assert.Error(t, res.Cause)
			assert.Equal(t, 70, res.Optimization.ATSScore)
			assert.Equal(t, reply, res.RawText)
			assert.Equal(t, 12, res.TokensUsed)
			assert.Equal(t, sampleRequest().Skills, res.Optimization.OptimizedSkills)
		})
	}
}

func TestGenerator_ModelReplyWrappedInProse(t *testing.T) {
	reply := "Here is the result:\n```json\n" + `{
  "optimized_summary": "Analyst with measurable impact on month-end close.",
  "optimized_skills": ["Financial Modeling", "SQL"],
  "key_achievements": ["Cut close time by 30%"],
  "ats_keywords": ["variance analysis"],
  "tips": ["Lead with the close-time result"],
  "ats_score": 88
}` + "\n```\nGood luck!"
	g := NewResumeGenerator(&llm.Static{Text: reply, Tokens: 321}, logger.Discard())

	res := g.Generate(context.Background(), financeInput())

	require.Equal(t, SourceModel, res.Source)
	assert.NoError(t, res.Cause)
	opt := res.Optimization
	assert.Equal(t, "Analyst with measurable impact on month-end close.", opt.OptimizedSummary)
	assert.Equal(t, []string{"Financial Modeling", "SQL"}, opt.OptimizedSkills)
	assert.Equal(t, []string{"Cut close time by 30%"}, opt.KeyAchievements)
	assert.Equal(t, []string{"variance analysis"}, opt.ATSKeywords)
	assert.Equal(t, []string{"Lead with the close-time result"}, opt.Tips)
	assert.Equal(t, 88, opt.ATSScore)
	assert.Equal(t, 321, res.TokensUsed)
}

func TestGenerator_PartialReplyFilledFromFallback(t *testing.T) {
	g := NewResumeGenerator(&llm.Static{Text: `{"optimized_summary": "Sharp analyst."}`}, logger.Discard())

	res := g.Generate(context.Background(), financeInput())

	require.Equal(t, SourceModel, res.Source)
	assert.Equal(t, "Sharp analyst.", res.Optimization.OptimizedSummary)
	assert.Equal(t, sampleRequest().Skills, res.Optimization.OptimizedSkills)
	assert.Len(t, res.Optimization.KeyAchievements, 3)
	assert.Len(t, res.Optimization.Tips, 4)
	assert.Equal(t, 75, res.Optimization.ATSScore)
}

func TestGenerator_ScoreClamped(t *testing.T) {
	for reply, want := range map[string]int{
		`{"tips": ["a"], "ats_score": 140}`:  100,
		`{"tips": ["a"], "ats_score": -5}`:   0,
		`{"tips": ["a"], "ats_score": 82.6}`: 83,
	} {
		g := NewResumeGenerator(&llm.Static{Text: reply}, logger.Discard())
		res := g.Generate(context.Background(), financeInput())
		assert.Equal(t, want, res.Optimization.ATSScore, reply)
	}
}

func TestFallbackOptimization_CapsSkills(t *testing.T) {
	in := financeInput()
	in.Request.Skills = nil
	for i := 0; i < 14; i++ {
		in.Request.Skills = append(in.Request.Skills, fmt.Sprintf("skill-%d", i))
	}
	in.Request.Summary = "My own summary."

	opt := FallbackOptimization(in)

	assert.Len(t, opt.OptimizedSkills, 10)
	assert.Equal(t, "skill-9", opt.OptimizedSkills[9])
	assert.Equal(t, []string{"skill-0", "skill-1", "skill-2", "skill-3", "skill-4"}, opt.ATSKeywords)
	assert.Equal(t, "My own summary.", opt.OptimizedSummary)

	// the fallback must not alias the request
	opt.OptimizedSkills[0] = "changed"
	assert.Equal(t, "skill-0", in.Request.Skills[0])
}

func TestFallbackOptimization_BlankSummaryUsesTemplate(t *testing.T) {
	in := financeInput()
	in.Request.Summary = " \n\t "

	opt := FallbackOptimization(in)
	assert.Equal(t, "Experienced Senior Analyst with 2+ years in the Finance & Banking industry.", opt.OptimizedSummary)

	in.Request.Summary = "  Own words.  "
	assert.Equal(t, "Own words.", FallbackOptimization(in).OptimizedSummary)
}

func TestBuildResumePrompt(t *testing.T) {
	in := financeInput()
	in.Request.Summary = "Detail-oriented analyst."

	p := BuildResumePrompt(in)

	assert.Contains(t, p, "specializing in the Finance & Banking industry")
	assert.Contains(t, p, "Job Title: Senior Analyst")
	assert.Contains(t, p, "Current Summary:\nDetail-oriented analyst.")
	assert.Contains(t, p, "- Analyst at Maple Bank (2021-01 - Present)")
	assert.Contains(t, p, "- Junior Analyst at Northern Credit (2019-06 - 2020-12)")
	assert.Contains(t, p, "  ✓ Cut close time by 30%")
	assert.Contains(t, p, "Excel, SQL, Financial Modeling, Forecasting, Power BI")
	assert.Contains(t, p, "- Mention CPA or CFA progress")
	assert.Contains(t, p, `"ats_score"`)
	assert.NotContains(t, p, "Certifications:")
	assert.Equal(t, p, BuildResumePrompt(in))
}

func TestGenerate_StaticReplyIsModelOutput(t *testing.T) {
	g := NewResumeGenerator(llm.NewStatic(""), logger.Discard())

	res := g.Generate(context.Background(), financeInput())

	require.Equal(t, SourceModel, res.Source)
	assert.Equal(t, "static", res.Provider)
	assert.Equal(t, 80, res.Optimization.ATSScore)
	assert.NotEmpty(t, res.Optimization.OptimizedSummary)
}
