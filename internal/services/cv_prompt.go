package services

import (
	"fmt"
	"strings"

	"github.com/maplepath/api/internal/models"
)

// GenerationInput is everything the resume generator needs for one attempt.
type GenerationInput struct {
	IndustryName string
	IndustryTips []string
	Request      *models.CVRequest
}

const promptOutputContract = `OUTPUT
Respond with a single JSON object and nothing else, using exactly these keys:
{
  "optimized_summary": "3-4 sentence professional summary written for this role",
  "optimized_skills": ["skills reordered by relevance, including ATS keywords"],
  "key_achievements": ["up to 5 quantified achievements"],
  "ats_keywords": ["keywords an applicant tracking system will look for"],
  "tips": ["3-5 specific tips for this application"],
  "ats_score": 0
}
ats_score is an integer from 0 to 100 estimating ATS compatibility.`

// BuildResumePrompt renders the instruction sent to the model. The output is a
// pure function of in.
func BuildResumePrompt(in GenerationInput) string {
	req := in.Request
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert Canadian resume writer specializing in the %s industry.\n\n", in.IndustryName)
	fmt.Fprintf(&b, "Task: optimize the resume content below for a %s position in Canada. Follow Canadian resume conventions:\n", req.JobTitle)
	b.WriteString("- No photo, age or marital status\n")
	b.WriteString("- Lead with achievements backed by metrics\n")
	b.WriteString("- Start bullet points with action verbs\n")
	b.WriteString("- Optimize for applicant tracking systems (ATS)\n")
	b.WriteString("- Keep it to 1-2 pages\n\n")

	b.WriteString("INPUT\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", req.JobTitle)
	fmt.Fprintf(&b, "Industry: %s\n\n", in.IndustryName)

	if s := strings.TrimSpace(req.Summary); s != "" {
		fmt.Fprintf(&b, "Current Summary:\n%s\n\n", s)
	}

	b.WriteString("Work Experience:\n")
	for _, exp := range req.Experience {
		end := exp.EndDate
		if end == "" {
			end = models.PeriodPresent
		}
		fmt.Fprintf(&b, "- %s at %s (%s - %s)\n", exp.Position, exp.Company, exp.StartDate, end)
		for _, r := range exp.Responsibilities {
			fmt.Fprintf(&b, "  • %s\n", r)
		}
		for _, a := range exp.Achievements {
			fmt.Fprintf(&b, "  ✓ %s\n", a)
		}
	}

	b.WriteString("\nEducation:\n")
	for _, edu := range req.Education {
		fmt.Fprintf(&b, "- %s in %s from %s (%s)\n", edu.Degree, edu.FieldOfStudy, edu.Institution, edu.GraduationDate)
	}

	fmt.Fprintf(&b, "\nSkills:\n%s\n", strings.Join(req.Skills, ", "))

	if len(req.Certifications) > 0 {
		b.WriteString("\nCertifications:\n")
		for _, c := range req.Certifications {
			fmt.Fprintf(&b, "- %s from %s\n", c.Name, c.IssuingOrganization)
		}
	}

	if len(req.Languages) > 0 {
		b.WriteString("\nLanguages:\n")
		for _, l := range req.Languages {
			fmt.Fprintf(&b, "- %s: %s\n", l.Language, l.Proficiency)
		}
	}

	if s := strings.TrimSpace(req.AdditionalInfo); s != "" {
		fmt.Fprintf(&b, "\nAdditional Information:\n%s\n", s)
	}

	if len(in.IndustryTips) > 0 {
		b.WriteString("\nIndustry-Specific Tips:\n")
		for _, t := range in.IndustryTips {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	b.WriteString("\n")
	b.WriteString(promptOutputContract)
	b.WriteString("\n")
	return b.String()
}
