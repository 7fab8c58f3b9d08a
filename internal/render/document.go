// Package render turns a stored CV into a printable document. Build produces a
// renderer independent Document; FPDFRenderer and HTMLRenderer draw it.
package render

import (
	"strings"
	"time"

	"github.com/maplepath/api/internal/models"
)

const (
	SectionSummary        = "PROFESSIONAL SUMMARY"
	SectionSkills         = "CORE COMPETENCIES"
	SectionExperience     = "PROFESSIONAL EXPERIENCE"
	SectionEducation      = "EDUCATION"
	SectionCertifications = "CERTIFICATIONS"
	SectionLanguages      = "LANGUAGES"

	ContactSeparator = " | "
	SkillSeparator   = " • "
	TitleSeparator   = " — "
)

type LineKind int

const (
	LineText LineKind = iota
	// LineTitle is an entry heading: Lead in bold followed by Text.
	LineTitle
	// LineMeta is the italic date range / institution line.
	LineMeta
	LineBullet
	LineAchievement
)

type Line struct {
	Kind LineKind
	Lead string
	Text string
}

// Entry is a group of lines kept together, such as one job.
type Entry []Line

type Section struct {
	Heading string
	Entries []Entry
}

type Document struct {
	Title    string
	Author   string
	Name     string
	Contact  string
	Sections []Section
	// Timestamp is embedded as the document date. It comes from the record,
	// never the wall clock, so an unchanged CV renders to the same bytes.
	Timestamp time.Time
}

// Build lays out cv in the fixed section order. Sections with no data are omitted.
func Build(cv *models.UserCV) Document {
	doc := Document{
		Title:     cv.Title,
		Author:    cv.FullName,
		Name:      strings.ToUpper(strings.TrimSpace(cv.FullName)),
		Contact:   joinNonEmpty(ContactSeparator, cv.Email, cv.Phone, cv.Location),
		Timestamp: documentTime(cv),
	}

	if s := strings.TrimSpace(cv.Summary); s != "" {
		doc.Sections = append(doc.Sections, Section{
			Heading: SectionSummary,
			Entries: []Entry{{{Kind: LineText, Text: s}}},
		})
	}

	if skills := nonEmpty(cv.Skills); len(skills) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Heading: SectionSkills,
			Entries: []Entry{{{Kind: LineText, Text: strings.Join(skills, SkillSeparator)}}},
		})
	}

	if len(cv.Experience) > 0 {
		sec := Section{Heading: SectionExperience}
		for _, exp := range cv.Experience {
			sec.Entries = append(sec.Entries, experienceEntry(exp))
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(cv.Education) > 0 {
		sec := Section{Heading: SectionEducation}
		for _, edu := range cv.Education {
			sec.Entries = append(sec.Entries, educationEntry(edu))
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(cv.Certifications) > 0 {
		sec := Section{Heading: SectionCertifications}
		for _, c := range cv.Certifications {
			text := ""
			if c.IssuingOrganization != "" {
				text = TitleSeparator + c.IssuingOrganization
			}
			if c.IssueDate != "" {
				text += " (" + c.IssueDate + ")"
			}
			sec.Entries = append(sec.Entries, Entry{{Kind: LineTitle, Lead: c.Name, Text: text}})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(cv.Languages) > 0 {
		pairs := make([]string, 0, len(cv.Languages))
		for _, l := range cv.Languages {
			if l.Proficiency != "" {
				pairs = append(pairs, l.Language+" ("+l.Proficiency+")")
			} else {
				pairs = append(pairs, l.Language)
			}
		}
		doc.Sections = append(doc.Sections, Section{
			Heading: SectionLanguages,
			Entries: []Entry{{{Kind: LineText, Text: strings.Join(pairs, ContactSeparator)}}},
		})
	}

	return doc
}

func experienceEntry(exp models.WorkExperience) Entry {
	text := ""
	if exp.Company != "" {
		text = TitleSeparator + exp.Company
	}
	e := Entry{{Kind: LineTitle, Lead: exp.Position, Text: text}}

	end := exp.EndDate
	if end == "" {
		end = models.PeriodPresent
	}
	meta := exp.StartDate + " - " + end
	if exp.Location != "" {
		meta += ContactSeparator + exp.Location
	}
	e = append(e, Line{Kind: LineMeta, Text: meta})

	for _, r := range nonEmpty(exp.Responsibilities) {
		e = append(e, Line{Kind: LineBullet, Text: r})
	}
	for _, a := range nonEmpty(exp.Achievements) {
		e = append(e, Line{Kind: LineAchievement, Text: a})
	}
	return e
}

func educationEntry(edu models.Education) Entry {
	title := edu.Degree
	if edu.FieldOfStudy != "" {
		title += " - " + edu.FieldOfStudy
	}
	e := Entry{
		{Kind: LineTitle, Lead: title},
		{Kind: LineMeta, Text: joinNonEmpty(ContactSeparator, edu.Institution, edu.GraduationDate)},
	}
	if honors := nonEmpty(edu.Honors); len(honors) > 0 {
		e = append(e, Line{Kind: LineText, Text: "Honors: " + strings.Join(honors, ", ")})
	}
	return e
}

func documentTime(cv *models.UserCV) time.Time {
	switch {
	case !cv.UpdatedAt.IsZero():
		return cv.UpdatedAt.UTC()
	case !cv.CreatedAt.IsZero():
		return cv.CreatedAt.UTC()
	}
	return time.Unix(0, 0).UTC()
}

func joinNonEmpty(sep string, parts ...string) string {
	return strings.Join(nonEmpty(parts), sep)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
