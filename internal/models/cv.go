package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	FormatCanadian = "canadian"
	PeriodPresent  = "Present"
)

type WorkExperience struct {
	Company          string   `json:"company" validate:"notblank"`
	Position         string   `json:"position" validate:"notblank"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date" validate:"required,datetime=2006-01"`
	EndDate          string   `json:"end_date,omitempty" validate:"omitempty,oneof=Present|datetime=2006-01"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements,omitempty"`
}

type Education struct {
	Institution    string   `json:"institution" validate:"notblank"`
	Degree         string   `json:"degree" validate:"notblank"`
	FieldOfStudy   string   `json:"field_of_study"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduation_date"`
	GPA            string   `json:"gpa,omitempty"`
	Honors         []string `json:"honors,omitempty"`
}

type Certification struct {
	Name                string `json:"name" validate:"notblank"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpiryDate          string `json:"expiry_date,omitempty"`
	CredentialID        string `json:"credential_id,omitempty"`
}

type Language struct {
	Language    string `json:"language" validate:"notblank"`
	Proficiency string `json:"proficiency"`
}

// CVRequest is the caller-supplied input for one generation attempt. It is not
// stored as its own row; a copy lives in UserCV.Content.OriginalInput.
type CVRequest struct {
	IndustryID     int64            `json:"industry_id" validate:"gt=0"`
	JobTitle       string           `json:"job_title" validate:"notblank"`
	FullName       string           `json:"full_name" validate:"notblank"`
	Email          string           `json:"email" validate:"required,email"`
	Phone          string           `json:"phone" validate:"notblank"`
	Location       string           `json:"location" validate:"notblank"`
	Summary        string           `json:"summary,omitempty"`
	Experience     []WorkExperience `json:"experience" validate:"dive"`
	Education      []Education      `json:"education" validate:"dive"`
	Skills         []string         `json:"skills"`
	Certifications []Certification  `json:"certifications,omitempty" validate:"dive"`
	Languages      []Language       `json:"languages,omitempty" validate:"dive"`
	AdditionalInfo string           `json:"additional_info,omitempty"`
}

// Optimization is the structured payload produced by the content generator.
type Optimization struct {
	OptimizedSummary string   `json:"optimized_summary"`
	OptimizedSkills  []string `json:"optimized_skills"`
	KeyAchievements  []string `json:"key_achievements"`
	ATSKeywords      []string `json:"ats_keywords"`
	Tips             []string `json:"tips"`
	ATSScore         int      `json:"ats_score"`
}

type CVContent struct {
	OriginalInput   CVRequest    `json:"original_input"`
	AIOptimizations Optimization `json:"ai_optimizations"`
	Industry        IndustryRef  `json:"industry"`
}

type UserCV struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     int64  `gorm:"column:user_id;index" json:"user_id"`
	IndustryID *int64 `gorm:"column:industry_id" json:"industry_id,omitempty"`
	Title      string `gorm:"column:title;type:text" json:"title"`

	// contact snapshot taken at generation time
	FullName string `gorm:"column:full_name;type:text" json:"full_name"`
	Email    string `gorm:"column:email;type:text" json:"email"`
	Phone    string `gorm:"column:phone;type:text" json:"phone"`
	Location string `gorm:"column:location;type:text" json:"location"`

	Summary        string                              `gorm:"column:summary;type:text" json:"summary"`
	Experience     datatypes.JSONSlice[WorkExperience] `gorm:"column:experience;type:jsonb" json:"experience"`
	Education      datatypes.JSONSlice[Education]      `gorm:"column:education;type:jsonb" json:"education"`
	Skills         pq.StringArray                      `gorm:"column:skills;type:text[]" json:"skills"`
	Certifications datatypes.JSONSlice[Certification]  `gorm:"column:certifications;type:jsonb" json:"certifications"`
	Languages      datatypes.JSONSlice[Language]       `gorm:"column:languages;type:jsonb" json:"languages"`

	Content    datatypes.JSONType[CVContent] `gorm:"column:cv_content;type:jsonb" json:"cv_content"`
	FormatType string                        `gorm:"column:format_type;type:text;default:canadian" json:"format_type"`
	PDFURL     *string                       `gorm:"column:pdf_url;type:text" json:"pdf_url,omitempty"`
	IsFavorite bool                          `gorm:"column:is_favorite;default:false" json:"is_favorite"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (UserCV) TableName() string { return "user_cvs" }

// CVSummary is the list view of a UserCV.
type CVSummary struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	IndustryID *int64    `json:"industry_id,omitempty"`
	FormatType string    `json:"format_type"`
	IsFavorite bool      `json:"is_favorite"`
	PDFURL     *string   `json:"pdf_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (cv *UserCV) Summarize() CVSummary {
	return CVSummary{
		ID:         cv.ID,
		Title:      cv.Title,
		IndustryID: cv.IndustryID,
		FormatType: cv.FormatType,
		IsFavorite: cv.IsFavorite,
		PDFURL:     cv.PDFURL,
		CreatedAt:  cv.CreatedAt,
		UpdatedAt:  cv.UpdatedAt,
	}
}
