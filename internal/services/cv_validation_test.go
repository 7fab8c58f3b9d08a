package services

import (
	"testing"

	"github.com/maplepath/api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateCVRequest(t *testing.T) {
	assert.NoError(t, validateCVRequest(sampleRequest()))
	assert.Error(t, validateCVRequest(nil))

	cases := map[string]func(r *models.CVRequest){
		"industry":         func(r *models.CVRequest) { r.IndustryID = 0 },
		"job title":        func(r *models.CVRequest) { r.JobTitle = "  " },
		"full name":        func(r *models.CVRequest) { r.FullName = "" },
		"email":            func(r *models.CVRequest) { r.Email = "jane.example.com" },
		"phone":            func(r *models.CVRequest) { r.Phone = "" },
		"location":         func(r *models.CVRequest) { r.Location = "" },
		"company":          func(r *models.CVRequest) { r.Experience[0].Company = "" },
		"start format":     func(r *models.CVRequest) { r.Experience[0].StartDate = "2021/01" },
		"start month":      func(r *models.CVRequest) { r.Experience[0].StartDate = "2021-13" },
		"end format":       func(r *models.CVRequest) { r.Experience[1].EndDate = "Dec 2020" },
		"end before start": func(r *models.CVRequest) { r.Experience[1].EndDate = "2019-05" },
		"institution":      func(r *models.CVRequest) { r.Education[0].Institution = "" },
		"certification": func(r *models.CVRequest) {
			r.Certifications = []models.Certification{{IssuingOrganization: "CFA Institute"}}
		},
		"language": func(r *models.CVRequest) {
			r.Languages = []models.Language{{Proficiency: "Fluent"}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := sampleRequest()
			mutate(r)
			assert.Error(t, validateCVRequest(r))
		})
	}
}

func TestValidateExperience_Dates(t *testing.T) {
	base := models.WorkExperience{Company: "A", Position: "B", StartDate: "2020-05"}

	for _, end := range []string{"", "Present", "2020-05", "2024-01"} {
		e := base
		e.EndDate = end
		assert.NoError(t, validateExperience(e), end)
	}
}

func TestValidateCVRequest_Email(t *testing.T) {
	for _, email := range []string{"@", "jane@", "@@@", "not an email@", "jane.example.com"} {
		r := sampleRequest()
		r.Email = email
		err := validateCVRequest(r)
		if assert.Error(t, err, email) {
			assert.Equal(t, "email is not valid", err.Error())
		}
	}

	r := sampleRequest()
	r.Email = "jane.doe+cv@mail.example.ca"
	assert.NoError(t, validateCVRequest(r))
}

func TestValidateCVRequest_Messages(t *testing.T) {
	r := sampleRequest()
	r.JobTitle = "   "
	assert.EqualError(t, validateCVRequest(r), "job_title is required")

	r = sampleRequest()
	r.Experience[1].StartDate = "2019/06"
	assert.EqualError(t, validateCVRequest(r), "experience[1].start_date must be YYYY-MM")

	r = sampleRequest()
	r.Experience[0].EndDate = "now"
	assert.EqualError(t, validateCVRequest(r), `experience[0].end_date must be YYYY-MM or "Present"`)

	r = sampleRequest()
	r.Experience[1].EndDate = "2019-05"
	assert.EqualError(t, validateCVRequest(r), "experience[1]: end_date is before start_date")

	r = sampleRequest()
	r.IndustryID = -1
	assert.EqualError(t, validateCVRequest(r), "industry_id must be a positive integer")
}
