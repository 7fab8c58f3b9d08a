package services

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/maplepath/api/internal/models"
	"github.com/maplepath/api/internal/utils"
	"github.com/stretchr/testify/require"
)

func financeIndustry() models.Industry {
	return models.Industry{
		ID:       3,
		Name:     "Finance & Banking",
		Tips:     pq.StringArray{"Mention CPA or CFA progress", "Show regulatory familiarity"},
		Keywords: pq.StringArray{"financial analysis", "risk"},
		IsActive: true,
	}
}

func sampleRequest() *models.CVRequest {
	return &models.CVRequest{
		IndustryID: 3,
		JobTitle:   "Senior Analyst",
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "416-555-0100",
		Location:   "Toronto, ON",
		Experience: []models.WorkExperience{
			{
				Company:          "Maple Bank",
				Position:         "Analyst",
				StartDate:        "2021-01",
				EndDate:          "Present",
				Responsibilities: []string{"Built monthly variance reports"},
				Achievements:     []string{"Cut close time by 30%"},
			},
			{
				Company:          "Northern Credit",
				Position:         "Junior Analyst",
				StartDate:        "2019-06",
				EndDate:          "2020-12",
				Responsibilities: []string{"Reconciled accounts"},
			},
		},
		Education: []models.Education{
			{Institution: "University of Toronto", Degree: "BCom", FieldOfStudy: "Finance", GraduationDate: "2019-05"},
		},
		Skills: []string{"Excel", "SQL", "Financial Modeling", "Forecasting", "Power BI"},
	}
}

func requireCode(t *testing.T, err error, code utils.Code) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	var ae *utils.AppError
	require.True(t, errors.As(err, &ae), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, ae.Code, "error: %v", err)
	return ae
}
