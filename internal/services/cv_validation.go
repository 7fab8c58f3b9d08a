package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/maplepath/api/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validationMessage turns the first validator failure into a client-safe
// sentence such as "experience[1].start_date must be YYYY-MM".
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "request is not valid"
	}
	fe := ve[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch {
	case fe.Tag() == "required" || fe.Tag() == "notblank":
		return field + " is required"
	case fe.Tag() == "gt":
		return field + " must be a positive integer"
	case strings.Contains(fe.Tag(), "oneof"):
		return fmt.Sprintf("%s must be YYYY-MM or %q", field, models.PeriodPresent)
	case strings.Contains(fe.Tag(), "datetime"):
		return field + " must be YYYY-MM"
	}
	return field + " is not valid"
}

// validateCVRequest checks the structural rules a generation request must meet
// before any row is written. It returns the first problem found.
func validateCVRequest(req *models.CVRequest) error {
	if req == nil {
		return errors.New("request body is required")
	}
	if err := validate.Struct(req); err != nil {
		return errors.New(validationMessage(err))
	}
	for i, exp := range req.Experience {
		if err := checkPeriod(exp); err != nil {
			return fmt.Errorf("experience[%d]: %w", i, err)
		}
	}
	return nil
}

func validateExperience(exp models.WorkExperience) error {
	if err := validate.Struct(exp); err != nil {
		return errors.New(validationMessage(err))
	}
	return checkPeriod(exp)
}

// checkPeriod assumes tag validation already passed. YYYY-MM compares
// correctly as a string.
func checkPeriod(exp models.WorkExperience) error {
	if exp.EndDate == "" || exp.EndDate == models.PeriodPresent {
		return nil
	}
	if exp.EndDate < exp.StartDate {
		return errors.New("end_date is before start_date")
	}
	return nil
}
