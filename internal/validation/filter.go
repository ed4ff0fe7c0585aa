package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"metadash/internal/dataprocessing"
	apperrors "metadash/internal/errors"
)

// Query parameter names of the dashboard filter
const (
	ParamYearFrom = "year_from"
	ParamYearTo   = "year_to"
	ParamJournal  = "journal"
)

// FilterValidator parses and validates dashboard filter parameters
type FilterValidator struct {
	validate *validator.Validate
}

// NewFilterValidator creates a validator reporting fields by their JSON names
func NewFilterValidator() *FilterValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &FilterValidator{validate: v}
}

// ParseFilter reads year_from, year_to and journal from query values.
// Absent or blank values leave that part of the filter open.
func (fv *FilterValidator) ParseFilter(values url.Values) (dataprocessing.Filter, error) {
	var filter dataprocessing.Filter
	var errs []apperrors.ValidationError

	parseYear := func(param string, dst *int) {
		raw := strings.TrimSpace(values.Get(param))
		if raw == "" {
			return
		}
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, apperrors.ValidationError{
				Field:   param,
				Message: fmt.Sprintf("%s must be an integer year", param),
			})
			return
		}
		*dst = year
	}
	parseYear(ParamYearFrom, &filter.YearFrom)
	parseYear(ParamYearTo, &filter.YearTo)
	filter.Journal = strings.TrimSpace(values.Get(ParamJournal))

	if len(errs) > 0 {
		return filter, apperrors.NewValidationErrors(errs)
	}
	if err := fv.Validate(filter); err != nil {
		return filter, err
	}
	return filter, nil
}

// Validate checks the filter's struct constraints
func (fv *FilterValidator) Validate(filter dataprocessing.Filter) error {
	err := fv.validate.Struct(filter)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.ErrValidation("filter", err.Error())
	}

	errs := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apperrors.NewValidationErrors(errs)
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, ParamYearFrom)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
