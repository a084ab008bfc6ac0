package services

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// enumTags maps custom validation tags onto their allowed values
var enumTags = map[string][]string{
	"cloth_size":           models.ClothSizes,
	"cloth_status":         models.ClothStatuses,
	"quote_status":         models.QuoteStatuses,
	"volunteer_status":     models.VolunteerStatuses,
	"volunteer_program":    models.VolunteerPrograms,
	"volunteer_experience": models.VolunteerExperiences,
	"volunteer_activity":   models.VolunteerActivities,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterValidation("notblank", validators.NotBlank)
	for tag, allowed := range enumTags {
		allowed := allowed
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		})
	}
	return v
}

// validateInput runs struct tag validation and converts failures into a
// 400 AppError whose message names every offending field
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return utils.NewValidationError(err.Error())
	}

	details := make(map[string]string, len(errs))
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		msg := validationMessage(fe)
		field := fieldPath(fe)
		details[field] = msg
		messages = append(messages, field+" "+msg)
	}
	return utils.NewValidationError(strings.Join(messages, "; ")).WithDetails(details)
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	if allowed, ok := enumTags[fe.Tag()]; ok {
		return "must be one of: " + strings.Join(allowed, ", ")
	}
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "uuid":
		return "must be a valid id"
	}
	return "is invalid"
}
