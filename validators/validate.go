package validators

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and returns field errors keyed by the
// lowercased field name, matching the response shape login/signup clients expect
func Validate(payload interface{}) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("%s is required!", fieldError.Field())
		case "email":
			errors[field] = "Invalid email!"
		case "min":
			if fieldError.Kind() == reflect.String {
				errors[field] = fmt.Sprintf("%s must be at least %s characters long!", fieldError.Field(), fieldError.Param())
			} else {
				errors[field] = fmt.Sprintf("%s must be at least %s!", fieldError.Field(), fieldError.Param())
			}
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s!", fieldError.Field(), fieldError.Param())
		case "url":
			errors[field] = "Invalid URL!"
		default:
			errors[field] = fmt.Sprintf("%s is invalid!", fieldError.Field())
		}
	}
	return errors
}
