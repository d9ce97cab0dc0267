package validator

import (
	"net/mail"
	"strings"

	"yildizli-agac-api/core/controller"
)

// Result collects field errors for one request body.
type Result struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *Result) HasError() bool {
	return len(r.Errors) > 0
}

func (r *Result) Add(field, message string) {
	r.Errors = append(r.Errors, controller.NewValidationError(field, message))
}

// Required adds an error when value is blank.
func (r *Result) Required(field, value, message string) bool {
	if strings.TrimSpace(value) == "" {
		r.Add(field, message)
		return false
	}
	return true
}


func (r *Result) Email(field, value, message string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		r.Add(field, message)
		return false
	}
	return true
}

func (r *Result) MinLength(field, value string, n int, message string) bool {
	if len([]rune(value)) < n {
		r.Add(field, message)
		return false
	}
	return true
}

func (r *Result) OneOf(field, value string, allowed []string, message string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	r.Add(field, message)
	return false
}
