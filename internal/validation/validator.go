package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloggify-frontend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MsgAllFieldsRequired is shown when any create-post field is missing
const MsgAllFieldsRequired = "All fields are required."

var validate = validator.New()

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of validation errors usable as an error
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Field+": "+ve.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// First returns the message of the first error, or an empty string
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// draftFields is the required-field view of a draft
type draftFields struct {
	Title      string `validate:"required"`
	Body       string `validate:"required"`
	ImageBytes int    `validate:"gt=0"`
}

// ValidateDraft validates a create-post draft before anything is sent
func ValidateDraft(d *models.Draft, maxImageSize int64) Errors {
	var errs Errors

	fields := draftFields{
		Title: strings.TrimSpace(d.Title),
		Body:  strings.TrimSpace(d.Body),
	}
	if d.Image != nil {
		fields.ImageBytes = len(d.Image.Data)
	}

	// Every field is required; all of them share one message
	if err := validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Errors{{Field: "draft", Message: err.Error()}}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: draftFieldName(fe.Field()), Message: MsgAllFieldsRequired})
		}
		return errs
	}

	// Validate image size
	if maxImageSize > 0 && int64(len(d.Image.Data)) > maxImageSize {
		errs = append(errs, ValidationError{
			Field:   "image",
			Message: fmt.Sprintf("image too large, max size is %d MB", maxImageSize/(1024*1024)),
			Value:   len(d.Image.Data),
		})
	}

	// Validate image type
	if ct := d.Image.DetectedType(); !strings.HasPrefix(ct, "image/") {
		errs = append(errs, ValidationError{Field: "image", Message: "image must be an image file", Value: ct})
	}

	return errs
}

// ValidateCredentials validates the login form
func ValidateCredentials(c models.Credentials) Errors {
	return structErrors(c)
}

// ValidateRegistration validates the sign-up form
func ValidateRegistration(r models.Registration) Errors {
	return structErrors(r)
}

// ValidatePasswordResetRequest validates the forgot-password form
func ValidatePasswordResetRequest(r models.PasswordResetRequest) Errors {
	return structErrors(r)
}

// ValidatePasswordReset validates the reset-password form
func ValidatePasswordReset(r models.PasswordReset) Errors {
	return structErrors(r)
}

// IsSessionID reports whether s is a well-formed session id
func IsSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func structErrors(v interface{}) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "form", Message: err.Error()}}
	}

	var errs Errors
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " is required"
		case "email":
			msg = "invalid email format"
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case "eqfield":
			msg = "passwords do not match"
		default:
			msg = field + " is invalid"
		}
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}
	return errs
}

func draftFieldName(structField string) string {
	if structField == "ImageBytes" {
		return "image"
	}
	return strings.ToLower(structField)
}
