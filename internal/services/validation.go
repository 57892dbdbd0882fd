package services

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error    string   `json:"error"`              // Error message
	Messages []string `json:"messages,omitempty"` // One entry per violated rule
}

// ValidationHelper provides shared sanitization and validation. Free-text
// input is first stripped of markup, then checked against the field rules;
// every violated rule contributes one message, nothing short-circuits.
type ValidationHelper struct {
	validator *validator.Validate
	sanitizer *bluemonday.Policy
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ValidationHelper{
		validator: v,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Sanitize strips markup from free-text input and trims surrounding space.
// Entity escapes introduced by the policy are undone so plain text survives
// a round trip unchanged.
func (vh *ValidationHelper) Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(vh.sanitizer.Sanitize(s)))
}

// ValidateStruct validates a struct and returns the collected rule
// violations as human-readable messages, or nil when everything passes.
func (vh *ValidationHelper) ValidateStruct(s any) []string {
	err := vh.validator.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid request"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Literal quotes are stripped so clients get plain prose.
		messages = append(messages, strings.ReplaceAll(messageFor(fe), `"`, ""))
	}
	return messages
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "alphanum":
		return fmt.Sprintf("%s must only contain alpha-numeric characters", field)
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// SendValidationResponse sends the aggregated rule violations as a 422.
func SendValidationResponse(w http.ResponseWriter, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(ErrorResponse{Error: "Validation failed", Messages: messages})
}
