package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/usergate/usergate/internal/web/apierror"
)

// SearchBody is the request payload of the search endpoints.
type SearchBody struct {
	Search string `json:"search"`
	Page   int    `json:"page" validate:"min=0"`
	Size   int    `json:"size" validate:"min=0,max=100"`
	Sort   string `json:"sort" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// Normalize applies defaults and reports whether results sort ascending.
func (s *SearchBody) Normalize() bool {
	if s.Size == 0 {
		s.Size = DefaultPageSize
	}

	return strings.EqualFold(s.Sort, "ASC")
}

// PaginatedResponse is the shared envelope of list results.
type PaginatedResponse struct {
	Total     int       `json:"total"`
	Page      int       `json:"page"`
	Size      int       `json:"size"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPaginatedResponse builds the envelope around one page of data.
func NewPaginatedResponse(data any, total, page, size int) PaginatedResponse {
	return PaginatedResponse{
		Total:     total,
		Page:      page,
		Size:      size,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// DeleteResponse acknowledges a soft delete.
type DeleteResponse struct {
	DeletedCount int  `json:"deletedCount"`
	Acknowledged bool `json:"acknowledged"`
}

// FieldErrors converts validator errors into the API error body shape.
func FieldErrors(err error) []apierror.FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apierror.FieldError{{Field: "body", RejectedValue: "null", Message: err.Error()}}
	}

	out := make([]apierror.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, apierror.FieldError{
			Field:         fieldName(fe),
			RejectedValue: fmt.Sprintf("%v", fe.Value()),
			Message:       validationMessage(fe),
		})
	}

	return out
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return fe.StructField()
	}

	// lowerCamel to match the JSON payload field names
	return strings.ToLower(name[:1]) + name[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName(fe))
	case "email":
		return "Email must be a valid email"
	case "min", "max":
		return fmt.Sprintf("%s is out of the allowed range", fieldName(fe))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fieldName(fe), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fieldName(fe), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe))
	}
}
