package backend

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskdeck/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessage turns a validator failure into a user-facing message keyed
// by the JSON field name.
func fieldMessage(fe validator.FieldError) (string, string) {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field, "is required"
	case "min":
		return field, fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return field, "is invalid"
	}
}

func structErrors(err error) *ValidationError {
	fields := map[string]string{}
	if ves, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ves {
			k, msg := fieldMessage(fe)
			fields[k] = msg
		}
	} else {
		fields["payload"] = err.Error()
	}
	return &ValidationError{Fields: fields}
}

// Validate checks a create payload. Enum fields are checked by hand so the
// messages name the allowed values.
func (d TaskDraft) Validate() error {
	fields := map[string]string{}
	if err := validate.Struct(d); err != nil {
		fields = structErrors(err).Fields
	}
	if d.Status != "" && !d.Status.IsValid() {
		fields["status"] = "must be one of todo, in-progress, done"
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		fields["priority"] = "must be one of low, medium, high"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks a partial-update payload.
func (p TaskPatch) Validate() error {
	fields := map[string]string{}
	if err := validate.Struct(p); err != nil {
		fields = structErrors(err).Fields
	}
	if p.Status != nil && !p.Status.IsValid() {
		fields["status"] = "must be one of todo, in-progress, done"
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		fields["priority"] = "must be one of low, medium, high"
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		fields["title"] = "is required"
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		fields["description"] = "is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidStatus validates a bare status value (PATCH /tasks/{id}/status).
func ValidStatus(s model.TaskStatus) error {
	if !s.IsValid() {
		return &ValidationError{Fields: map[string]string{
			"status": "must be one of todo, in-progress, done",
		}}
	}
	return nil
}
