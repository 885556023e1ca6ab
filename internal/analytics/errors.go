package analytics

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// ErrValidation matches every ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
	}
	return "missing required field: " + e.Field
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

func validateScope(scope models.Scope) error {
	if scope.OrganisationID == uuid.Nil {
		return &ValidationError{Field: "organisationId"}
	}
	return nil
}
