package claim

import (
	"fmt"
	"strings"

	"github.com/commerce/backoffice/internal/domain/shared"
)

// StateTransitionError reports an operation attempted from a status that
// does not permit it. It carries the entity name, the current status and
// the attempted operation for diagnostics; it is always a caller error
// and is never retried.
type StateTransitionError struct {
	Entity        string
	CurrentStatus string
	Operation     string
}

// Error implements the error interface
func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s in %s status", e.Entity, e.Operation, e.CurrentStatus)
}

func newStateError(entity, operation string, current fmt.Stringer) *StateTransitionError {
	return &StateTransitionError{
		Entity:        entity,
		CurrentStatus: current.String(),
		Operation:     operation,
	}
}

// NotReadyForCompletionError reports a completion attempt before the
// claim's goods-movement sub-flow has reached its required end state.
type NotReadyForCompletionError struct {
	ClaimType ClaimType
	Reason    string
}

// Error implements the error interface
func (e *NotReadyForCompletionError) Error() string {
	return fmt.Sprintf("claim of type %s is not ready for completion: %s", e.ClaimType, e.Reason)
}

// ValidationError reports a missing or malformed required field. It is
// raised before any state mutation, so a failed call leaves the
// aggregate unchanged.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrDuplicateActiveClaim is returned when an order already has a claim
// in an active status. The check happens at the persistence boundary;
// the aggregate itself cannot see sibling claims.
var ErrDuplicateActiveClaim = shared.NewDomainError(
	"DUPLICATE_ACTIVE_CLAIM", "An active claim already exists for this order")

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "must not be blank"}
	}
	return nil
}

func typeNotApplicable(t ClaimType, operation string) *shared.DomainError {
	return shared.NewDomainError(
		"CLAIM_TYPE_NOT_APPLICABLE",
		fmt.Sprintf("cannot %s on a %s claim", operation, t),
	)
}
