package lifecycle

import (
	"errors"
	"fmt"

	"food-delivery-marketplace/models"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrCourierTaken is returned to the losing writer of a courier-assignment race.
	ErrCourierTaken = errors.New("order already has a delivery partner assigned")
	// ErrStatusChanged means the order status moved between validation and write.
	ErrStatusChanged = errors.New("order status changed concurrently, refresh and retry")
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an edge of the status graph the actor may not cross.
type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.UserRole
}

func (e *TransitionError) Error() string {
	nexts := NextStatuses(e.From, e.Role)
	if len(nexts) == 0 {
		return fmt.Sprintf("invalid transition: %s → %s is not allowed for role %q (no transitions available from %s for this role)",
			e.From, e.To, e.Role, e.From)
	}
	return fmt.Sprintf("invalid transition: %s → %s is not allowed for role %q (allowed: %v)",
		e.From, e.To, e.Role, nexts)
}
