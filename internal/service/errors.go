package service

import (
	"errors"
	"fmt"
)

// ErrInvalidPagination is returned for a negative skip or a limit outside
// 1..store.MaxLimit. API layer should map this to 422.
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// ServiceError adds the failing operation to an underlying error.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a ServiceError for the task service.
func NewTaskServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "task", Operation: operation, Message: message, Err: err}
}

// NewMaintenanceServiceError creates a ServiceError for the maintenance service.
func NewMaintenanceServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "maintenance", Operation: operation, Message: message, Err: err}
}
