package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tarefas-api/internal/api/shared"
	"github.com/phrazzld/tarefas-api/internal/domain"
	"github.com/phrazzld/tarefas-api/internal/importer"
	"github.com/phrazzld/tarefas-api/internal/service"
	"github.com/phrazzld/tarefas-api/internal/service/auth"
	"github.com/phrazzld/tarefas-api/internal/store"
)

// Client-facing messages.
const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidCredentials = "Incorrect username or password"
	msgTaskNotFound       = "Tarefa não encontrada"
	msgInvalidBody        = "Invalid request body"
	msgUpstreamFailure    = "Falha ao consultar a API externa"
	msgUnexpected         = "An unexpected error occurred"
)

// wireFieldNames maps domain and request struct field names to the names
// clients send.
var wireFieldNames = map[string]string{
	"title":       "titulo",
	"description": "descricao",
	"state":       "estado",
	"Titulo":      "titulo",
	"Descricao":   "descricao",
	"Estado":      "estado",
	"Username":    "username",
	"Password":    "password",
	"Skip":        "skip",
	"Limit":       "limit",
}

// MapErrorToStatusCode maps internal errors to HTTP status codes so that
// handlers never pick status codes ad hoc.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case domain.IsValidationError(err),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity

	case errors.Is(err, importer.ErrUpstreamFetch):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Internal
// details such as SQL or upstream URLs never reach the response.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var (
		fieldErr       *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return msgNotAuthenticated

	case errors.Is(err, auth.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, store.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s: %s", wireFieldName(fieldErr.Field), fieldErr.Message)

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, service.ErrInvalidPagination):
		return "Invalid pagination: skip must be >= 0 and limit between 1 and 100"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	case errors.Is(err, importer.ErrUpstreamFetch):
		return msgUpstreamFailure

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError turns validator output into a short message that
// names the first offending field by its wire name.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", wireFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gte", "min":
		return "too small"
	case "lte", "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func wireFieldName(field string) string {
	if name, ok := wireFieldNames[field]; ok {
		return name
	}
	return field
}

// HandleAPIError writes the response for err using the status and message
// mappings above and logs the wrapped error with the operation name.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithHeader("WWW-Authenticate", "Bearer"))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, fmt.Errorf("%s: %w", operation, err), opts...)
}
