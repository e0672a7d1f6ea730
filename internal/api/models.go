package api

import (
	"time"

	"github.com/phrazzld/tarefas-api/internal/domain"
)

// Wire values of the estado field.
const (
	EstadoPendente    = "pendente"
	EstadoEmAndamento = "em andamento"
	EstadoConcluida   = "concluída"
)

var estadoToState = map[string]domain.TaskState{
	EstadoPendente:    domain.TaskStatePending,
	EstadoEmAndamento: domain.TaskStateInProgress,
	EstadoConcluida:   domain.TaskStateDone,
}

var stateToEstado = map[domain.TaskState]string{
	domain.TaskStatePending:    EstadoPendente,
	domain.TaskStateInProgress: EstadoEmAndamento,
	domain.TaskStateDone:       EstadoConcluida,
}

// ParseEstado maps a wire estado to a TaskState. Unknown values are rejected.
func ParseEstado(estado string) (domain.TaskState, error) {
	state, ok := estadoToState[estado]
	if !ok {
		return "", domain.NewValidationError("estado",
			"must be one of pendente, em andamento, concluída", domain.ErrInvalidTaskState)
	}
	return state, nil
}

// FormatEstado maps a TaskState to its wire value.
func FormatEstado(state domain.TaskState) string {
	return stateToEstado[state]
}

// LoginRequest holds the form fields of POST /login.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// TaskRequest is the body of POST and PUT /tarefas. A missing estado means
// pendente; timestamps are optional.
type TaskRequest struct {
	Titulo          *string    `json:"titulo"           validate:"required"`
	Descricao       *string    `json:"descricao"`
	Estado          *string    `json:"estado"`
	DataCriacao     *time.Time `json:"data_criacao"`
	DataAtualizacao *time.Time `json:"data_atualizacao"`
}

// ToInput converts the request into a domain input. Title and state rules
// are checked by the domain layer.
func (r TaskRequest) ToInput() (domain.TaskInput, error) {
	state := domain.TaskStatePending
	if r.Estado != nil {
		parsed, err := ParseEstado(*r.Estado)
		if err != nil {
			return domain.TaskInput{}, err
		}
		state = parsed
	}

	in := domain.TaskInput{
		Description: r.Descricao,
		State:       state,
	}
	if r.Titulo != nil {
		in.Title = *r.Titulo
	}
	if r.DataCriacao != nil {
		in.CreatedAt = *r.DataCriacao
	}
	if r.DataAtualizacao != nil {
		in.UpdatedAt = *r.DataAtualizacao
	}
	return in, in.Validate()
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID              int64     `json:"id"`
	Titulo          string    `json:"titulo"`
	Descricao       *string   `json:"descricao"`
	Estado          string    `json:"estado"`
	DataCriacao     time.Time `json:"data_criacao"`
	DataAtualizacao time.Time `json:"data_atualizacao"`
}

// ListQuery holds the parsed query of GET /tarefas.
type ListQuery struct {
	Estado string `validate:"omitempty"`
	Skip   int    `validate:"gte=0"`
	Limit  int    `validate:"gte=1,lte=100"`
}

// ImportResponse reports the outcome of POST /importacoes.
type ImportResponse struct {
	Inseridas int `json:"inseridas"`
}

// MessageResponse is a plain message body.
type MessageResponse struct {
	Message string `json:"message"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		Titulo:          t.Title,
		Descricao:       t.Description,
		Estado:          FormatEstado(t.State),
		DataCriacao:     t.CreatedAt,
		DataAtualizacao: t.UpdatedAt,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = taskToResponse(t)
	}
	return out
}
