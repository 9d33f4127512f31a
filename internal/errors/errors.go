package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthorized             = NewAppError("UNAUTHORIZED", "Não autorizado", http.StatusUnauthorized)
	ErrForbidden                = NewAppError("FORBIDDEN", "Acesso negado", http.StatusForbidden)
	ErrBadRequest               = NewAppError("BAD_REQUEST", "Requisição inválida", http.StatusBadRequest)
	ErrInternalServer           = NewAppError("INTERNAL_SERVER_ERROR", "Erro interno do servidor", http.StatusInternalServerError)
	ErrConflict                 = NewAppError("CONFLICT", "Conflito de recursos", http.StatusConflict)
	ErrValidation               = NewAppError("VALIDATION_ERROR", "Erro de validação", http.StatusBadRequest)
	ErrEmailAlreadyExists       = NewAppError("EMAIL_ALREADY_EXISTS", "Email já cadastrado", http.StatusConflict)
	ErrUserNotFound             = NewAppError("USER_NOT_FOUND", "Usuário não encontrado", http.StatusNotFound)
	ErrHelpRequestNotFound      = NewAppError("HELP_REQUEST_NOT_FOUND", "Pedido de ajuda não encontrado", http.StatusNotFound)
	ErrProposalNotFound         = NewAppError("PROPOSAL_NOT_FOUND", "Proposta não encontrada", http.StatusNotFound)
	ErrConversationNotFound     = NewAppError("CONVERSATION_NOT_FOUND", "Conversa não encontrada", http.StatusNotFound)
	ErrResourceNotOwned         = NewAppError("RESOURCE_NOT_OWNED", "Recurso não pertence ao usuário", http.StatusForbidden)
	ErrProposalAlreadyDecided   = NewAppError("PROPOSAL_ALREADY_DECIDED", "Proposta já foi aceita ou recusada", http.StatusConflict)
	ErrProposalExceedsRequested = NewAppError("PROPOSAL_EXCEEDS_REQUESTED", "Aceitar esta proposta ultrapassa o valor solicitado", http.StatusUnprocessableEntity)
	ErrInvalidStatusTransition  = NewAppError("INVALID_STATUS_TRANSITION", "Transição de status inválida", http.StatusBadRequest)
	ErrHelpRequestNotOpen       = NewAppError("HELP_REQUEST_NOT_OPEN", "Pedido de ajuda não está aberto", http.StatusConflict)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode compara pelo Code, ja que WithError devolve um clone do sentinel.
func HasCode(err error, target *AppError) bool {
	appErr, ok := AsAppError(err)
	return ok && target != nil && appErr.Code == target.Code
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Requisição cancelada pelo cliente", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Erro desconhecido", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("%s %s", translateFieldName(field), message),
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Erro ao executar operação no banco de dados", http.StatusInternalServerError)
}

// NewConflictError clona ErrConflict; HasCode(err, ErrConflict) reconhece o resultado.
func NewConflictError(resource string) *AppError {
	conflict := ErrConflict.WithDetails(map[string]interface{}{
		"resource": resource,
	})
	conflict.Message = fmt.Sprintf("%s já existe", resource)
	return conflict
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		translatedField := translateFieldName(fieldErr.Field())
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   translatedField,
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Erro de validação nos campos",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func translateFieldName(field string) string {
	fieldLower := strings.ToLower(field)
	fieldMap := map[string]string{
		"amount":           "valor",
		"requestedamount":  "valor solicitado",
		"requested_amount": "valor solicitado",
		"help_request_id":  "pedido de ajuda",
		"helprequestid":    "pedido de ajuda",
		"participant_id":   "participante",
		"participantid":    "participante",
		"kind":             "tipo",
		"type":             "tipo",
		"role":             "perfil",
		"status":           "status",
		"title":            "título",
		"description":      "descrição",
		"body":             "mensagem",
		"name":             "nome",
		"email":            "email",
		"expertise":        "especialidade",
		"hoursperweek":     "horas por semana",
		"hours_per_week":   "horas por semana",
		"durationweeks":    "duração em semanas",
		"duration_weeks":   "duração em semanas",
	}
	if translated, ok := fieldMap[fieldLower]; ok {
		return translated
	}
	return field
}

func translateValidationError(fe validator.FieldError) string {
	fieldName := translateFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fieldName)
	case "email":
		return "Email inválido"
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", fieldName, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", fieldName, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", fieldName, fe.Param())
	case "lte":
		return fmt.Sprintf("%s deve ser menor ou igual a %s", fieldName, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fieldName, fe.Param())
	case "lt":
		return fmt.Sprintf("%s deve ser menor que %s", fieldName, fe.Param())
	case "ne":
		return fmt.Sprintf("%s deve ser diferente de %s", fieldName, fe.Param())
	case "len":
		return fmt.Sprintf("%s deve ter exatamente %s caracteres", fieldName, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um dos valores: %s", fieldName, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s deve ser um UUID válido", fieldName)
	case "url":
		return fmt.Sprintf("%s deve ser uma URL válida", fieldName)
	case "datetime":
		return fmt.Sprintf("%s deve ser uma data/hora válida", fieldName)
	case "numeric":
		return fmt.Sprintf("%s deve ser um valor numérico", fieldName)
	case "alphanum":
		return fmt.Sprintf("%s deve conter apenas letras e números", fieldName)
	default:
		return fmt.Sprintf("Validação '%s' falhou para %s", fe.Tag(), fieldName)
	}
}
