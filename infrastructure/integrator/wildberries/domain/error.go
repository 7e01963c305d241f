package wbdomain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifica o resultado de uma chamada ao marketplace
type ErrorKind string

const (
	KindUnauthorised ErrorKind = "unauthorised"
	KindForbidden    ErrorKind = "forbidden"
	KindRateLimited  ErrorKind = "rate_limited"
	KindBadRequest   ErrorKind = "bad_request"
	KindServerError  ErrorKind = "server_error"
	KindTimeout      ErrorKind = "timeout"
	KindNetwork      ErrorKind = "network"
	KindDecode       ErrorKind = "decode"
	KindCancelled    ErrorKind = "cancelled"
)

// APIError é o erro tipado devolvido pelo cliente HTTP do marketplace
type APIError struct {
	Kind       ErrorKind
	Status     int
	RetryAfter time.Duration
	Detail     string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("wildberries: %s (status %d): %s", e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("wildberries: %s: %s", e.Kind, e.Detail)
}

// Retryable indica se a política de retentativa permite nova tentativa para o tipo
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindTimeout, KindServerError, KindNetwork:
		return true
	default:
		return false
	}
}

// IsCredentialError indica credencial inválida ou sem permissão
func (e *APIError) IsCredentialError() bool {
	return e.Kind == KindUnauthorised || e.Kind == KindForbidden
}

// PartialError sinaliza que a paginação parou no meio, mas os registros anteriores foram mantidos
type PartialError struct {
	Endpoint string
	Pages    int
	Err      error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s: paginação parcial após %d página(s): %v", e.Endpoint, e.Pages, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// AsAPIError extrai o APIError de uma cadeia de erros
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsPartial indica que o erro carrega registros já acumulados
func IsPartial(err error) bool {
	var partial *PartialError
	return errors.As(err, &partial)
}
