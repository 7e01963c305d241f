package tenant

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de lojas
var (
	// Erros de validação
	ErrTenantIDRequired    = errors.New("tenant ID is required")
	ErrCredentialRequired  = errors.New("credential is required")
	ErrArticleRequired     = errors.New("article is required")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrDuplicateCredential = errors.New("credential already registered")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrFetchTenants      = errors.New("error fetching tenants from database")

	ErrGenerateID = errors.New("error generating tenant ID")
)

// TenantError é um erro com contexto adicional para lojas
type TenantError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	TenantID string // ID da loja envolvida (quando aplicável)
	Details  string // Detalhes adicionais
}

func (e *TenantError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TenantError) Unwrap() error {
	return e.Err
}

func NewTenantError(err error, code string, details string) *TenantError {
	return &TenantError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewTenantErrorWithID(err error, code string, tenantID string, details string) *TenantError {
	return &TenantError{
		Err:      err,
		Code:     code,
		TenantID: tenantID,
		Details:  details,
	}
}
