package domain

import "fmt"

// FailureKind é o tipo de falha exibido ao operador para uma loja
type FailureKind string

const (
	FailureInvalidCredential FailureKind = "InvalidCredential"
	FailureRateLimitExceeded FailureKind = "RateLimitExceeded"
	FailureRequestTimeout    FailureKind = "RequestTimeout"
	FailureConnection        FailureKind = "ConnectionFailure"
	FailureUpstream          FailureKind = "UpstreamError"
	FailureCancelled         FailureKind = "Cancelled"
)

var failureLabels = map[FailureKind]string{
	FailureInvalidCredential: "token inválido",
	FailureRateLimitExceeded: "limite de requisições excedido",
	FailureRequestTimeout:    "tempo de requisição esgotado",
	FailureConnection:        "falha de conexão",
	FailureUpstream:          "erro do servidor",
	FailureCancelled:         "execução cancelada",
}

// Label devolve o texto curto mostrado na visão da loja
func (k FailureKind) Label() string {
	if label, ok := failureLabels[k]; ok {
		return label
	}
	return string(k)
}

// Failure descreve por que o agregado de uma loja não pôde ser montado
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Detail string      `json:"detail,omitempty"`
}

func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return string(f.Kind)
}
