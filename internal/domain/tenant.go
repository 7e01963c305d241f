package domain

import (
	"strings"
	"time"
)

// SellerAccount representa uma conta de vendedor do marketplace (tenant), identificada pela credencial da API
type SellerAccount struct {
	ID         string    `json:"id"`
	Name       *string   `json:"name"`
	Credential string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName devolve o nome amigável da loja ou o ID quando não há nome
func (a *SellerAccount) DisplayName() string {
	if a.Name != nil && strings.TrimSpace(*a.Name) != "" {
		return strings.TrimSpace(*a.Name)
	}
	return a.ID
}

// SellerAccountResponse é a visão pública de uma conta (nunca expõe a credencial)
type SellerAccountResponse struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name"`
	HasToken  bool      `json:"has_token"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *SellerAccount) ToResponse() SellerAccountResponse {
	return SellerAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		HasToken:  a.Credential != "",
		CreatedAt: a.CreatedAt,
	}
}

type CreateSellerAccountRequest struct {
	Name       *string `json:"name"`
	Credential string  `json:"token"`
}

type UpdateSellerAccountRequest struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}
