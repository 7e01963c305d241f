package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant"
	"github.com/vfg2006/seller-analytics-bot/pkg/apiErrors"
)

// writeTenantError traduz o erro do caso de uso para o código da API
func writeTenantError(w http.ResponseWriter, err error, fallback string) {
	var tenantErr *tenant.TenantError
	if errors.As(err, &tenantErr) {
		apiErrors.WriteError(w, tenantErr.Code, tenantErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error(fallback)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
}

func ListTenants(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenants, err := service.ListTenants(r.Context())
		if err != nil {
			writeTenantError(w, err, "Erro ao listar lojas")
			return
		}

		response := make([]domain.SellerAccountResponse, 0, len(tenants))
		for _, t := range tenants {
			response = append(response, t.ToResponse())
		}

		writeJSON(w, http.StatusOK, response)
	})
}

func CreateTenant(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateSellerAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.CreateTenant(r.Context(), &req)
		if err != nil {
			writeTenantError(w, err, "Erro ao cadastrar loja")
			return
		}

		writeJSON(w, http.StatusCreated, created.ToResponse())
	})
}

func RenameTenant(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateSellerAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.RenameTenant(r.Context(), &req); err != nil {
			writeTenantError(w, err, "Erro ao renomear loja")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func DeleteTenant(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteTenant(r.Context(), id); err != nil {
			writeTenantError(w, err, "Erro ao remover loja")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ListProducts(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		products, err := service.ListProducts(r.Context(), id)
		if err != nil {
			writeTenantError(w, err, "Erro ao listar produtos")
			return
		}

		writeJSON(w, http.StatusOK, products)
	})
}

// SetProductName define ou limpa (name nulo) o nome de exibição de um artigo
func SetProductName(service tenant.TenantService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.SetProductNameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		req.TenantID = params.ByName("id")
		req.Article = params.ByName("article")

		if err := service.SetProductName(r.Context(), &req); err != nil {
			writeTenantError(w, err, "Erro ao definir nome do produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
