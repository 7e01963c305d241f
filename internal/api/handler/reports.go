package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/pkg/apiErrors"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

// RunReport executa uma passada por todas as lojas e devolve o resultado sem guardá-lo para nenhum operador
func RunReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		mode := domain.ModeFunnel
		if raw := query.Get("mode"); raw != "" {
			mode = domain.RunMode(raw)
			if !mode.IsValid() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Modo inválido: use funnel ou summary", nil)
				return
			}
		}

		date, err := utils.ParseDate(query.Get("date"), wbdomain.Moscow)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida: use dd.mm.aaaa", nil)
			return
		}

		result, err := service.Run(r.Context(), reporting.RunRequest{
			Namespace: domain.NamespaceManual,
			Mode:      mode,
			Date:      *date,
		})
		if err != nil {
			switch {
			case errors.Is(err, reporting.ErrNoTenants):
				apiErrors.WriteError(w, apiErrors.ErrNoTenants, "Nenhuma loja cadastrada. Cadastre uma loja em POST /v1/tenants", nil)
			case errors.Is(err, reporting.ErrRunInProgress):
				apiErrors.WriteError(w, apiErrors.ErrRunInProgress, err.Error(), nil)
			default:
				logrus.WithError(err).Error("Erro ao executar relatório pela API")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar relatório", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
