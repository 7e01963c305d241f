package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/pkg/apiErrors"
)

// ReportTrigger é o agendador de relatórios automáticos visto pela API
type ReportTrigger interface {
	TriggerManualRun() bool
	GetStatus() map[string]any
}

// RunScheduledReport dispara o relatório automático fora do horário
func RunScheduledReport(trigger ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunScheduledReport")

		if trigger == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de relatórios não disponível", nil)
			return
		}

		if !trigger.TriggerManualRun() {
			apiErrors.WriteError(w, apiErrors.ErrRunInProgress, "Relatório automático já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"success": true,
			"message": "Relatório automático iniciado",
		})
	}
}

// GetSchedulerStatus retorna o status do agendador de relatórios
func GetSchedulerStatus(trigger ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if trigger == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador de relatórios não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, trigger.GetStatus())
	}
}
