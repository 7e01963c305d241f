package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/internal/api/handler"
	"github.com/vfg2006/seller-analytics-bot/internal/api/handler/router"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/authenticating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant"
	"github.com/vfg2006/seller-analytics-bot/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	tenantService tenant.TenantService,
	reporter reporting.Reporter,
	authenticator authenticating.Authenticator,
	reportScheduler handler.ReportTrigger,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(tenantService, reporter, authenticator, reportScheduler),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o roteador com a cadeia de middlewares da API administrativa
func NewHandler(
	tenantService tenant.TenantService,
	reporter reporting.Reporter,
	authenticator authenticating.Authenticator,
	reportScheduler handler.ReportTrigger,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Tenants(tenantService)...),
		router.WithRoutes(handler.Reports(reporter)...),
		router.WithRoutes(handler.Scheduler(reportScheduler)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	<-ctx.Done()
	logrus.Info("Contexto de aplicação cancelado")

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
