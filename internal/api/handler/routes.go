package handler

import (
	"net/http"

	"github.com/vfg2006/seller-analytics-bot/internal/api/handler/router"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/authenticating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant"
	"github.com/vfg2006/seller-analytics-bot/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Tenants(service tenant.TenantService) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminOnly()}

	return []router.Route{
		{
			Path:        "/v1/tenants",
			Method:      http.MethodGet,
			Handler:     ListTenants(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/tenants",
			Method:      http.MethodPost,
			Handler:     CreateTenant(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/tenants/:id",
			Method:      http.MethodPut,
			Handler:     RenameTenant(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/tenants/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteTenant(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/tenants/:id/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(service),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/tenants/:id/products/:article",
			Method:      http.MethodPut,
			Handler:     SetProductName(service),
			Middlewares: adminOnly,
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/run",
			Method:      http.MethodPost,
			Handler:     RunReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Scheduler(trigger ReportTrigger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scheduler/run",
			Method:      http.MethodPost,
			Handler:     RunScheduledReport(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/scheduler/status",
			Method:      http.MethodGet,
			Handler:     GetSchedulerStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
