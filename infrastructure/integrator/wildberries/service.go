package wildberries

import (
	"context"
	"time"

	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
)

// FeedParams são os parâmetros dos endpoints de pedidos e vendas
type FeedParams struct {
	DateFrom time.Time
	Flag     wbdomain.FeedFlag
}

// WildberriesIntegrator devolve registros já normalizados e paginados.
// Em falha no meio da paginação os registros acumulados voltam junto com um *wbdomain.PartialError.
type WildberriesIntegrator interface {
	FetchOrders(ctx context.Context, cred wbdomain.Credential, params FeedParams) ([]wbdomain.OrderRecord, error)
	FetchSales(ctx context.Context, cred wbdomain.Credential, params FeedParams) ([]wbdomain.OrderRecord, error)
	FetchFunnel(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.FunnelProduct, error)
	FetchReport(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.ReportRow, error)
}

type WildberriesService struct {
	cfg    config.Wildberries
	Client wbclient.Client
}

func New(cfg *config.Config, client wbclient.Client) WildberriesIntegrator {
	return &WildberriesService{
		cfg:    cfg.Wildberries,
		Client: client,
	}
}

func (s *WildberriesService) FetchOrders(ctx context.Context, cred wbdomain.Credential, params FeedParams) ([]wbdomain.OrderRecord, error) {
	return s.paginateFeed(ctx, cred, wbdomain.EndpointOrders, s.Client.GetOrders, params, false)
}

func (s *WildberriesService) FetchSales(ctx context.Context, cred wbdomain.Credential, params FeedParams) ([]wbdomain.OrderRecord, error) {
	return s.paginateFeed(ctx, cred, wbdomain.EndpointSales, s.Client.GetSales, params, true)
}

func (s *WildberriesService) FetchFunnel(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.FunnelProduct, error) {
	return s.paginateFunnel(ctx, cred, period)
}

func (s *WildberriesService) FetchReport(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.ReportRow, error) {
	return s.paginateReport(ctx, cred, period)
}
