package aggregating

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/repository"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

const summaryWindow = 24 * time.Hour

// Request descreve o que coletar para uma loja
type Request struct {
	Mode domain.RunMode
	// Date é o dia consultado no modo funil
	Date time.Time
	// Now é a referência da janela de 24 horas no modo resumo
	Now time.Time
}

type Aggregator interface {
	Aggregate(ctx context.Context, tenant *domain.SellerAccount, req Request) domain.Aggregate
}

type Service struct {
	integrator  wildberries.WildberriesIntegrator
	productRepo repository.ProductRepository
}

func NewService(integrator wildberries.WildberriesIntegrator, productRepo repository.ProductRepository) Aggregator {
	return &Service{
		integrator:  integrator,
		productRepo: productRepo,
	}
}

var endpointLabels = map[string]string{
	wbdomain.EndpointOrders: "pedidos",
	wbdomain.EndpointSales:  "vendas",
	wbdomain.EndpointFunnel: "funil",
	wbdomain.EndpointReport: "relatório",
}

// run guarda o resultado de cada endpoint consultado para uma loja
type run struct {
	succeeded int
	lastFail  *domain.Failure
	degraded  []string
	abort     *domain.Failure
}

// record devolve false quando a loja inteira deve ser abortada
func (r *run) record(endpoint string, err error) bool {
	if err == nil {
		r.succeeded++
		return true
	}

	failure := ToFailure(err)
	if failure.Kind == domain.FailureInvalidCredential || failure.Kind == domain.FailureCancelled {
		r.abort = failure
		return false
	}

	if wbdomain.IsPartial(err) {
		r.succeeded++
		r.degraded = append(r.degraded, fmt.Sprintf("%s: dados parciais (%s)", endpointLabels[endpoint], failure.Kind.Label()))
		return true
	}

	r.lastFail = failure
	r.degraded = append(r.degraded, fmt.Sprintf("%s: %s", endpointLabels[endpoint], failure.Kind.Label()))
	return true
}

func (s *Service) Aggregate(ctx context.Context, tenant *domain.SellerAccount, req Request) domain.Aggregate {
	logger := log.ForContext(ctx).WithField("tenant_id", tenant.ID)
	cred := wbdomain.Credential{TenantID: tenant.ID, Token: tenant.Credential}

	acc := newAccumulator()
	events := &orderEvents{}
	state := &run{}

	var ok bool
	if req.Mode == domain.ModeSummary {
		ok = s.collectSummary(ctx, cred, req, acc, events, state)
	} else {
		ok = s.collectFunnel(ctx, cred, req, acc, events, state)
	}

	if !ok {
		logger.WithField("kind", state.abort.Kind).Warn("Coleta da loja abortada")
		return domain.NewFailedAggregate(tenant, state.abort)
	}

	if state.succeeded == 0 && state.lastFail != nil {
		logger.WithField("kind", state.lastFail.Kind).Warn("Todos os endpoints falharam para a loja")
		return domain.NewFailedAggregate(tenant, state.lastFail)
	}

	agg := domain.Aggregate{
		TenantID:   tenant.ID,
		TenantName: tenant.DisplayName(),
		Status:     domain.AggregateOK,
		Degraded:   state.degraded,
		Products:   acc.products(s.displayNames(ctx, tenant.ID, acc.articles())),
		Orders:     events.summary(),
	}
	agg.ComputeTotals()

	logger.WithFields(log.Fields{
		"products": agg.Totals.Products,
		"orders":   agg.Totals.Orders,
		"degraded": len(agg.Degraded),
	}).Info("Agregado da loja montado")

	return agg
}

// collectFunnel: pedidos do dia, funil e relatório financeiro, nessa ordem
func (s *Service) collectFunnel(ctx context.Context, cred wbdomain.Credential, req Request, acc *accumulator, events *orderEvents, state *run) bool {
	day := req.Date.In(wbdomain.Moscow)
	period := wbdomain.Period{Start: utils.StartOfDay(day), End: utils.EndOfDay(day)}

	orders, err := s.integrator.FetchOrders(ctx, cred, wildberries.FeedParams{DateFrom: period.Start, Flag: wbdomain.FlagOnDate})
	if !state.record(wbdomain.EndpointOrders, err) {
		return false
	}
	events.add(orders, true)

	products, err := s.integrator.FetchFunnel(ctx, cred, period)
	if !state.record(wbdomain.EndpointFunnel, err) {
		return false
	}
	acc.foldFunnel(products)

	rows, err := s.integrator.FetchReport(ctx, cred, period)
	if !state.record(wbdomain.EndpointReport, err) {
		return false
	}
	acc.foldReport(rows)

	return true
}

// collectSummary: pedidos e vendas alterados nas últimas 24 horas, filtrados pelo lastChangeDate
func (s *Service) collectSummary(ctx context.Context, cred wbdomain.Credential, req Request, acc *accumulator, events *orderEvents, state *run) bool {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	since := now.Add(-summaryWindow)
	params := wildberries.FeedParams{DateFrom: since, Flag: wbdomain.FlagChangesSince}

	orders, err := s.integrator.FetchOrders(ctx, cred, params)
	if !state.record(wbdomain.EndpointOrders, err) {
		return false
	}
	orders = changedSince(orders, since)
	events.add(orders, true)
	acc.foldOrderEvents(orders)

	sales, err := s.integrator.FetchSales(ctx, cred, params)
	if !state.record(wbdomain.EndpointSales, err) {
		return false
	}
	sales = changedSince(sales, since)
	events.add(sales, false)
	acc.foldSaleEvents(sales)

	return true
}

func changedSince(records []wbdomain.OrderRecord, since time.Time) []wbdomain.OrderRecord {
	filtered := make([]wbdomain.OrderRecord, 0, len(records))
	for _, r := range records {
		if !r.LastChangeDate.Before(since) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// displayNames registra artigos novos e busca os nomes definidos pelo operador.
// Falhas de persistência não impedem o relatório: o artigo vira o nome.
func (s *Service) displayNames(ctx context.Context, tenantID string, articles []string) map[string]string {
	logger := log.ForContext(ctx).WithField("tenant_id", tenantID)

	if err := s.productRepo.EnsureProducts(ctx, tenantID, articles); err != nil {
		logger.WithError(err).Warn("Erro ao registrar artigos da loja")
	}

	names, err := s.productRepo.GetDisplayNames(ctx, tenantID)
	if err != nil {
		logger.WithError(err).Warn("Erro ao buscar nomes de exibição dos artigos")
		return map[string]string{}
	}

	return names
}

// ToFailure converte o erro do marketplace no tipo de falha mostrado ao operador
func ToFailure(err error) *domain.Failure {
	apiErr, ok := wbdomain.AsAPIError(err)
	if !ok {
		return &domain.Failure{Kind: domain.FailureUpstream, Detail: err.Error()}
	}

	switch apiErr.Kind {
	case wbdomain.KindUnauthorised, wbdomain.KindForbidden:
		return &domain.Failure{Kind: domain.FailureInvalidCredential}
	case wbdomain.KindRateLimited:
		return &domain.Failure{Kind: domain.FailureRateLimitExceeded}
	case wbdomain.KindTimeout:
		return &domain.Failure{Kind: domain.FailureRequestTimeout}
	case wbdomain.KindNetwork:
		return &domain.Failure{Kind: domain.FailureConnection, Detail: apiErr.Detail}
	case wbdomain.KindCancelled:
		return &domain.Failure{Kind: domain.FailureCancelled}
	default:
		return &domain.Failure{Kind: domain.FailureUpstream, Detail: apiErr.Detail}
	}
}
