package aggregating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	wbmocks "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/mocks"
	repomocks "github.com/vfg2006/seller-analytics-bot/infrastructure/repository/mocks"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"go.uber.org/mock/gomock"
)

func tenantFixture(id, name string) *domain.SellerAccount {
	return &domain.SellerAccount{ID: id, Name: &name, Credential: "token-" + id}
}

func apiErr(kind wbdomain.ErrorKind) error {
	return &wbdomain.APIError{Kind: kind, Detail: string(kind)}
}

func TestAggregateFunnelMode(t *testing.T) {
	log.SetupTestLogger()

	day := time.Date(2024, 5, 10, 0, 0, 0, 0, wbdomain.Moscow)

	tests := []struct {
		name     string
		setup    func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository)
		validate func(t *testing.T, agg domain.Aggregate)
	}{
		{
			name: "funil preenche totais e conversões",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.FunnelProduct{
					{VendorCode: "ART1", Views: 100, CartAdds: 10, Orders: 2, OrdersSum: 500, Buyouts: 1, BuyoutsSum: 250},
				}, nil)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), "T1", []string{"ART1"}).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), "T1").Return(map[string]string{}, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, domain.AggregateOK, agg.Status)
				assert.Equal(t, 2, agg.Totals.Orders)
				assert.Equal(t, 1, agg.Totals.Buyouts)
				assert.Equal(t, 500.0, agg.Totals.OrdersSum)
				assert.Equal(t, 250.0, agg.Totals.BuyoutsSum)
				assert.Equal(t, 10.0, agg.Totals.CartConversion)
				assert.Equal(t, 20.0, agg.Totals.OrderConversion)
				assert.True(t, agg.HasActivity)
				assert.Len(t, agg.Products, 1)
				assert.Equal(t, "ART1", agg.Products[0].DisplayName)
				assert.Equal(t, 50.0, agg.Products[0].BuyoutPct)
			},
		},
		{
			name: "loja sem movimento fica ok e sem atividade",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), "T1", []string{}).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), "T1").Return(nil, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, domain.AggregateOK, agg.Status)
				assert.False(t, agg.HasActivity)
				assert.Empty(t, agg.Products)
				assert.Equal(t, domain.Totals{}, agg.Totals)
			},
		},
		{
			name: "pedidos do dia alimentam o resumo de eventos",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.OrderRecord{
					{SRID: "o1", SupplierArticle: "ART1", Quantity: 3, Amount: 300},
					{SRID: "o2", SupplierArticle: "ART1", Quantity: 1, Amount: 80, Cancelled: true},
				}, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, 3, agg.Orders.OrdersQty)
				assert.Equal(t, 300.0, agg.Orders.OrdersAmount)
				assert.Equal(t, 1, agg.Orders.Cancelled)
				// pedidos não entram nos totais de produto no modo funil
				assert.Equal(t, 0, agg.Totals.Orders)
			},
		},
		{
			name: "relatório substitui resgates do funil e cria artigos novos",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.FunnelProduct{
					{VendorCode: "ART1", Views: 10, CartAdds: 2, Orders: 2, OrdersSum: 100, Buyouts: 1, BuyoutsSum: 40},
				}, nil)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.ReportRow{
					{RrdID: 1, SaName: "ART1", SupplierOperName: wbdomain.OperationSale, DocTypeName: wbdomain.OperationSale, Quantity: 2, Amount: 90.5},
					{RrdID: 2, SaName: "ART2", NmID: 22, SupplierOperName: wbdomain.OperationSale, DocTypeName: wbdomain.OperationSale, Quantity: 1, Amount: 30},
					{RrdID: 3, SaName: "ART2", SupplierOperName: "Логистика", DocTypeName: "Продажа", Quantity: 1, Amount: 999},
				}, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), "T1", []string{"ART1", "ART2"}).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), "T1").Return(map[string]string{"ART2": "Camiseta"}, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Len(t, agg.Products, 2)
				assert.Equal(t, "ART1", agg.Products[0].Article)
				assert.Equal(t, 2, agg.Products[0].Buyouts)
				assert.Equal(t, 90.5, agg.Products[0].BuyoutsSum)

				assert.Equal(t, "ART2", agg.Products[1].Article)
				assert.Equal(t, "Camiseta", agg.Products[1].DisplayName)
				assert.Equal(t, int64(22), agg.Products[1].NmID)
				assert.Equal(t, 0, agg.Products[1].Orders)
				assert.Equal(t, 1, agg.Products[1].Buyouts)
				assert.Equal(t, 0.0, agg.Products[1].BuyoutPct)

				assert.Equal(t, 3, agg.Totals.Buyouts)
				assert.Equal(t, 120.5, agg.Totals.BuyoutsSum)
			},
		},
		{
			name: "credencial inválida aborta sem chamar o funil",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindUnauthorised))
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.True(t, agg.IsFailed())
				assert.Equal(t, domain.FailureInvalidCredential, agg.Failure.Kind)
				assert.Empty(t, agg.Products)
				assert.Equal(t, "Loja 1", agg.TenantName)
			},
		},
		{
			name: "credencial recusada no meio da paginação também aborta",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(
					[]wbdomain.FunnelProduct{{VendorCode: "ART1", Views: 1}},
					&wbdomain.PartialError{Endpoint: wbdomain.EndpointFunnel, Pages: 1, Err: apiErr(wbdomain.KindForbidden)},
				)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.True(t, agg.IsFailed())
				assert.Equal(t, domain.FailureInvalidCredential, agg.Failure.Kind)
			},
		},
		{
			name: "falha de um endpoint vira nota de degradação",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindServerError))
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, domain.AggregateOK, agg.Status)
				assert.Equal(t, []string{"funil: erro do servidor"}, agg.Degraded)
			},
		},
		{
			name: "resultado parcial é aproveitado com nota",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(
					[]wbdomain.FunnelProduct{{VendorCode: "ART1", Views: 4, CartAdds: 1, Orders: 1, OrdersSum: 10}},
					&wbdomain.PartialError{Endpoint: wbdomain.EndpointFunnel, Pages: 1, Err: apiErr(wbdomain.KindRateLimited)},
				)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().GetDisplayNames(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, domain.AggregateOK, agg.Status)
				assert.Equal(t, 1, agg.Totals.Orders)
				assert.Equal(t, []string{"funil: dados parciais (limite de requisições excedido)"}, agg.Degraded)
			},
		},
		{
			name: "todos os endpoints falhando resultam em falha da loja",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindTimeout))
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindNetwork))
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindRateLimited))
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.True(t, agg.IsFailed())
				assert.Equal(t, domain.FailureRateLimitExceeded, agg.Failure.Kind)
			},
		},
		{
			name: "erro ao buscar nomes não impede o agregado",
			setup: func(wb *wbmocks.MockWildberriesIntegrator, repo *repomocks.MockProductRepository) {
				wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				wb.EXPECT().FetchFunnel(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.FunnelProduct{{VendorCode: "ART1", Orders: 1}}, nil)
				wb.EXPECT().FetchReport(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().EnsureProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				repo.EXPECT().GetDisplayNames(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, agg domain.Aggregate) {
				assert.Equal(t, domain.AggregateOK, agg.Status)
				assert.Equal(t, "ART1", agg.Products[0].DisplayName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			wb := wbmocks.NewMockWildberriesIntegrator(ctrl)
			repo := repomocks.NewMockProductRepository(ctrl)
			tt.setup(wb, repo)

			svc := NewService(wb, repo)
			agg := svc.Aggregate(context.Background(), tenantFixture("T1", "Loja 1"), Request{Mode: domain.ModeFunnel, Date: day})

			tt.validate(t, agg)
		})
	}
}

func TestAggregateFunnelModeRequestsTheDay(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wb := wbmocks.NewMockWildberriesIntegrator(ctrl)
	repo := repomocks.NewMockProductRepository(ctrl)

	day := time.Date(2024, 5, 10, 15, 30, 0, 0, wbdomain.Moscow)
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, wbdomain.Moscow)
	end := time.Date(2024, 5, 10, 23, 59, 59, 0, wbdomain.Moscow)
	cred := wbdomain.Credential{TenantID: "T1", Token: "token-T1"}

	gomock.InOrder(
		wb.EXPECT().FetchOrders(gomock.Any(), cred, wildberries.FeedParams{DateFrom: start, Flag: wbdomain.FlagOnDate}).Return(nil, nil),
		wb.EXPECT().FetchFunnel(gomock.Any(), cred, wbdomain.Period{Start: start, End: end}).Return(nil, nil),
		wb.EXPECT().FetchReport(gomock.Any(), cred, wbdomain.Period{Start: start, End: end}).Return(nil, nil),
	)
	repo.EXPECT().EnsureProducts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().GetDisplayNames(gomock.Any(), gomock.Any()).Return(nil, nil)

	agg := NewService(wb, repo).Aggregate(context.Background(), tenantFixture("T1", "Loja 1"), Request{Mode: domain.ModeFunnel, Date: day})
	assert.Equal(t, domain.AggregateOK, agg.Status)
}

func TestAggregateSummaryMode(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wb := wbmocks.NewMockWildberriesIntegrator(ctrl)
	repo := repomocks.NewMockProductRepository(ctrl)

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, wbdomain.Moscow)
	recent := now.Add(-2 * time.Hour)
	stale := now.Add(-30 * time.Hour)

	wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.OrderRecord{
		{SRID: "o1", SupplierArticle: "ART1", Quantity: 2, Amount: 200, LastChangeDate: recent},
		{SRID: "o2", SupplierArticle: "ART1", Quantity: 1, Amount: 100, LastChangeDate: recent, Cancelled: true},
		{SRID: "o3", SupplierArticle: "ART2", Quantity: 5, Amount: 500, LastChangeDate: stale},
		{SRID: "o4", SupplierArticle: "ART3", Quantity: 1, Amount: 50, LastChangeDate: recent},
	}, nil)
	wb.EXPECT().FetchSales(gomock.Any(), gomock.Any(), gomock.Any()).Return([]wbdomain.OrderRecord{
		{SRID: "s1", SupplierArticle: "ART1", Quantity: 1, Amount: 100, LastChangeDate: recent, Realised: true},
		{SRID: "s2", SupplierArticle: "ART3", Quantity: 1, Amount: 50, LastChangeDate: recent, Realised: false},
	}, nil)
	repo.EXPECT().EnsureProducts(gomock.Any(), "T1", []string{"ART1", "ART3"}).Return(nil)
	repo.EXPECT().GetDisplayNames(gomock.Any(), "T1").Return(nil, nil)

	agg := NewService(wb, repo).Aggregate(context.Background(), tenantFixture("T1", "Loja 1"), Request{Mode: domain.ModeSummary, Now: now})

	assert.Equal(t, domain.AggregateOK, agg.Status)
	assert.Equal(t, 3, agg.Orders.OrdersQty)
	assert.Equal(t, 250.0, agg.Orders.OrdersAmount)
	assert.Equal(t, 1, agg.Orders.BuyoutsQty)
	assert.Equal(t, 100.0, agg.Orders.BuyoutsAmount)
	assert.Equal(t, 1, agg.Orders.Cancelled)

	assert.Len(t, agg.Products, 2)
	assert.Equal(t, "ART1", agg.Products[0].Article)
	assert.Equal(t, 2, agg.Products[0].Orders)
	assert.Equal(t, 1, agg.Products[0].Buyouts)
	assert.Equal(t, "ART3", agg.Products[1].Article)
	assert.Equal(t, 0, agg.Products[1].Buyouts)
	assert.Equal(t, 3, agg.Totals.Orders)
	assert.True(t, agg.HasActivity)
}

func TestAggregateSummaryModeCancelled(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wb := wbmocks.NewMockWildberriesIntegrator(ctrl)
	repo := repomocks.NewMockProductRepository(ctrl)

	wb.EXPECT().FetchOrders(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr(wbdomain.KindCancelled))

	agg := NewService(wb, repo).Aggregate(context.Background(), tenantFixture("T1", "Loja 1"), Request{Mode: domain.ModeSummary, Now: time.Now()})

	assert.True(t, agg.IsFailed())
	assert.Equal(t, domain.FailureCancelled, agg.Failure.Kind)
}

func TestToFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.FailureKind
	}{
		{name: "401", err: apiErr(wbdomain.KindUnauthorised), want: domain.FailureInvalidCredential},
		{name: "403", err: apiErr(wbdomain.KindForbidden), want: domain.FailureInvalidCredential},
		{name: "429", err: apiErr(wbdomain.KindRateLimited), want: domain.FailureRateLimitExceeded},
		{name: "timeout", err: apiErr(wbdomain.KindTimeout), want: domain.FailureRequestTimeout},
		{name: "rede", err: apiErr(wbdomain.KindNetwork), want: domain.FailureConnection},
		{name: "400", err: apiErr(wbdomain.KindBadRequest), want: domain.FailureUpstream},
		{name: "decodificação", err: apiErr(wbdomain.KindDecode), want: domain.FailureUpstream},
		{name: "parcial", err: &wbdomain.PartialError{Err: apiErr(wbdomain.KindTimeout)}, want: domain.FailureRequestTimeout},
		{name: "erro desconhecido", err: errors.New("boom"), want: domain.FailureUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFailure(tt.err).Kind)
		})
	}
}
