package wildberries

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/wbclient/mocks"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"go.uber.org/mock/gomock"
)

var cred = wbdomain.Credential{TenantID: "T1", Token: "token"}

func newService(client wbclient.Client, tweak func(*config.Wildberries)) *WildberriesService {
	cfg := &config.Config{Wildberries: config.Wildberries{
		OrdersBatchSize:   1000,
		OrdersMaxRequests: 10,
		FunnelPageLimit:   1000,
		FunnelMaxPages:    50,
		ReportLimit:       100000,
		ReportMaxPages:    20,
	}}
	if tweak != nil {
		tweak(&cfg.Wildberries)
	}
	return New(cfg, client).(*WildberriesService)
}

// feedPage monta n registros com lastChangeDate crescente a partir de start
func feedPage(n int, start time.Time) gjson.Result {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		change := start.Add(time.Duration(i) * time.Second).Format(wbdomain.DateTimeLayout)
		items = append(items, fmt.Sprintf(`{"srid":"s%d-%s","supplierArticle":"A","quantity":1,"priceWithDisc":10,"lastChangeDate":"%s"}`, i, change, change))
	}
	return gjson.Parse("[" + strings.Join(items, ",") + "]")
}

func reportPage(n int, lastRrd int64) gjson.Result {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rrd := lastRrd - int64(n-1-i)
		items = append(items, fmt.Sprintf(`{"rrd_id":%d,"sa_name":"ART1","supplier_oper_name":"Продажа","doc_type_name":"Продажа","ppvz_for_pay":10}`, rrd))
	}
	return gjson.Parse("[" + strings.Join(items, ",") + "]")
}

func TestNormalizeFeedRecord(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name            string
		raw             string
		realisedDefault bool
		validate        func(t *testing.T, r wbdomain.OrderRecord)
	}{
		{
			name: "quantidade e preço com desconto",
			raw:  `{"supplierArticle":"ART1","quantity":3,"priceWithDisc":100,"finishedPrice":90,"isCancel":false}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 3, r.Quantity)
				assert.Equal(t, 300.0, r.Amount)
				assert.False(t, r.Cancelled)
				assert.False(t, r.Realised)
			},
		},
		{
			name: "quantidade ausente vira 1 e usa preço final",
			raw:  `{"supplierArticle":"ART1","finishedPrice":90}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 1, r.Quantity)
				assert.Equal(t, 90.0, r.Amount)
			},
		},
		{
			name: "quantidade não inteira vira 1",
			raw:  `{"supplierArticle":"ART1","quantity":"dois","priceWithDisc":50}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 1, r.Quantity)
				assert.Equal(t, 50.0, r.Amount)
			},
		},
		{
			name: "preço zero em texto não cai para o preço final",
			raw:  `{"supplierArticle":"ART1","quantity":2,"priceWithDisc":"0.00","finishedPrice":90}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 0.0, r.Amount)
			},
		},
		{
			name: "preço em texto é convertido",
			raw:  `{"supplierArticle":"ART1","quantity":2,"priceWithDisc":" 12.50 ","finishedPrice":90}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 25.0, r.Amount)
			},
		},
		{
			name: "preço em texto inválido usa preço final",
			raw:  `{"supplierArticle":"ART1","priceWithDisc":"n/d","finishedPrice":90}`,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.Equal(t, 90.0, r.Amount)
			},
		},
		{
			name:            "venda sem isRealization é resgate",
			raw:             `{"supplierArticle":"ART1","priceWithDisc":50,"isCancel":true}`,
			realisedDefault: true,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.True(t, r.Realised)
				assert.True(t, r.Cancelled)
			},
		},
		{
			name:            "isRealization explícito prevalece",
			raw:             `{"nmId":42,"isRealization":false,"lastChangeDate":"2024-03-10T12:00:00"}`,
			realisedDefault: true,
			validate: func(t *testing.T, r wbdomain.OrderRecord) {
				assert.False(t, r.Realised)
				assert.Equal(t, "42", r.Article())
				assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, wbdomain.Moscow).Unix(), r.LastChangeDate.Unix())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeFeedRecord(gjson.Parse(tt.raw), tt.realisedDefault, log.L))
		})
	}
}

func TestNormalizeFunnelProduct(t *testing.T) {
	entry := gjson.Parse(`{
		"product": {"nmId": 101, "vendorCode": "", "title": "Camiseta", "brandName": "Marca", "subjectName": "Roupas"},
		"statistic": {"selected": {"openCount": 100, "cartCount": 10, "orderCount": 2, "orderSum": 500, "buyoutCount": 1, "buyoutSum": 250}}
	}`)

	product := NormalizeFunnelProduct(entry)

	assert.Equal(t, "101", product.Article())
	assert.Equal(t, "Camiseta", product.Title)
	assert.Equal(t, "Marca", product.Brand)
	assert.Equal(t, "Roupas", product.Category)
	assert.Equal(t, 100, product.Views)
	assert.Equal(t, 10, product.CartAdds)
	assert.Equal(t, 2, product.Orders)
	assert.Equal(t, 500.0, product.OrdersSum)
	assert.Equal(t, 1, product.Buyouts)
	assert.Equal(t, 250.0, product.BuyoutsSum)
}

func TestNormalizeReportRow(t *testing.T) {
	sale := NormalizeReportRow(gjson.Parse(`{"rrd_id":5,"sa_name":"ART1","supplier_oper_name":"Продажа","doc_type_name":"Продажа","retail_price_withdisc_rub":120}`))
	assert.True(t, sale.IsBuyout())
	assert.Equal(t, 120.0, sale.Amount)

	refund := NormalizeReportRow(gjson.Parse(`{"rrd_id":6,"sa_name":"ART1","supplier_oper_name":"Возврат","doc_type_name":"Возврат","ppvz_for_pay":80}`))
	assert.False(t, refund.IsBuyout())
	assert.Equal(t, 80.0, refund.Amount)

	zeroPay := NormalizeReportRow(gjson.Parse(`{"rrd_id":8,"sa_name":"ART1","ppvz_for_pay":"0.00","retail_price_withdisc_rub":120}`))
	assert.Equal(t, 0.0, zeroPay.Amount)

	noArticle := NormalizeReportRow(gjson.Parse(`{"rrd_id":7,"sa_name":"","supplier_oper_name":"Продажа","doc_type_name":"Продажа"}`))
	assert.False(t, noArticle.IsBuyout())
}

func TestWildberriesService_FetchOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, wbdomain.Moscow)

	tests := []struct {
		name     string
		params   FeedParams
		tweak    func(*config.Wildberries)
		setup    func(m *mocks.MockClient)
		validate func(t *testing.T, records []wbdomain.OrderRecord, err error)
	}{
		{
			name:   "modo por data faz uma única chamada",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagOnDate},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetOrders(gomock.Any(), cred, start, wbdomain.FlagOnDate).Return(feedPage(1000, start), nil).Times(1)
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 1000)
			},
		},
		{
			name:   "página cheia pede outra a partir do maior lastChangeDate",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagChangesSince},
			tweak:  func(c *config.Wildberries) { c.OrdersBatchSize = 3 },
			setup: func(m *mocks.MockClient) {
				cursor := start.Add(2 * time.Second)
				gomock.InOrder(
					m.EXPECT().GetOrders(gomock.Any(), cred, start, wbdomain.FlagChangesSince).Return(feedPage(3, start), nil),
					m.EXPECT().GetOrders(gomock.Any(), cred, cursor, wbdomain.FlagChangesSince).Return(feedPage(1, cursor.Add(time.Minute)), nil),
				)
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 4)
			},
		},
		{
			name:   "cursor que não avança encerra",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagChangesSince},
			tweak:  func(c *config.Wildberries) { c.OrdersBatchSize = 2 },
			setup: func(m *mocks.MockClient) {
				page := gjson.Parse(`[{"srid":"a","lastChangeDate":"2024-03-10T00:00:00"},{"srid":"b","lastChangeDate":"2024-03-10T00:00:00"}]`)
				m.EXPECT().GetOrders(gomock.Any(), cred, start, wbdomain.FlagChangesSince).Return(page, nil).Times(1)
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 2)
			},
		},
		{
			name:   "limite de requisições",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagChangesSince},
			tweak: func(c *config.Wildberries) {
				c.OrdersBatchSize = 1
				c.OrdersMaxRequests = 3
			},
			setup: func(m *mocks.MockClient) {
				calls := 0
				m.EXPECT().GetOrders(gomock.Any(), cred, gomock.Any(), wbdomain.FlagChangesSince).
					DoAndReturn(func(_ context.Context, _ wbdomain.Credential, _ time.Time, _ wbdomain.FeedFlag) (gjson.Result, error) {
						calls++
						return feedPage(1, start.Add(time.Duration(calls)*time.Hour)), nil
					}).Times(3)
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 3)
			},
		},
		{
			name:   "falha após página com dados devolve parcial",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagChangesSince},
			tweak:  func(c *config.Wildberries) { c.OrdersBatchSize = 2 },
			setup: func(m *mocks.MockClient) {
				gomock.InOrder(
					m.EXPECT().GetOrders(gomock.Any(), cred, start, wbdomain.FlagChangesSince).Return(feedPage(2, start), nil),
					m.EXPECT().GetOrders(gomock.Any(), cred, gomock.Any(), wbdomain.FlagChangesSince).
						Return(gjson.Result{}, &wbdomain.APIError{Kind: wbdomain.KindBadRequest}),
				)
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				assert.Len(t, records, 2)
				assert.True(t, wbdomain.IsPartial(err))
				apiErr, ok := wbdomain.AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, wbdomain.KindBadRequest, apiErr.Kind)
			},
		},
		{
			name:   "falha na primeira página não é parcial",
			params: FeedParams{DateFrom: start, Flag: wbdomain.FlagOnDate},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetOrders(gomock.Any(), cred, start, wbdomain.FlagOnDate).
					Return(gjson.Result{}, &wbdomain.APIError{Kind: wbdomain.KindUnauthorised, Status: 401})
			},
			validate: func(t *testing.T, records []wbdomain.OrderRecord, err error) {
				assert.Empty(t, records)
				assert.False(t, wbdomain.IsPartial(err))
				apiErr, ok := wbdomain.AsAPIError(err)
				require.True(t, ok)
				assert.True(t, apiErr.IsCredentialError())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			service := newService(client, tt.tweak)
			records, err := service.FetchOrders(context.Background(), cred, tt.params)
			tt.validate(t, records, err)
		})
	}
}

func TestWildberriesService_FetchFunnel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := newService(client, func(c *config.Wildberries) { c.FunnelPageLimit = 2 })

	period := wbdomain.Period{
		Start: time.Date(2024, 3, 10, 0, 0, 0, 0, wbdomain.Moscow),
		End:   time.Date(2024, 3, 10, 23, 59, 59, 0, wbdomain.Moscow),
	}

	full := gjson.Parse(`{"data":{"products":[{"product":{"nmId":1,"vendorCode":"A"}},{"product":{"nmId":2,"vendorCode":"B"}}]}}`)
	short := gjson.Parse(`{"data":{"products":[{"product":{"nmId":3,"vendorCode":"C"}}]}}`)

	gomock.InOrder(
		client.EXPECT().GetFunnelProducts(gomock.Any(), cred, wbclient.NewFunnelRequest(period, 2, 0)).Return(full, nil),
		client.EXPECT().GetFunnelProducts(gomock.Any(), cred, wbclient.NewFunnelRequest(period, 2, 2)).Return(short, nil),
	)

	products, err := service.FetchFunnel(context.Background(), cred, period)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "C", products[2].Article())
}

func TestWildberriesService_FetchReportFixedPoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := newService(client, func(c *config.Wildberries) { c.ReportLimit = 50 })

	gomock.InOrder(
		client.EXPECT().GetReportDetail(gomock.Any(), cred, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ wbdomain.Credential, p wbclient.ReportDetailParams) (gjson.Result, error) {
				assert.Equal(t, int64(0), p.RrdID)
				return reportPage(50, 777), nil
			}),
		client.EXPECT().GetReportDetail(gomock.Any(), cred, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ wbdomain.Credential, p wbclient.ReportDetailParams) (gjson.Result, error) {
				assert.Equal(t, int64(777), p.RrdID)
				return reportPage(50, 777), nil
			}),
	)

	rows, err := service.FetchReport(context.Background(), cred, wbdomain.Period{})
	require.NoError(t, err)
	assert.Len(t, rows, 100)
}

func TestWildberriesService_FetchReportShortPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := newService(client, func(c *config.Wildberries) { c.ReportLimit = 50 })

	client.EXPECT().GetReportDetail(gomock.Any(), cred, gomock.Any()).Return(reportPage(10, 99), nil).Times(1)

	rows, err := service.FetchReport(context.Background(), cred, wbdomain.Period{})
	require.NoError(t, err)
	assert.Len(t, rows, 10)
}

func TestWildberriesService_CancelledBetweenPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	service := newService(client, func(c *config.Wildberries) { c.ReportLimit = 2 })

	ctx, cancel := context.WithCancel(context.Background())

	client.EXPECT().GetReportDetail(gomock.Any(), cred, gomock.Any()).
		DoAndReturn(func(context.Context, wbdomain.Credential, wbclient.ReportDetailParams) (gjson.Result, error) {
			cancel()
			return reportPage(2, 10), nil
		}).Times(1)

	rows, err := service.FetchReport(ctx, cred, wbdomain.Period{})
	assert.Len(t, rows, 2)
	assert.True(t, wbdomain.IsPartial(err))
	apiErr, ok := wbdomain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, wbdomain.KindCancelled, apiErr.Kind)
}
