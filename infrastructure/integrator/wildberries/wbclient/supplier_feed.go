package wbclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
)

func (c *WBClient) GetOrders(ctx context.Context, cred wbdomain.Credential, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error) {
	return c.getSupplierFeed(ctx, cred, wbdomain.EndpointOrders, "/api/v1/supplier/orders", dateFrom, flag)
}

func (c *WBClient) GetSales(ctx context.Context, cred wbdomain.Credential, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error) {
	return c.getSupplierFeed(ctx, cred, wbdomain.EndpointSales, "/api/v1/supplier/sales", dateFrom, flag)
}

func (c *WBClient) getSupplierFeed(ctx context.Context, cred wbdomain.Credential, endpoint, path string, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error) {
	query := url.Values{}
	query.Set("dateFrom", FormatFeedDate(dateFrom))
	query.Set("flag", fmt.Sprintf("%d", flag))

	return c.execute(ctx, cred, endpointCall{
		endpoint: endpoint,
		method:   http.MethodGet,
		url:      c.cfg.StatisticsURL + path + "?" + query.Encode(),
		timeout:  c.cfg.StatisticsTimeout,
		policy:   c.statisticsPolicy(),
		expect:   shapeArray,
	})
}

// FormatFeedDate formata o cursor: só a data quando é meia-noite, senão data e hora de Moscou
func FormatFeedDate(t time.Time) string {
	local := t.In(wbdomain.Moscow)
	if local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 && local.Nanosecond() == 0 {
		return local.Format(wbdomain.DateLayout)
	}
	return local.Format(wbdomain.DateTimeLayout)
}
