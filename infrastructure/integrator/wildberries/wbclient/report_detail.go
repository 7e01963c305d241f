package wbclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
)

type ReportDetailParams struct {
	Period wbdomain.Period
	Limit  int
	RrdID  int64
}

// GetReportDetail consulta o relatório financeiro detalhado (paginação por rrd_id)
func (c *WBClient) GetReportDetail(ctx context.Context, cred wbdomain.Credential, params ReportDetailParams) (gjson.Result, error) {
	query := url.Values{}
	query.Set("dateFrom", params.Period.Start.In(wbdomain.Moscow).Format(time.RFC3339))
	query.Set("dateTo", params.Period.End.In(wbdomain.Moscow).Format(time.RFC3339))
	query.Set("limit", strconv.Itoa(params.Limit))
	query.Set("rrd_id", strconv.FormatInt(params.RrdID, 10))
	query.Set("period", "daily")

	return c.execute(ctx, cred, endpointCall{
		endpoint: wbdomain.EndpointReport,
		method:   http.MethodGet,
		url:      c.cfg.StatisticsURL + "/api/v5/supplier/reportDetailByPeriod?" + query.Encode(),
		timeout:  c.cfg.StatisticsTimeout,
		policy:   c.statisticsPolicy(),
		expect:   shapeArray,
	})
}
