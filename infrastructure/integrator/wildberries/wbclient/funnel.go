package wbclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type FunnelPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type FunnelOrderBy struct {
	Field string `json:"field"`
	Mode  string `json:"mode"`
}

// FunnelRequest é o corpo do POST do funil de vendas
type FunnelRequest struct {
	SelectedPeriod FunnelPeriod  `json:"selectedPeriod"`
	PastPeriod     FunnelPeriod  `json:"pastPeriod"`
	NmIDs          []int64       `json:"nmIds"`
	BrandNames     []string      `json:"brandNames"`
	SubjectIDs     []int64       `json:"subjectIds"`
	TagIDs         []int64       `json:"tagIds"`
	SkipDeletedNm  bool          `json:"skipDeletedNm"`
	OrderBy        FunnelOrderBy `json:"orderBy"`
	Limit          int           `json:"limit"`
	Offset         int           `json:"offset"`
}

// NewFunnelRequest monta a página do funil; o período anterior é o selecionado deslocado 7 dias
func NewFunnelRequest(period wbdomain.Period, limit, offset int) FunnelRequest {
	past := period.Shift(-7 * 24 * time.Hour)

	return FunnelRequest{
		SelectedPeriod: FunnelPeriod{
			Start: period.Start.In(wbdomain.Moscow).Format(wbdomain.DateLayout),
			End:   period.End.In(wbdomain.Moscow).Format(wbdomain.DateLayout),
		},
		PastPeriod: FunnelPeriod{
			Start: past.Start.In(wbdomain.Moscow).Format(wbdomain.DateLayout),
			End:   past.End.In(wbdomain.Moscow).Format(wbdomain.DateLayout),
		},
		NmIDs:         []int64{},
		BrandNames:    []string{},
		SubjectIDs:    []int64{},
		TagIDs:        []int64{},
		SkipDeletedNm: false,
		OrderBy:       FunnelOrderBy{Field: "openCard", Mode: "desc"},
		Limit:         limit,
		Offset:        offset,
	}
}

func (c *WBClient) GetFunnelProducts(ctx context.Context, cred wbdomain.Credential, request FunnelRequest) (gjson.Result, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("erro ao serializar o corpo do funil: %w", err)
	}

	return c.execute(ctx, cred, endpointCall{
		endpoint: wbdomain.EndpointFunnel,
		method:   http.MethodPost,
		url:      c.cfg.AnalyticsURL + "/api/analytics/v3/sales-funnel/products",
		body:     body,
		timeout:  c.cfg.FunnelTimeout,
		policy:   c.funnelPolicy(),
		expect:   shapeObject,
	})
}
