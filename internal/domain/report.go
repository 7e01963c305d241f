package domain

import (
	"time"

	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

// ProductStatistic é a linha de um artigo dentro do agregado de uma execução
type ProductStatistic struct {
	Article     string  `json:"article"`
	DisplayName string  `json:"display_name"`
	NmID        int64   `json:"nm_id"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Views       int     `json:"views"`
	CartAdds    int     `json:"cart_adds"`
	Orders      int     `json:"orders"`
	OrdersSum   float64 `json:"orders_sum"`
	Buyouts     int     `json:"buyouts"`
	BuyoutsSum  float64 `json:"buyouts_sum"`
	CartConv    float64 `json:"cart_conversion"`
	OrderConv   float64 `json:"order_conversion"`
	BuyoutPct   float64 `json:"buyout_percent"`
}

// ComputeConversions preenche as conversões; denominador zero resulta em zero
func (p *ProductStatistic) ComputeConversions() {
	p.CartConv = utils.Percent(float64(p.CartAdds), float64(p.Views))
	p.OrderConv = utils.Percent(float64(p.Orders), float64(p.CartAdds))
	p.BuyoutPct = utils.Percent(float64(p.Buyouts), float64(p.Orders))
}

// IsActive indica se o artigo teve algum movimento no período
func (p *ProductStatistic) IsActive() bool {
	return p.Views > 0 || p.CartAdds > 0 || p.Orders > 0 || p.Buyouts > 0
}

// Less define a ordenação da lista: pedidos desc, soma desc, artigo asc
func (p *ProductStatistic) Less(other *ProductStatistic) bool {
	if p.Orders != other.Orders {
		return p.Orders > other.Orders
	}
	if p.OrdersSum != other.OrdersSum {
		return p.OrdersSum > other.OrdersSum
	}
	return p.Article < other.Article
}

type Totals struct {
	Products        int     `json:"products"`
	Views           int     `json:"views"`
	CartAdds        int     `json:"cart_adds"`
	Orders          int     `json:"orders"`
	OrdersSum       float64 `json:"orders_sum"`
	Buyouts         int     `json:"buyouts"`
	BuyoutsSum      float64 `json:"buyouts_sum"`
	CartConversion  float64 `json:"cart_conversion"`
	OrderConversion float64 `json:"order_conversion"`
}

// OrdersSummary é a visão por eventos de pedido (endpoint de pedidos/vendas)
type OrdersSummary struct {
	OrdersQty     int     `json:"orders_qty"`
	OrdersAmount  float64 `json:"orders_amount"`
	BuyoutsQty    int     `json:"buyouts_qty"`
	BuyoutsAmount float64 `json:"buyouts_amount"`
	Cancelled     int     `json:"cancelled"`
}

type AggregateStatus string

const (
	AggregateOK     AggregateStatus = "ok"
	AggregateFailed AggregateStatus = "failed"
)

// Aggregate é o resultado consolidado de uma loja em uma execução
type Aggregate struct {
	TenantID    string             `json:"tenant_id"`
	TenantName  string             `json:"tenant_name"`
	Status      AggregateStatus    `json:"status"`
	Failure     *Failure           `json:"failure,omitempty"`
	Degraded    []string           `json:"degraded,omitempty"`
	Products    []ProductStatistic `json:"products"`
	Totals      Totals             `json:"totals"`
	Orders      OrdersSummary      `json:"orders"`
	HasActivity bool               `json:"has_activity"`
}

// NewFailedAggregate monta um agregado com falha: lista vazia e totais zerados
func NewFailedAggregate(tenant *SellerAccount, failure *Failure) Aggregate {
	return Aggregate{
		TenantID:   tenant.ID,
		TenantName: tenant.DisplayName(),
		Status:     AggregateFailed,
		Failure:    failure,
		Products:   []ProductStatistic{},
	}
}

func (a *Aggregate) IsFailed() bool {
	return a.Status == AggregateFailed
}

// ActiveProducts devolve os produtos com movimento, na ordem da lista
func (a *Aggregate) ActiveProducts() []ProductStatistic {
	active := make([]ProductStatistic, 0, len(a.Products))
	for _, p := range a.Products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// ComputeTotals recalcula os totais por soma direta da lista de produtos
func (a *Aggregate) ComputeTotals() {
	var t Totals
	for _, p := range a.Products {
		t.Products++
		t.Views += p.Views
		t.CartAdds += p.CartAdds
		t.Orders += p.Orders
		t.OrdersSum += p.OrdersSum
		t.Buyouts += p.Buyouts
		t.BuyoutsSum += p.BuyoutsSum
	}
	t.OrdersSum = utils.RoundWithTwoDecimalPlace(t.OrdersSum)
	t.BuyoutsSum = utils.RoundWithTwoDecimalPlace(t.BuyoutsSum)
	t.CartConversion = utils.Percent(float64(t.CartAdds), float64(t.Views))
	t.OrderConversion = utils.Percent(float64(t.Orders), float64(t.CartAdds))
	a.Totals = t

	a.HasActivity = false
	for _, p := range a.Products {
		if p.Orders > 0 || p.Buyouts > 0 {
			a.HasActivity = true
			break
		}
	}
}

// FanoutResult é o resultado de uma passada por todas as lojas de um operador
type FanoutResult struct {
	ID           string      `json:"id"`
	Stores       []Aggregate `json:"stores"`
	Successful   int         `json:"successful"`
	Failed       int         `json:"failed"`
	Date         string      `json:"date"`
	Weekday      string      `json:"weekday"`
	IsAutoReport bool        `json:"is_auto_report"`
	Cancelled    bool        `json:"cancelled"`
	GeneratedAt  time.Time   `json:"generated_at"`
}

// Append adiciona o agregado preservando a ordem de processamento e atualiza os contadores
func (r *FanoutResult) Append(agg Aggregate) {
	r.Stores = append(r.Stores, agg)
	if agg.IsFailed() {
		r.Failed++
	} else {
		r.Successful++
	}
}

// RunMode define quais endpoints uma execução consulta
type RunMode string

const (
	// ModeFunnel consulta pedidos do dia, funil de vendas e relatório financeiro
	ModeFunnel RunMode = "funnel"
	// ModeSummary consulta pedidos e vendas alterados nas últimas 24 horas
	ModeSummary RunMode = "summary"
)

func (m RunMode) IsValid() bool {
	return m == ModeFunnel || m == ModeSummary
}
