package aggregating

import (
	"sort"

	"github.com/shopspring/decimal"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

type productAcc struct {
	stat       domain.ProductStatistic
	ordersSum  decimal.Decimal
	buyoutsSum decimal.Decimal

	// buyouts vindos do relatório financeiro substituem os do funil
	hasReport     bool
	reportBuyouts int
	reportSum     decimal.Decimal
}

// accumulator consolida as saídas dos endpoints por artigo
type accumulator struct {
	items map[string]*productAcc
}

func newAccumulator() *accumulator {
	return &accumulator{items: make(map[string]*productAcc)}
}

func (a *accumulator) get(article string) *productAcc {
	acc, ok := a.items[article]
	if !ok {
		acc = &productAcc{stat: domain.ProductStatistic{Article: article}}
		a.items[article] = acc
	}
	return acc
}

func (a *accumulator) foldFunnel(products []wbdomain.FunnelProduct) {
	for _, p := range products {
		acc := a.get(p.Article())
		if acc.stat.NmID == 0 {
			acc.stat.NmID = p.NmID
		}
		if acc.stat.Title == "" {
			acc.stat.Title = p.Title
		}
		if acc.stat.Brand == "" {
			acc.stat.Brand = p.Brand
		}
		if acc.stat.Category == "" {
			acc.stat.Category = p.Category
		}
		acc.stat.Views += p.Views
		acc.stat.CartAdds += p.CartAdds
		acc.stat.Orders += p.Orders
		acc.stat.Buyouts += p.Buyouts
		acc.ordersSum = acc.ordersSum.Add(decimal.NewFromFloat(p.OrdersSum))
		acc.buyoutsSum = acc.buyoutsSum.Add(decimal.NewFromFloat(p.BuyoutsSum))
	}
}

// foldReport soma somente as linhas de resgate; artigos novos nascem zerados
func (a *accumulator) foldReport(rows []wbdomain.ReportRow) {
	for _, row := range rows {
		if !row.IsBuyout() {
			continue
		}

		acc := a.get(row.SaName)
		if acc.stat.NmID == 0 {
			acc.stat.NmID = row.NmID
		}
		if acc.stat.Brand == "" {
			acc.stat.Brand = row.Brand
		}
		if acc.stat.Category == "" {
			acc.stat.Category = row.Subject
		}
		acc.hasReport = true
		acc.reportBuyouts += row.Quantity
		acc.reportSum = acc.reportSum.Add(decimal.NewFromFloat(row.Amount))
	}
}

// foldOrderEvents monta a lista de produtos a partir dos eventos de pedido (modo resumo)
func (a *accumulator) foldOrderEvents(records []wbdomain.OrderRecord) {
	for _, r := range records {
		if r.Cancelled {
			continue
		}
		acc := a.get(r.Article())
		fillFromRecord(acc, r)
		acc.stat.Orders += r.Quantity
		acc.ordersSum = acc.ordersSum.Add(decimal.NewFromFloat(r.Amount))
	}
}

// foldSaleEvents soma os resgates do endpoint de vendas (modo resumo)
func (a *accumulator) foldSaleEvents(records []wbdomain.OrderRecord) {
	for _, r := range records {
		if r.Cancelled || !r.Realised {
			continue
		}
		acc := a.get(r.Article())
		fillFromRecord(acc, r)
		acc.stat.Buyouts += r.Quantity
		acc.buyoutsSum = acc.buyoutsSum.Add(decimal.NewFromFloat(r.Amount))
	}
}

func fillFromRecord(acc *productAcc, r wbdomain.OrderRecord) {
	if acc.stat.NmID == 0 {
		acc.stat.NmID = r.NmID
	}
	if acc.stat.Brand == "" {
		acc.stat.Brand = r.Brand
	}
	if acc.stat.Category == "" {
		acc.stat.Category = r.Category
	}
	if acc.stat.Title == "" {
		acc.stat.Title = r.Subject
	}
}

func (a *accumulator) articles() []string {
	articles := make([]string, 0, len(a.items))
	for article := range a.items {
		articles = append(articles, article)
	}
	sort.Strings(articles)
	return articles
}

// products fecha os acumuladores: conversões, nomes de exibição e ordenação
func (a *accumulator) products(names map[string]string) []domain.ProductStatistic {
	products := make([]domain.ProductStatistic, 0, len(a.items))

	for article, acc := range a.items {
		stat := acc.stat
		stat.OrdersSum = acc.ordersSum.Round(2).InexactFloat64()
		stat.BuyoutsSum = acc.buyoutsSum.Round(2).InexactFloat64()
		if acc.hasReport {
			stat.Buyouts = acc.reportBuyouts
			stat.BuyoutsSum = acc.reportSum.Round(2).InexactFloat64()
		}

		stat.DisplayName = article
		if name, ok := names[article]; ok && name != "" {
			stat.DisplayName = name
		}

		stat.ComputeConversions()
		products = append(products, stat)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Less(&products[j])
	})

	return products
}

// orderEvents acumula a visão por eventos de pedido
type orderEvents struct {
	ordersQty     int
	ordersAmount  decimal.Decimal
	buyoutsQty    int
	buyoutsAmount decimal.Decimal
	cancelled     int
}

// add classifica cada registro: cancelado, pedido e, se realizado, também resgate
func (o *orderEvents) add(records []wbdomain.OrderRecord, countOrders bool) {
	for _, r := range records {
		amount := decimal.NewFromFloat(r.Amount)
		if r.Cancelled {
			o.cancelled += r.Quantity
			continue
		}
		if countOrders {
			o.ordersQty += r.Quantity
			o.ordersAmount = o.ordersAmount.Add(amount)
		}
		if r.Realised {
			o.buyoutsQty += r.Quantity
			o.buyoutsAmount = o.buyoutsAmount.Add(amount)
		}
	}
}

func (o *orderEvents) summary() domain.OrdersSummary {
	return domain.OrdersSummary{
		OrdersQty:     o.ordersQty,
		OrdersAmount:  o.ordersAmount.Round(2).InexactFloat64(),
		BuyoutsQty:    o.buyoutsQty,
		BuyoutsAmount: o.buyoutsAmount.Round(2).InexactFloat64(),
		Cancelled:     o.cancelled,
	}
}
