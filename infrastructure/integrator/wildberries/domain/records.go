package wbdomain

import (
	"strconv"
	"time"
)

// Endpoints do marketplace, usados também como chave do limitador
const (
	EndpointOrders = "orders"
	EndpointSales  = "sales"
	EndpointReport = "report"
	EndpointFunnel = "funnel"
)

// FeedFlag é o modo do endpoint de pedidos/vendas
type FeedFlag int

const (
	// FlagChangesSince devolve registros alterados desde dateFrom, paginando por lastChangeDate
	FlagChangesSince FeedFlag = 0
	// FlagOnDate devolve todos os registros do dia em uma única chamada
	FlagOnDate FeedFlag = 1
)

// OrderRecord é um evento normalizado de pedido ou venda
type OrderRecord struct {
	SRID            string
	Date            time.Time
	LastChangeDate  time.Time
	SupplierArticle string
	NmID            int64
	Brand           string
	Category        string
	Subject         string
	Quantity        int
	Cancelled       bool
	Realised        bool
	Amount          float64
}

// Article devolve o artigo do fornecedor ou o nmId quando vazio
func (r OrderRecord) Article() string {
	return articleKey(r.SupplierArticle, r.NmID)
}

// FunnelProduct é uma linha do funil de vendas já normalizada
type FunnelProduct struct {
	NmID       int64
	VendorCode string
	Title      string
	Brand      string
	Category   string
	Views      int
	CartAdds   int
	Orders     int
	OrdersSum  float64
	Buyouts    int
	BuyoutsSum float64
}

func (p FunnelProduct) Article() string {
	return articleKey(p.VendorCode, p.NmID)
}

// ReportRow é uma linha do relatório financeiro detalhado
type ReportRow struct {
	RrdID            int64
	SaName           string
	NmID             int64
	Brand            string
	Subject          string
	SupplierOperName string
	DocTypeName      string
	Quantity         int
	Amount           float64
}

// IsBuyout indica se a linha representa um resgate efetivo
func (r ReportRow) IsBuyout() bool {
	return r.SaName != "" && r.SupplierOperName == OperationSale && r.DocTypeName == OperationSale
}

// OperationSale é o rótulo que o relatório usa para venda
const OperationSale = "Продажа"

// Period é um intervalo de datas inclusivo
type Period struct {
	Start time.Time
	End   time.Time
}

// Shift desloca o período mantendo a duração
func (p Period) Shift(d time.Duration) Period {
	return Period{Start: p.Start.Add(d), End: p.End.Add(d)}
}

func articleKey(article string, nmID int64) string {
	if article != "" {
		return article
	}
	return strconv.FormatInt(nmID, 10)
}

// Credential é a credencial de uma loja; TenantID define o escopo do limitador
type Credential struct {
	TenantID string
	Token    string
}

// Moscow é o fuso usado pelas datas do marketplace
var Moscow = time.FixedZone("MSK", 3*60*60)

// Layouts de data do marketplace
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// ParseTimestamp interpreta datas do marketplace com ou sem fuso
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	for _, layout := range []string{DateTimeLayout, "2006-01-02T15:04:05.999999999", DateLayout} {
		if t, err := time.ParseInLocation(layout, value, Moscow); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
