package wildberries

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
)

// firstOf devolve o primeiro caminho existente; o marketplace muda nomes entre versões
func firstOf(value gjson.Result, paths ...string) gjson.Result {
	for _, path := range paths {
		if r := value.Get(path); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}

func boolOr(value gjson.Result, fallback bool) bool {
	switch value.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return fallback
	}
}

func numberOf(value gjson.Result) (float64, bool) {
	switch value.Type {
	case gjson.Number:
		return value.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// NormalizeFeedRecord converte um elemento de pedidos/vendas em registro interno
func NormalizeFeedRecord(item gjson.Result, realisedDefault bool, logger log.Logger) wbdomain.OrderRecord {
	quantity := 1
	raw := item.Get("quantity")
	if raw.Type == gjson.Number && raw.Num == math.Trunc(raw.Num) {
		quantity = int(raw.Num)
	} else if logger != nil {
		logger.WithFields(log.Fields{
			"srid":     item.Get("srid").String(),
			"quantity": raw.Raw,
		}).Debug("Quantidade ausente ou inválida, usando 1")
	}

	record := wbdomain.OrderRecord{
		SRID:            item.Get("srid").String(),
		SupplierArticle: item.Get("supplierArticle").String(),
		NmID:            item.Get("nmId").Int(),
		Brand:           item.Get("brand").String(),
		Category:        item.Get("category").String(),
		Subject:         item.Get("subject").String(),
		Quantity:        quantity,
		Cancelled:       boolOr(item.Get("isCancel"), false),
		Realised:        boolOr(item.Get("isRealization"), realisedDefault),
	}

	if t, ok := wbdomain.ParseTimestamp(item.Get("date").String()); ok {
		record.Date = t
	}
	if t, ok := wbdomain.ParseTimestamp(item.Get("lastChangeDate").String()); ok {
		record.LastChangeDate = t
	}

	if price, ok := numberOf(item.Get("priceWithDisc")); ok {
		record.Amount = price * float64(quantity)
	} else if price, ok := numberOf(item.Get("finishedPrice")); ok {
		record.Amount = price * float64(quantity)
	}

	return record
}

// funnelProducts localiza a lista de produtos nas variantes conhecidas do envelope
func funnelProducts(result gjson.Result) []gjson.Result {
	if result.IsArray() {
		return result.Array()
	}
	list := firstOf(result, "data.products", "data.cards", "products", "cards")
	if list.IsArray() {
		return list.Array()
	}
	return nil
}

// NormalizeFunnelProduct extrai identificação e métricas do período selecionado
func NormalizeFunnelProduct(entry gjson.Result) wbdomain.FunnelProduct {
	product := entry.Get("product")
	if !product.Exists() {
		product = entry
	}

	stats := firstOf(entry, "statistic.selected", "statistics.selectedPeriod", "statistic.selectedPeriod")

	return wbdomain.FunnelProduct{
		NmID:       firstOf(product, "nmId", "nmID").Int(),
		VendorCode: product.Get("vendorCode").String(),
		Title:      firstOf(product, "title", "name").String(),
		Brand:      firstOf(product, "brandName", "brand").String(),
		Category:   firstOf(product, "subjectName", "object.name", "category").String(),
		Views:      int(firstOf(stats, "openCount", "openCardCount").Int()),
		CartAdds:   int(firstOf(stats, "cartCount", "addToCartCount").Int()),
		Orders:     int(firstOf(stats, "orderCount", "ordersCount").Int()),
		OrdersSum:  firstOf(stats, "orderSum", "ordersSumRub").Float(),
		Buyouts:    int(firstOf(stats, "buyoutCount", "buyoutsCount").Int()),
		BuyoutsSum: firstOf(stats, "buyoutSum", "buyoutsSumRub").Float(),
	}
}

// NormalizeReportRow converte uma linha do relatório financeiro
func NormalizeReportRow(row gjson.Result) wbdomain.ReportRow {
	quantity := int(row.Get("quantity").Int())
	if quantity <= 0 {
		quantity = 1
	}

	amount, ok := numberOf(row.Get("ppvz_for_pay"))
	if !ok {
		amount, _ = numberOf(row.Get("retail_price_withdisc_rub"))
	}

	return wbdomain.ReportRow{
		RrdID:            row.Get("rrd_id").Int(),
		SaName:           row.Get("sa_name").String(),
		NmID:             row.Get("nm_id").Int(),
		Brand:            row.Get("brand_name").String(),
		Subject:          row.Get("subject_name").String(),
		SupplierOperName: row.Get("supplier_oper_name").String(),
		DocTypeName:      row.Get("doc_type_name").String(),
		Quantity:         quantity,
		Amount:           amount,
	}
}
