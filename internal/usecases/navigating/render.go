package navigating

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

// formatMoney usa separador de milhar com espaço e vírgula decimal: 1 234,50 ₽
func formatMoney(value float64) string {
	fixed := decimal.NewFromFloat(value).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%s%s,%s ₽", sign, b.String(), frac)
}

func formatPercent(value float64) string {
	return strings.Replace(decimal.NewFromFloat(value).Round(2).String(), ".", ",", 1) + "%"
}

func (n *Navigator) button(label string, ns domain.Namespace, runID string, action Action, arg int) domain.Button {
	return domain.Button{
		Label:   label,
		Payload: Payload{Namespace: ns, RunID: runID, Event: Event{Action: action, Arg: arg}}.Encode(),
	}
}

// Render monta a visão para o cursor; o cursor deve ter sido validado por Apply
func (n *Navigator) Render(ns domain.Namespace, result *domain.FanoutResult, cursor domain.Cursor) domain.Render {
	if result == nil || len(result.Stores) == 0 {
		return domain.Render{Text: "Nenhuma loja foi processada nesta execução."}
	}

	if cursor.Store < 0 || cursor.Store >= len(result.Stores) {
		cursor = domain.InitialCursor()
	}

	if cursor.View == domain.ViewProducts && result.Stores[cursor.Store].HasActivity {
		return n.renderProducts(ns, result, cursor)
	}
	return n.renderSummary(ns, result, cursor)
}

func (n *Navigator) header(result *domain.FanoutResult, store *domain.Aggregate) string {
	var b strings.Builder
	if result.IsAutoReport {
		b.WriteString("🕒 <i>Relatório automático</i>\n")
	}
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(store.TenantName))
	fmt.Fprintf(&b, "📅 %s, %s\n", result.Date, result.Weekday)
	return b.String()
}

func (n *Navigator) renderSummary(ns domain.Namespace, result *domain.FanoutResult, cursor domain.Cursor) domain.Render {
	store := &result.Stores[cursor.Store]

	var b strings.Builder
	b.WriteString(n.header(result, store))
	b.WriteString("\n")

	switch {
	case store.IsFailed():
		label := "erro desconhecido"
		if store.Failure != nil {
			label = store.Failure.Kind.Label()
		}
		fmt.Fprintf(&b, "⚠️ Não foi possível coletar os dados: %s\n", html.EscapeString(label))
	default:
		t := store.Totals
		fmt.Fprintf(&b, "👁 Visualizações: %d\n", t.Views)
		fmt.Fprintf(&b, "🛒 Carrinho: %d (%s)\n", t.CartAdds, formatPercent(t.CartConversion))
		fmt.Fprintf(&b, "📦 Pedidos: %d • %s (%s)\n", t.Orders, formatMoney(t.OrdersSum), formatPercent(t.OrderConversion))
		fmt.Fprintf(&b, "✅ Resgates: %d • %s\n", t.Buyouts, formatMoney(t.BuyoutsSum))

		o := store.Orders
		if o != (domain.OrdersSummary{}) {
			fmt.Fprintf(&b, "\n🧾 Pedidos registrados: %d • %s\n", o.OrdersQty, formatMoney(o.OrdersAmount))
			if o.BuyoutsQty > 0 {
				fmt.Fprintf(&b, "💰 Resgates registrados: %d • %s\n", o.BuyoutsQty, formatMoney(o.BuyoutsAmount))
			}
			if o.Cancelled > 0 {
				fmt.Fprintf(&b, "❌ Cancelados: %d\n", o.Cancelled)
			}
		}

		if !store.HasActivity {
			b.WriteString("\nSem pedidos ou resgates no período.\n")
		}
	}

	for _, note := range store.Degraded {
		fmt.Fprintf(&b, "<i>⚠ %s</i>\n", html.EscapeString(note))
	}
	if result.Cancelled {
		b.WriteString("<i>Execução interrompida; resultado parcial.</i>\n")
	}

	fmt.Fprintf(&b, "\nloja %d/%d", cursor.Store+1, len(result.Stores))

	var keyboard domain.Keyboard
	if row := n.storeRow(ns, result, cursor); len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	if store.HasActivity {
		keyboard = append(keyboard, []domain.Button{
			n.button("📋 Produtos", ns, result.ID, ActionToProducts, 0),
		})
	}

	return domain.Render{Text: b.String(), Keyboard: keyboard}
}

func (n *Navigator) renderProducts(ns domain.Namespace, result *domain.FanoutResult, cursor domain.Cursor) domain.Render {
	store := &result.Stores[cursor.Store]
	active := store.ActiveProducts()
	pages := n.TotalPages(store)

	page := cursor.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	from := (page - 1) * n.pageSize
	to := from + n.pageSize
	if to > len(active) {
		to = len(active)
	}

	var b strings.Builder
	b.WriteString(n.header(result, store))

	for i, p := range active[from:to] {
		fmt.Fprintf(&b, "\n<b>%d. %s</b>\n", from+i+1, html.EscapeString(p.DisplayName))
		fmt.Fprintf(&b, "Artigo: <code>%s</code>\n", html.EscapeString(p.Article))
		fmt.Fprintf(&b, "📦 Pedidos: %d • %s\n", p.Orders, formatMoney(p.OrdersSum))
		fmt.Fprintf(&b, "👁 Visualizações: %d | 🛒 Carrinho: %d\n", p.Views, p.CartAdds)
		fmt.Fprintf(&b, "Conv. carrinho: %s | Conv. pedido: %s\n", formatPercent(p.CartConv), formatPercent(p.OrderConv))
	}

	fmt.Fprintf(&b, "\npágina %d/%d | produtos %d–%d de %d | loja %d/%d",
		page, pages, from+1, to, len(active), cursor.Store+1, len(result.Stores))

	var keyboard domain.Keyboard

	var pageRow []domain.Button
	if page > 1 {
		pageRow = append(pageRow, n.button("◀️", ns, result.ID, ActionPagePrev, 0))
	}
	if page < pages {
		pageRow = append(pageRow, n.button("▶️", ns, result.ID, ActionPageNext, 0))
	}
	if len(pageRow) > 0 {
		keyboard = append(keyboard, pageRow)
	}
	if row := n.storeRow(ns, result, cursor); len(row) > 0 {
		keyboard = append(keyboard, row)
	}
	keyboard = append(keyboard, []domain.Button{
		n.button("↩️ Resumo", ns, result.ID, ActionBackToSummary, 0),
	})

	return domain.Render{Text: b.String(), Keyboard: keyboard}
}

func (n *Navigator) storeRow(ns domain.Namespace, result *domain.FanoutResult, cursor domain.Cursor) []domain.Button {
	var row []domain.Button
	if cursor.Store > 0 {
		row = append(row, n.button("⬅️ Loja anterior", ns, result.ID, ActionStorePrev, 0))
	}
	if cursor.Store < len(result.Stores)-1 {
		row = append(row, n.button("Próxima loja ➡️", ns, result.ID, ActionStoreNext, 0))
	}
	return row
}
