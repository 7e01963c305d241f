package bot

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

var csvHeader = []string{
	"loja", "status", "falha", "artigo", "nome", "visualizacoes", "carrinho",
	"pedidos", "soma_pedidos", "resgates", "soma_resgates",
	"conv_carrinho", "conv_pedido", "pct_resgate",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportCSV monta uma linha por artigo; lojas com falha ou sem artigos ocupam uma linha só
func ExportCSV(result *domain.FanoutResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, store := range result.Stores {
		failure := ""
		if store.Failure != nil {
			failure = store.Failure.Kind.Label()
		}

		if len(store.Products) == 0 {
			row := []string{store.TenantName, string(store.Status), failure, "", "", "", "", "", "", "", "", "", "", ""}
			if err := w.Write(row); err != nil {
				return nil, err
			}
			continue
		}

		for _, p := range store.Products {
			row := []string{
				store.TenantName,
				string(store.Status),
				failure,
				p.Article,
				p.DisplayName,
				strconv.Itoa(p.Views),
				strconv.Itoa(p.CartAdds),
				strconv.Itoa(p.Orders),
				formatFloat(p.OrdersSum),
				strconv.Itoa(p.Buyouts),
				formatFloat(p.BuyoutsSum),
				formatFloat(p.CartConv),
				formatFloat(p.OrderConv),
				formatFloat(p.BuyoutPct),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
