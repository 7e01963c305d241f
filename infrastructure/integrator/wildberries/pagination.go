package wildberries

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
)

type feedFetcher func(ctx context.Context, cred wbdomain.Credential, dateFrom time.Time, flag wbdomain.FeedFlag) (gjson.Result, error)

// partial embrulha o erro quando já existem registros acumulados
func partial(endpoint string, pages, accumulated int, err error) error {
	if accumulated == 0 {
		return err
	}
	return &wbdomain.PartialError{Endpoint: endpoint, Pages: pages, Err: err}
}

func cancelled(ctx context.Context) error {
	return &wbdomain.APIError{Kind: wbdomain.KindCancelled, Detail: ctx.Err().Error()}
}

func positive(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// paginateFeed percorre pedidos/vendas avançando o cursor pelo maior lastChangeDate
func (s *WildberriesService) paginateFeed(ctx context.Context, cred wbdomain.Credential, endpoint string, fetch feedFetcher, params FeedParams, realisedDefault bool) ([]wbdomain.OrderRecord, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{"tenant_id": cred.TenantID, "endpoint": endpoint})

	batchSize := positive(s.cfg.OrdersBatchSize, 1000)
	maxRequests := positive(s.cfg.OrdersMaxRequests, 10)

	var records []wbdomain.OrderRecord
	seen := make(map[string]struct{})
	cursor := params.DateFrom

	for page := 1; page <= maxRequests; page++ {
		if ctx.Err() != nil {
			return records, partial(endpoint, page-1, len(records), cancelled(ctx))
		}

		result, err := fetch(ctx, cred, cursor, params.Flag)
		if err != nil {
			return records, partial(endpoint, page-1, len(records), err)
		}

		items := result.Array()
		next := cursor
		for _, item := range items {
			record := NormalizeFeedRecord(item, realisedDefault, logger)
			if record.LastChangeDate.After(next) {
				next = record.LastChangeDate
			}

			// a página seguinte começa no cursor e repete registros da borda
			if record.SRID != "" {
				key := record.SRID + "|" + record.LastChangeDate.String()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			records = append(records, record)
		}

		logger.WithFields(log.Fields{"page": page, "items": len(items)}).Debug("Página de pedidos/vendas recebida")

		if params.Flag == wbdomain.FlagOnDate {
			break
		}
		if len(items) == 0 || len(items) < batchSize {
			break
		}
		if !next.After(cursor) {
			logger.Debug("Cursor não avançou, encerrando paginação")
			break
		}
		cursor = next

		if page == maxRequests {
			logger.Warnf("Limite de %d requisições atingido na paginação", maxRequests)
		}
	}

	return records, nil
}

// paginateFunnel percorre o funil por offset até uma página curta
func (s *WildberriesService) paginateFunnel(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.FunnelProduct, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{"tenant_id": cred.TenantID, "endpoint": wbdomain.EndpointFunnel})

	limit := positive(s.cfg.FunnelPageLimit, 1000)
	maxPages := positive(s.cfg.FunnelMaxPages, 50)

	var products []wbdomain.FunnelProduct
	offset := 0

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			return products, partial(wbdomain.EndpointFunnel, page-1, len(products), cancelled(ctx))
		}

		result, err := s.Client.GetFunnelProducts(ctx, cred, wbclient.NewFunnelRequest(period, limit, offset))
		if err != nil {
			return products, partial(wbdomain.EndpointFunnel, page-1, len(products), err)
		}

		entries := funnelProducts(result)
		for _, entry := range entries {
			products = append(products, NormalizeFunnelProduct(entry))
		}

		logger.WithFields(log.Fields{"page": page, "items": len(entries), "offset": offset}).Debug("Página do funil recebida")

		if len(entries) < limit {
			break
		}
		offset += limit

		if page == maxPages {
			logger.Warnf("Limite de %d páginas do funil atingido", maxPages)
		}
	}

	return products, nil
}

// paginateReport percorre o relatório financeiro pelo rrd_id até um ponto fixo ou página curta
func (s *WildberriesService) paginateReport(ctx context.Context, cred wbdomain.Credential, period wbdomain.Period) ([]wbdomain.ReportRow, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{"tenant_id": cred.TenantID, "endpoint": wbdomain.EndpointReport})

	limit := positive(s.cfg.ReportLimit, 100000)
	maxPages := positive(s.cfg.ReportMaxPages, 20)

	var rows []wbdomain.ReportRow
	var cursor int64

	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			return rows, partial(wbdomain.EndpointReport, page-1, len(rows), cancelled(ctx))
		}

		result, err := s.Client.GetReportDetail(ctx, cred, wbclient.ReportDetailParams{
			Period: period,
			Limit:  limit,
			RrdID:  cursor,
		})
		if err != nil {
			return rows, partial(wbdomain.EndpointReport, page-1, len(rows), err)
		}

		items := result.Array()
		for _, item := range items {
			rows = append(rows, NormalizeReportRow(item))
		}

		logger.WithFields(log.Fields{"page": page, "items": len(items), "rrd_id": cursor}).Debug("Página do relatório recebida")

		if len(items) == 0 {
			break
		}

		last := items[len(items)-1].Get("rrd_id").Int()
		if last == cursor {
			logger.Debug("rrd_id repetido, encerrando paginação")
			break
		}
		cursor = last

		if len(items) < limit {
			break
		}

		if page == maxPages {
			logger.Warnf("Limite de %d páginas do relatório atingido", maxPages)
		}
	}

	return rows, nil
}
