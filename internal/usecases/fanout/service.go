package fanout

import (
	"context"
	"strconv"
	"time"

	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/aggregating"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

// DateLayout é o formato da data exibida no cabeçalho do relatório
const DateLayout = utils.DateLayout

// Progress é emitido antes de cada loja ser processada
type Progress struct {
	Index      int
	Total      int
	TenantName string
}

// NewProgressChannel cria o canal de progresso com capacidade 1
func NewProgressChannel() chan Progress {
	return make(chan Progress, 1)
}

// Publish entrega o evento sem bloquear; um evento antigo ainda não lido é descartado
func Publish(ch chan Progress, event Progress) {
	if ch == nil {
		return
	}
	for {
		select {
		case ch <- event:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

type Request struct {
	Mode     domain.RunMode
	Date     time.Time
	IsAuto   bool
	Progress chan Progress
}

type Runner interface {
	Run(ctx context.Context, tenants []*domain.SellerAccount, req Request) *domain.FanoutResult
}

type SleepFunc = utils.SleepFunc

type Option func(*Service)

func WithSleep(sleep SleepFunc) Option {
	return func(s *Service) { s.sleep = sleep }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	aggregator aggregating.Aggregator
	cfg        config.Fanout
	sleep      SleepFunc
	now        func() time.Time
}

func NewService(cfg *config.Config, aggregator aggregating.Aggregator, opts ...Option) Runner {
	s := &Service{
		aggregator: aggregator,
		cfg:        cfg.Fanout,
		sleep:      utils.Sleep,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) spacing(mode domain.RunMode) time.Duration {
	if mode == domain.ModeSummary {
		return s.cfg.SummarySpacing
	}
	return s.cfg.FunnelSpacing
}

// Run percorre as lojas na ordem declarada, uma por vez
func (s *Service) Run(ctx context.Context, tenants []*domain.SellerAccount, req Request) *domain.FanoutResult {
	ctx, _ = log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"mode":    req.Mode,
		"tenants": len(tenants),
		"auto":    req.IsAuto,
	})

	now := s.now().In(wbdomain.Moscow)
	reportDate := now
	if req.Mode != domain.ModeSummary && !req.Date.IsZero() {
		reportDate = req.Date.In(wbdomain.Moscow)
	}

	result := &domain.FanoutResult{
		ID:           runID(now),
		Stores:       make([]domain.Aggregate, 0, len(tenants)),
		Date:         reportDate.Format(DateLayout),
		Weekday:      utils.WeekdayLabel(reportDate),
		IsAutoReport: req.IsAuto,
		GeneratedAt:  now,
	}

	logger.WithField("run_id", result.ID).Info("Iniciando coleta das lojas")
	start := s.now()

	aggReq := aggregating.Request{Mode: req.Mode, Date: reportDate, Now: now}

	for i, tenant := range tenants {
		if i > 0 {
			if err := s.sleep(ctx, s.spacing(req.Mode)); err != nil {
				result.Cancelled = true
				break
			}
		}
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}

		Publish(req.Progress, Progress{Index: i + 1, Total: len(tenants), TenantName: tenant.DisplayName()})

		agg := s.aggregator.Aggregate(ctx, tenant, aggReq)
		result.Append(agg)

		if agg.IsFailed() && agg.Failure != nil && agg.Failure.Kind == domain.FailureCancelled {
			result.Cancelled = true
			break
		}
	}

	logger.WithFields(log.Fields{
		"run_id":     result.ID,
		"successful": result.Successful,
		"failed":     result.Failed,
		"cancelled":  result.Cancelled,
		"duration":   s.now().Sub(start).String(),
	}).Info("Coleta das lojas concluída")

	return result
}

func runID(now time.Time) string {
	id, err := utils.GenerateRunID()
	if err != nil {
		return strconv.FormatInt(now.UnixNano(), 36)
	}
	return id
}
