package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/internal/chat"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

const minuteKeyLayout = "2006-01-02 15:04"

// ReportSchedulerConfig representa a configuração dos relatórios automáticos
type ReportSchedulerConfig struct {
	Enabled       bool
	Times         map[string]struct{}
	Tick          time.Duration
	PostFireDelay time.Duration
	Mode          domain.RunMode
	AdminChatID   int64
}

// ReportScheduler dispara o relatório automático nos horários configurados e entrega aos operadores
type ReportScheduler struct {
	scheduler *gocron.Scheduler
	config    ReportSchedulerConfig
	location  *time.Location
	reporter  reporting.Reporter
	surface   chat.Surface
	now       func() time.Time
	sleep     utils.SleepFunc
	baseCtx   context.Context

	runMutex           sync.Mutex
	running            bool
	lastFired          string
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastDelivered      int
	lastError          string
}

func NewReportScheduler(appConfig *config.Config, reporter reporting.Reporter, surface chat.Surface) *ReportScheduler {
	times := make(map[string]struct{}, len(appConfig.Scheduler.ScheduleTimes))
	for _, t := range appConfig.Scheduler.ScheduleTimes {
		times[t] = struct{}{}
	}

	schedulerConfig := ReportSchedulerConfig{
		Enabled:       appConfig.Scheduler.Enabled,
		Times:         times,
		Tick:          appConfig.Scheduler.Tick,
		PostFireDelay: appConfig.Scheduler.PostFireDelay,
		Mode:          domain.RunMode(appConfig.Scheduler.Mode),
		AdminChatID:   appConfig.Telegram.AdminChatID,
	}
	location := appConfig.Scheduler.Location()

	logrus.WithFields(logrus.Fields{
		"schedule_times":  appConfig.Scheduler.ScheduleTimes,
		"timezone":        location.String(),
		"tick":            schedulerConfig.Tick.String(),
		"post_fire_delay": schedulerConfig.PostFireDelay.String(),
		"mode":            schedulerConfig.Mode,
		"enabled":         schedulerConfig.Enabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportScheduler{
		scheduler: gocron.NewScheduler(location),
		config:    schedulerConfig,
		location:  location,
		reporter:  reporter,
		surface:   surface,
		now:       time.Now,
		sleep:     utils.Sleep,
		baseCtx:   context.Background(),
	}
}

// Start inicia o agendador
func (s *ReportScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Relatórios automáticos desabilitados por configuração")
		return nil
	}

	s.baseCtx = ctx

	// modo singleton: ticks que chegam durante a pausa pós-disparo são descartados
	_, err := s.scheduler.Every(s.config.Tick).SingletonMode().Do(func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar relatórios automáticos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// tick verifica o minuto atual; dispara no máximo uma vez por minuto agendado
func (s *ReportScheduler) tick(ctx context.Context) {
	now := s.now().In(s.location)
	if _, scheduled := s.config.Times[now.Format("15:04")]; !scheduled {
		return
	}

	key := now.Format(minuteKeyLayout)
	s.runMutex.Lock()
	if s.lastFired == key {
		s.runMutex.Unlock()
		return
	}
	s.lastFired = key
	s.runMutex.Unlock()

	s.runReport(ctx)

	if err := s.sleep(ctx, s.config.PostFireDelay); err != nil {
		logrus.Debug("Pausa pós-disparo interrompida")
	}
}

// runReport executa a coleta automática e entrega o resumo da primeira loja a cada operador
func (s *ReportScheduler) runReport(ctx context.Context) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Relatório automático já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	delivered := 0
	var runErr error

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.lastRunCompletedAt = time.Now()
		s.lastDelivered = delivered
		s.lastError = ""
		if runErr != nil {
			s.lastError = runErr.Error()
		}
		s.runMutex.Unlock()
	}()

	ctx, _ = log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx).WithField("mode", s.config.Mode)

	operators, err := chat.DiscoverOperators(ctx, s.surface, s.config.AdminChatID)
	if err != nil {
		runErr = err
		logger.WithError(err).Error("Erro ao buscar operadores do grupo de administração")
		return
	}
	if len(operators) == 0 {
		logger.Warn("Nenhum operador encontrado no grupo de administração")
		return
	}

	result, err := s.reporter.Run(ctx, reporting.RunRequest{
		Namespace: domain.NamespaceAuto,
		Mode:      s.config.Mode,
		IsAuto:    true,
	})
	if err != nil {
		runErr = err
		if errors.Is(err, reporting.ErrNoTenants) {
			logger.Info("Relatório automático ignorado: nenhuma loja cadastrada")
			return
		}
		logger.WithError(err).Error("Erro ao executar relatório automático")
		return
	}

	s.reporter.Publish(domain.NamespaceAuto, operators, result)

	for _, operator := range operators {
		render, err := s.reporter.Render(domain.NamespaceAuto, operator)
		if err != nil {
			logger.WithError(err).WithField("user_id", operator).Warn("Relatório automático indisponível para o operador")
			continue
		}
		if _, err := s.surface.SendText(ctx, operator, render.Text, render.Keyboard); err != nil {
			logger.WithError(err).WithField("user_id", operator).Error("Erro ao entregar relatório automático")
			continue
		}
		delivered++
	}

	logger.WithFields(log.Fields{
		"run_id":     result.ID,
		"operators":  len(operators),
		"delivered":  delivered,
		"successful": result.Successful,
		"failed":     result.Failed,
	}).Info("Relatório automático entregue")
}

// TriggerManualRun dispara o relatório automático fora do horário
func (s *ReportScheduler) TriggerManualRun() bool {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Relatório automático já em andamento, ignorando solicitação manual")
		return false
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando relatório automático manual")
	go s.runReport(s.baseCtx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *ReportScheduler) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	times := make([]string, 0, len(s.config.Times))
	for t := range s.config.Times {
		times = append(times, t)
	}

	return map[string]any{
		"enabled":               s.config.Enabled,
		"schedule_times":        times,
		"timezone":              s.location.String(),
		"mode":                  s.config.Mode,
		"running":               s.running,
		"last_fired_minute":     s.lastFired,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_delivered":        s.lastDelivered,
		"last_error":            s.lastError,
	}
}
