package reporting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/seller-analytics-bot/infrastructure/cache"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/navigating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
)

var (
	ErrNoTenants     = errors.New("nenhuma loja cadastrada")
	ErrReportExpired = errors.New("relatório expirado")
	ErrRunInProgress = errors.New("já existe uma execução em andamento para este operador")
)

type RunRequest struct {
	Namespace domain.Namespace
	// UserID zero executa sem guardar o resultado (API administrativa)
	UserID   int64
	Mode     domain.RunMode
	Date     time.Time
	IsAuto   bool
	Progress chan fanout.Progress
}

type Reporter interface {
	Run(ctx context.Context, req RunRequest) (*domain.FanoutResult, error)
	Publish(ns domain.Namespace, userIDs []int64, result *domain.FanoutResult)
	Render(ns domain.Namespace, userID int64) (domain.Render, error)
	Result(ns domain.Namespace, userID int64) (*domain.FanoutResult, error)
	Navigate(ctx context.Context, userID int64, payload string) (domain.Render, error)
	Clear(ns domain.Namespace, userID int64)
}

type Service struct {
	tenants   tenant.TenantService
	runner    fanout.Runner
	store     cache.ReportStore
	navigator *navigating.Navigator
	now       func() time.Time

	mu      sync.Mutex
	running map[runKey]struct{}
}

type runKey struct {
	ns     domain.Namespace
	userID int64
}

func NewService(
	tenants tenant.TenantService,
	runner fanout.Runner,
	store cache.ReportStore,
	navigator *navigating.Navigator,
) Reporter {
	return &Service{
		tenants:   tenants,
		runner:    runner,
		store:     store,
		navigator: navigator,
		now:       time.Now,
		running:   make(map[runKey]struct{}),
	}
}

func (s *Service) acquire(key runKey) bool {
	if key.userID == 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.running[key]; busy {
		return false
	}
	s.running[key] = struct{}{}
	return true
}

func (s *Service) release(key runKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.running, key)
}

// Run carrega as lojas, executa a coleta e guarda o resultado para o operador
func (s *Service) Run(ctx context.Context, req RunRequest) (*domain.FanoutResult, error) {
	if !req.Mode.IsValid() {
		req.Mode = domain.ModeFunnel
	}
	if !req.Namespace.IsValid() {
		req.Namespace = domain.NamespaceManual
	}
	if req.Date.IsZero() {
		req.Date = s.now().In(wbdomain.Moscow)
	}

	key := runKey{ns: req.Namespace, userID: req.UserID}
	if !s.acquire(key) {
		return nil, ErrRunInProgress
	}
	defer s.release(key)

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   req.UserID,
		"namespace": req.Namespace,
		"mode":      req.Mode,
	})

	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		logger.Info("Execução ignorada: nenhuma loja cadastrada")
		return nil, ErrNoTenants
	}

	result := s.runner.Run(ctx, tenants, fanout.Request{
		Mode:     req.Mode,
		Date:     req.Date,
		IsAuto:   req.IsAuto,
		Progress: req.Progress,
	})

	if req.UserID != 0 {
		s.store.Save(req.Namespace, req.UserID, result)
	}

	return result, nil
}

// Publish guarda o mesmo resultado para vários operadores (relatório automático)
func (s *Service) Publish(ns domain.Namespace, userIDs []int64, result *domain.FanoutResult) {
	for _, userID := range userIDs {
		s.store.Save(ns, userID, result)
	}
}

// Render devolve a visão da posição atual do operador
func (s *Service) Render(ns domain.Namespace, userID int64) (domain.Render, error) {
	entry, ok := s.store.Get(ns, userID)
	if !ok {
		return domain.Render{}, ErrReportExpired
	}
	return s.navigator.Render(ns, entry.Result, entry.Cursor), nil
}

// Result devolve o último resultado guardado para o operador
func (s *Service) Result(ns domain.Namespace, userID int64) (*domain.FanoutResult, error) {
	entry, ok := s.store.Get(ns, userID)
	if !ok {
		return nil, ErrReportExpired
	}
	return entry.Result, nil
}

// Navigate aplica o evento do botão sobre uma cópia da entrada e grava o novo cursor
func (s *Service) Navigate(ctx context.Context, userID int64, payload string) (domain.Render, error) {
	parsed, err := navigating.ParsePayload(payload)
	if err != nil {
		return domain.Render{}, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   userID,
		"namespace": parsed.Namespace,
		"action":    parsed.Event.Action,
	})

	entry, ok := s.store.Get(parsed.Namespace, userID)
	if !ok || entry.Result.ID != parsed.RunID {
		logger.Debug("Navegação em relatório expirado")
		return domain.Render{}, ErrReportExpired
	}

	cursor, err := s.navigator.Apply(entry.Result, entry.Cursor, parsed.Event)
	if err != nil {
		return domain.Render{}, err
	}

	if !s.store.SetCursor(parsed.Namespace, userID, parsed.RunID, cursor) {
		return domain.Render{}, ErrReportExpired
	}

	return s.navigator.Render(parsed.Namespace, entry.Result, cursor), nil
}

func (s *Service) Clear(ns domain.Namespace, userID int64) {
	s.store.Delete(ns, userID)
}
