package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/cache"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout"
	fanoutmocks "github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout/mocks"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/navigating"
	tenantmocks "github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant/mocks"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc     *Service
	tenants *tenantmocks.MockTenantService
	runner  *fanoutmocks.MockRunner
	store   *cache.MemoryReportStore
}

func newFixture(ctrl *gomock.Controller) *fixture {
	tenants := tenantmocks.NewMockTenantService(ctrl)
	runner := fanoutmocks.NewMockRunner(ctrl)
	store := cache.NewReportStore()
	nav := navigating.NewNavigator(&config.Config{View: config.View{PageSize: 3}})

	svc := NewService(tenants, runner, store, nav).(*Service)
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }

	return &fixture{svc: svc, tenants: tenants, runner: runner, store: store}
}

func twoStoreResult(id string) *domain.FanoutResult {
	result := &domain.FanoutResult{ID: id}
	for _, name := range []string{"S1", "S2"} {
		agg := domain.Aggregate{TenantID: name, TenantName: name, Status: domain.AggregateOK,
			Products: []domain.ProductStatistic{{Article: "A", Orders: 1}}}
		agg.ComputeTotals()
		result.Append(agg)
	}
	return result
}

func TestRun(t *testing.T) {
	log.SetupTestLogger()
	tenants := []*domain.SellerAccount{{ID: "T1"}, {ID: "T2"}}

	tests := []struct {
		name     string
		req      RunRequest
		setup    func(f *fixture)
		validate func(t *testing.T, f *fixture, result *domain.FanoutResult, err error)
	}{
		{
			name: "guarda o resultado do operador com cursor inicial",
			req:  RunRequest{Namespace: domain.NamespaceManual, UserID: 42, Mode: domain.ModeFunnel},
			setup: func(f *fixture) {
				f.tenants.EXPECT().ListTenants(gomock.Any()).Return(tenants, nil)
				f.runner.EXPECT().Run(gomock.Any(), tenants, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ []*domain.SellerAccount, req fanout.Request) *domain.FanoutResult {
						assert.Equal(t, domain.ModeFunnel, req.Mode)
						assert.False(t, req.Date.IsZero())
						return twoStoreResult("run1")
					})
			},
			validate: func(t *testing.T, f *fixture, result *domain.FanoutResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "run1", result.ID)
				entry, ok := f.store.Get(domain.NamespaceManual, 42)
				require.True(t, ok)
				assert.Equal(t, domain.InitialCursor(), entry.Cursor)
			},
		},
		{
			name: "sem lojas cadastradas",
			req:  RunRequest{Namespace: domain.NamespaceManual, UserID: 42},
			setup: func(f *fixture) {
				f.tenants.EXPECT().ListTenants(gomock.Any()).Return([]*domain.SellerAccount{}, nil)
			},
			validate: func(t *testing.T, f *fixture, result *domain.FanoutResult, err error) {
				assert.ErrorIs(t, err, ErrNoTenants)
				assert.Nil(t, result)
				assert.Equal(t, 0, f.store.Len())
			},
		},
		{
			name: "erro ao listar lojas",
			req:  RunRequest{UserID: 42},
			setup: func(f *fixture) {
				f.tenants.EXPECT().ListTenants(gomock.Any()).Return(nil, errors.New("db"))
			},
			validate: func(t *testing.T, f *fixture, result *domain.FanoutResult, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "execução sem operador não guarda resultado",
			req:  RunRequest{Mode: domain.ModeSummary},
			setup: func(f *fixture) {
				f.tenants.EXPECT().ListTenants(gomock.Any()).Return(tenants, nil)
				f.runner.EXPECT().Run(gomock.Any(), tenants, gomock.Any()).Return(twoStoreResult("run2"))
			},
			validate: func(t *testing.T, f *fixture, result *domain.FanoutResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, f.store.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)
			tt.setup(f)

			result, err := f.svc.Run(context.Background(), tt.req)
			tt.validate(t, f, result, err)
		})
	}
}

func TestRunRejectsConcurrentRunForSameOperator(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	key := runKey{ns: domain.NamespaceManual, userID: 42}
	require.True(t, f.svc.acquire(key))

	_, err := f.svc.Run(context.Background(), RunRequest{Namespace: domain.NamespaceManual, UserID: 42})
	assert.ErrorIs(t, err, ErrRunInProgress)

	f.svc.release(key)
	assert.True(t, f.svc.acquire(key))
}

func TestNavigate(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)
	f.svc.Publish(domain.NamespaceAuto, []int64{1, 2}, twoStoreResult("auto1"))
	f.store.Save(domain.NamespaceManual, 1, twoStoreResult("manual1"))

	ctx := context.Background()
	next := navigating.Payload{Namespace: domain.NamespaceAuto, RunID: "auto1", Event: navigating.Event{Action: navigating.ActionStoreNext}}

	render, err := f.svc.Navigate(ctx, 1, next.Encode())
	require.NoError(t, err)
	assert.Contains(t, render.Text, "loja 2/2")

	// sessões independentes: o operador 2 e o namespace manual não se movem
	auto2, _ := f.store.Get(domain.NamespaceAuto, 2)
	assert.Equal(t, 0, auto2.Cursor.Store)
	manual1, _ := f.store.Get(domain.NamespaceManual, 1)
	assert.Equal(t, 0, manual1.Cursor.Store)

	_, err = f.svc.Navigate(ctx, 1, next.Encode())
	assert.ErrorIs(t, err, navigating.ErrInvalidEvent)

	stale := navigating.Payload{Namespace: domain.NamespaceAuto, RunID: "old", Event: navigating.Event{Action: navigating.ActionStorePrev}}
	_, err = f.svc.Navigate(ctx, 1, stale.Encode())
	assert.ErrorIs(t, err, ErrReportExpired)

	_, err = f.svc.Navigate(ctx, 99, next.Encode())
	assert.ErrorIs(t, err, ErrReportExpired)

	_, err = f.svc.Navigate(ctx, 1, "lixo")
	assert.ErrorIs(t, err, navigating.ErrInvalidPayload)

	current, err := f.svc.Render(domain.NamespaceAuto, 1)
	require.NoError(t, err)
	assert.Contains(t, current.Text, "loja 2/2")

	f.svc.Clear(domain.NamespaceAuto, 1)
	_, err = f.svc.Render(domain.NamespaceAuto, 1)
	assert.ErrorIs(t, err, ErrReportExpired)
}

func TestResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	_, err := f.svc.Result(domain.NamespaceManual, 7)
	assert.ErrorIs(t, err, ErrReportExpired)

	stored := twoStoreResult("run9")
	f.store.Save(domain.NamespaceManual, 7, stored)

	result, err := f.svc.Result(domain.NamespaceManual, 7)
	require.NoError(t, err)
	assert.Same(t, stored, result)
}
