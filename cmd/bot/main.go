package main

import (
	"context"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/cache"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/database/postgres"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/wbclient"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/ratelimit"
	"github.com/vfg2006/seller-analytics-bot/infrastructure/repository"
	"github.com/vfg2006/seller-analytics-bot/internal/api"
	"github.com/vfg2006/seller-analytics-bot/internal/bot"
	"github.com/vfg2006/seller-analytics-bot/internal/chat"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/scheduler"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/aggregating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/authenticating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/navigating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/tenant"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	tenantRepo := repository.NewTenantRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)

	// um resfriamento por endpoint, compartilhado por todas as lojas
	limiter := ratelimit.New(map[string]time.Duration{
		wbdomain.EndpointOrders: cfg.Wildberries.OrdersCooling,
		wbdomain.EndpointSales:  cfg.Wildberries.SalesCooling,
		wbdomain.EndpointReport: cfg.Wildberries.ReportCooling,
		wbdomain.EndpointFunnel: cfg.Wildberries.FunnelCooling,
	})

	wbClient := wbclient.NewClient(cfg, limiter)
	wbIntegrator := wildberries.New(cfg, wbClient)

	aggregator := aggregating.NewService(wbIntegrator, productRepo)
	runner := fanout.NewService(cfg, aggregator)
	tenantService := tenant.NewService(tenantRepo, productRepo)
	reporter := reporting.NewService(tenantService, runner, cache.NewReportStore(), navigating.NewNavigator(cfg))
	authenticator := authenticating.NewService(cfg)

	telegram, err := chat.NewTelegram(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Telegram")
	}

	reportScheduler := scheduler.NewReportScheduler(cfg, reporter, telegram)
	if err := reportScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	} else {
		logrus.Info("Agendador de relatórios iniciado com sucesso")
	}

	operatorBot := bot.New(cfg, telegram, reporter)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = 60
		updates := telegram.Bot().GetUpdatesChan(updateConfig)

		go func() {
			<-ctx.Done()
			telegram.Bot().StopReceivingUpdates()
		}()

		logrus.Info("Bot do Telegram aguardando comandos")
		return operatorBot.Listen(ctx, updates)
	})

	if cfg.Server.Enabled {
		server, err := api.New(cfg, tenantService, reporter, authenticator, reportScheduler)
		if err != nil {
			logrus.Fatal(err)
		}

		group.Go(func() error {
			return server.Run(ctx)
		})
	}

	if err := group.Wait(); err != nil {
		logrus.Error(err)
	}

	logrus.Info("Aplicação finalizada")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
