package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Telegram    Telegram    `mapstructure:",squash"`
	Scheduler   Scheduler   `mapstructure:",squash"`
	Wildberries Wildberries `mapstructure:",squash"`
	Fanout      Fanout      `mapstructure:",squash"`
	View        View        `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Enabled bool   `mapstructure:"server_enabled"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret            string        `mapstructure:"auth_secret"`
	AdminUsername     string        `mapstructure:"admin_username"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	TokenTTL          time.Duration `mapstructure:"auth_token_ttl"`
}

type Telegram struct {
	Token       string  `mapstructure:"telegram_token"`
	AdminChatID int64   `mapstructure:"admin_chat_id"`
	SendRate    float64 `mapstructure:"telegram_send_rate"`
}

// Scheduler configura os disparos automáticos de relatório
type Scheduler struct {
	Enabled       bool          `mapstructure:"scheduler_enabled"`
	ScheduleTimes []string      `mapstructure:"schedule_times"`
	Timezone      string        `mapstructure:"timezone"`
	Tick          time.Duration `mapstructure:"scheduler_tick"`
	PostFireDelay time.Duration `mapstructure:"scheduler_post_fire_delay"`
	Mode          string        `mapstructure:"scheduler_mode"`
}

// Wildberries agrupa endpoints, resfriamentos e políticas de retentativa da API do marketplace
type Wildberries struct {
	StatisticsURL        string        `mapstructure:"wb_statistics_url"`
	AnalyticsURL         string        `mapstructure:"wb_analytics_url"`
	OrdersCooling        time.Duration `mapstructure:"wb_orders_cooling"`
	SalesCooling         time.Duration `mapstructure:"wb_sales_cooling"`
	ReportCooling        time.Duration `mapstructure:"wb_report_cooling"`
	FunnelCooling        time.Duration `mapstructure:"wb_funnel_cooling"`
	StatisticsTimeout    time.Duration `mapstructure:"wb_statistics_timeout"`
	FunnelTimeout        time.Duration `mapstructure:"wb_funnel_timeout"`
	StatisticsMaxAttempt int           `mapstructure:"wb_statistics_max_attempts"`
	FunnelMaxAttempt     int           `mapstructure:"wb_funnel_max_attempts"`
	RetryBaseDelay       time.Duration `mapstructure:"wb_retry_base_delay"`
	OrdersBatchSize      int           `mapstructure:"wb_orders_batch_size"`
	OrdersMaxRequests    int           `mapstructure:"wb_orders_max_requests"`
	FunnelPageLimit      int           `mapstructure:"wb_funnel_page_limit"`
	FunnelMaxPages       int           `mapstructure:"wb_funnel_max_pages"`
	ReportLimit          int           `mapstructure:"wb_report_limit"`
	ReportMaxPages       int           `mapstructure:"wb_report_max_pages"`
}

type Fanout struct {
	FunnelSpacing  time.Duration `mapstructure:"fanout_funnel_spacing"`
	SummarySpacing time.Duration `mapstructure:"fanout_summary_spacing"`
}

type View struct {
	PageSize int `mapstructure:"page_size"`
}

// Location devolve o fuso horário de operação, com fallback para UTC+3
func (s Scheduler) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido: %s, usando UTC+3", s.Timezone)
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_ENABLED", true)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/seller_analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("TELEGRAM_TOKEN", "")
	viper.SetDefault("ADMIN_CHAT_ID", 0)
	viper.SetDefault("TELEGRAM_SEND_RATE", 25)

	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SCHEDULE_TIMES", "07:00,12:00,19:00")
	viper.SetDefault("TIMEZONE", "Europe/Moscow")
	viper.SetDefault("SCHEDULER_TICK", "30s")
	viper.SetDefault("SCHEDULER_POST_FIRE_DELAY", "61s")
	viper.SetDefault("SCHEDULER_MODE", "summary")

	viper.SetDefault("WB_STATISTICS_URL", "https://statistics-api.wildberries.ru")
	viper.SetDefault("WB_ANALYTICS_URL", "https://seller-analytics-api.wildberries.ru")
	viper.SetDefault("WB_ORDERS_COOLING", "60s")
	viper.SetDefault("WB_SALES_COOLING", "60s")
	viper.SetDefault("WB_REPORT_COOLING", "60s")
	viper.SetDefault("WB_FUNNEL_COOLING", "20s")
	viper.SetDefault("WB_STATISTICS_TIMEOUT", "30s")
	viper.SetDefault("WB_FUNNEL_TIMEOUT", "60s")
	viper.SetDefault("WB_STATISTICS_MAX_ATTEMPTS", 5)
	viper.SetDefault("WB_FUNNEL_MAX_ATTEMPTS", 3)
	viper.SetDefault("WB_RETRY_BASE_DELAY", "30s")
	viper.SetDefault("WB_ORDERS_BATCH_SIZE", 1000)
	viper.SetDefault("WB_ORDERS_MAX_REQUESTS", 10)
	viper.SetDefault("WB_FUNNEL_PAGE_LIMIT", 1000)
	viper.SetDefault("WB_FUNNEL_MAX_PAGES", 50)
	viper.SetDefault("WB_REPORT_LIMIT", 100000)
	viper.SetDefault("WB_REPORT_MAX_PAGES", 20)

	viper.SetDefault("FANOUT_FUNNEL_SPACING", "5s")
	viper.SetDefault("FANOUT_SUMMARY_SPACING", "2s")

	viper.SetDefault("PAGE_SIZE", 3)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate normaliza e valida os campos que o núcleo de coleta depende
func (c *Config) Validate() error {
	times := make([]string, 0, len(c.Scheduler.ScheduleTimes))
	for _, raw := range c.Scheduler.ScheduleTimes {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if _, err := time.Parse("15:04", raw); err != nil {
			return fmt.Errorf("horário inválido em SCHEDULE_TIMES: %q", raw)
		}
		times = append(times, raw)
	}
	c.Scheduler.ScheduleTimes = times

	if c.Scheduler.Mode == "" {
		c.Scheduler.Mode = "summary"
	}
	if c.Scheduler.Mode != "funnel" && c.Scheduler.Mode != "summary" {
		return fmt.Errorf("SCHEDULER_MODE inválido: %q", c.Scheduler.Mode)
	}
	if c.Scheduler.Tick <= 0 {
		c.Scheduler.Tick = 30 * time.Second
	}

	if c.View.PageSize <= 0 {
		c.View.PageSize = 3
	}
	if c.Wildberries.StatisticsMaxAttempt <= 0 {
		c.Wildberries.StatisticsMaxAttempt = 1
	}
	if c.Wildberries.FunnelMaxAttempt <= 0 {
		c.Wildberries.FunnelMaxAttempt = 1
	}
	if c.Wildberries.ReportLimit <= 0 {
		return fmt.Errorf("WB_REPORT_LIMIT deve ser positivo")
	}
	if c.Wildberries.FunnelPageLimit <= 0 {
		return fmt.Errorf("WB_FUNNEL_PAGE_LIMIT deve ser positivo")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
