package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/seller-analytics-bot/internal/chat"
	chatmocks "github.com/vfg2006/seller-analytics-bot/internal/chat/mocks"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/navigating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	reportmocks "github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting/mocks"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"go.uber.org/mock/gomock"
)

const (
	adminChat int64 = -1001
	operator  int64 = 42
	stranger  int64 = 77
)

func admins() []chat.Member {
	return []chat.Member{
		{ID: operator, Status: chat.StatusCreator, FirstName: "Olga"},
		{ID: 500, IsBot: true, Status: chat.StatusAdministrator},
	}
}

func newTestBot(ctrl *gomock.Controller) (*Bot, *chatmocks.MockSurface, *reportmocks.MockReporter) {
	surface := chatmocks.NewMockSurface(ctrl)
	reporter := reportmocks.NewMockReporter(ctrl)
	cfg := &config.Config{Telegram: config.Telegram{AdminChatID: adminChat}}
	return New(cfg, surface, reporter), surface, reporter
}

func message(userID, chatID int64, text string) Update {
	return Update{UserID: userID, ChatID: chatID, MessageID: 1, Text: text}
}

func TestHandleMessage(t *testing.T) {
	log.SetupTestLogger()

	summaryRender := domain.Render{Text: "resumo loja 1/2", Keyboard: domain.Keyboard{{{Label: "▶️", Payload: "manual|r1|sn|"}}}}

	tests := []struct {
		name   string
		update Update
		setup  func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter)
	}{
		{
			name:   "start mostra a ajuda",
			update: message(operator, operator, "/start"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), operator, helpText, nil).Return(2, nil)
			},
		},
		{
			name:   "usuário fora do grupo é recusado",
			update: message(stranger, stranger, "/report"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), stranger, msgForbidden, nil).Return(2, nil)
			},
		},
		{
			name:   "comando em grupo pede conversa privada",
			update: message(operator, adminChat, "/report@seller_bot"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), adminChat, msgPrivateOnly, nil).Return(2, nil)
			},
		},
		{
			name:   "texto sem comando é ignorado",
			update: message(operator, operator, "bom dia"),
			setup:  func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {},
		},
		{
			name:   "comando desconhecido",
			update: message(operator, operator, "/xyz"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), operator, msgUnknownCommand, nil).Return(2, nil)
			},
		},
		{
			name:   "data inválida no report",
			update: message(operator, operator, "/report 31-12-2024"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), operator, msgInvalidDate, nil).Return(2, nil)
			},
		},
		{
			name:   "report com data edita o progresso e termina no resumo",
			update: message(operator, operator, "/report 09.05.2024"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				gomock.InOrder(
					surface.EXPECT().SendText(gomock.Any(), operator, msgCollecting, nil).Return(10, nil),
					surface.EXPECT().EditText(gomock.Any(), operator, 10, "⏳ Processando loja 2/2: <b>Loja &lt;B&gt;</b>", nil).Return(nil),
					surface.EXPECT().EditText(gomock.Any(), operator, 10, summaryRender.Text, summaryRender.Keyboard).Return(nil),
				)
				reporter.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req reporting.RunRequest) (*domain.FanoutResult, error) {
						assert.Equal(t, domain.NamespaceManual, req.Namespace)
						assert.Equal(t, operator, req.UserID)
						assert.Equal(t, domain.ModeFunnel, req.Mode)
						assert.Equal(t, "09.05.2024", req.Date.Format(fanout.DateLayout))
						fanout.Publish(req.Progress, fanout.Progress{Index: 2, Total: 2, TenantName: "Loja <B>"})
						return &domain.FanoutResult{ID: "r1"}, nil
					})
				reporter.EXPECT().Render(domain.NamespaceManual, operator).Return(summaryRender, nil)
			},
		},
		{
			name:   "summary sem lojas cadastradas",
			update: message(operator, operator, "/summary"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), operator, msgCollecting, nil).Return(10, nil)
				reporter.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req reporting.RunRequest) (*domain.FanoutResult, error) {
						assert.Equal(t, domain.ModeSummary, req.Mode)
						assert.True(t, req.Date.IsZero())
						return nil, reporting.ErrNoTenants
					})
				surface.EXPECT().EditText(gomock.Any(), operator, 10, msgNoTenants, nil).Return(nil)
			},
		},
		{
			name:   "execução concorrente do mesmo operador",
			update: message(operator, operator, "/report"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().SendText(gomock.Any(), operator, msgCollecting, nil).Return(10, nil)
				reporter.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, reporting.ErrRunInProgress)
				surface.EXPECT().EditText(gomock.Any(), operator, 10, msgRunInProgress, nil).Return(nil)
			},
		},
		{
			name:   "sem mensagem de progresso o resultado vai em mensagem nova",
			update: message(operator, operator, "/report"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				gomock.InOrder(
					surface.EXPECT().SendText(gomock.Any(), operator, msgCollecting, nil).Return(0, errors.New("timeout")),
					surface.EXPECT().SendText(gomock.Any(), operator, summaryRender.Text, summaryRender.Keyboard).Return(11, nil),
				)
				reporter.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req reporting.RunRequest) (*domain.FanoutResult, error) {
						fanout.Publish(req.Progress, fanout.Progress{Index: 1, Total: 1, TenantName: "Loja A"})
						return &domain.FanoutResult{ID: "r1"}, nil
					})
				reporter.EXPECT().Render(domain.NamespaceManual, operator).Return(summaryRender, nil)
			},
		},
		{
			name:   "export sem relatório",
			update: message(operator, operator, "/export"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				reporter.EXPECT().Result(domain.NamespaceManual, operator).Return(nil, reporting.ErrReportExpired)
				surface.EXPECT().SendText(gomock.Any(), operator, msgNoReport, nil).Return(2, nil)
			},
		},
		{
			name:   "export envia o CSV do último relatório",
			update: message(operator, operator, "/EXPORT"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				result := &domain.FanoutResult{ID: "r1", Date: "09.05.2024", Weekday: "quinta-feira"}
				reporter.EXPECT().Result(domain.NamespaceManual, operator).Return(result, nil)
				surface.EXPECT().SendDocument(gomock.Any(), operator, "relatorio_09-05-2024_r1.csv", gomock.Any(), "Relatório de 09.05.2024 (quinta-feira)").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, surface, reporter := newTestBot(ctrl)
			surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(admins(), nil).AnyTimes()
			tt.setup(surface, reporter)

			b.Handle(context.Background(), tt.update)
		})
	}
}

func TestHandleCallback(t *testing.T) {
	log.SetupTestLogger()

	callback := func(userID int64, data string) Update {
		return Update{UserID: userID, ChatID: userID, MessageID: 10, CallbackID: "cb1", CallbackData: data}
	}
	render := domain.Render{Text: "loja 2/2", Keyboard: domain.Keyboard{{{Label: "◀️", Payload: "manual|r1|sp|"}}}}

	tests := []struct {
		name   string
		update Update
		setup  func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter)
	}{
		{
			name:   "navegação edita a mensagem e responde o botão",
			update: callback(operator, "manual|r1|sn|"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				reporter.EXPECT().Navigate(gomock.Any(), operator, "manual|r1|sn|").Return(render, nil)
				gomock.InOrder(
					surface.EXPECT().EditText(gomock.Any(), operator, 10, render.Text, render.Keyboard).Return(nil),
					surface.EXPECT().AnswerCallback(gomock.Any(), "cb1", "").Return(nil),
				)
			},
		},
		{
			name:   "relatório expirado",
			update: callback(operator, "manual|old|sn|"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				reporter.EXPECT().Navigate(gomock.Any(), operator, gomock.Any()).Return(domain.Render{}, reporting.ErrReportExpired)
				surface.EXPECT().AnswerCallback(gomock.Any(), "cb1", msgReportExpired).Return(nil)
			},
		},
		{
			name:   "evento fora dos limites só responde o botão",
			update: callback(operator, "manual|r1|sn|"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				reporter.EXPECT().Navigate(gomock.Any(), operator, gomock.Any()).Return(domain.Render{}, navigating.ErrInvalidEvent)
				surface.EXPECT().AnswerCallback(gomock.Any(), "cb1", "").Return(nil)
			},
		},
		{
			name:   "payload inválido",
			update: callback(operator, "lixo"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				reporter.EXPECT().Navigate(gomock.Any(), operator, "lixo").Return(domain.Render{}, navigating.ErrInvalidPayload)
				surface.EXPECT().AnswerCallback(gomock.Any(), "cb1", msgInvalidButton).Return(nil)
			},
		},
		{
			name:   "usuário fora do grupo",
			update: callback(stranger, "manual|r1|sn|"),
			setup: func(surface *chatmocks.MockSurface, reporter *reportmocks.MockReporter) {
				surface.EXPECT().AnswerCallback(gomock.Any(), "cb1", msgForbidden).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, surface, reporter := newTestBot(ctrl)
			surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(admins(), nil).AnyTimes()
			tt.setup(surface, reporter)

			b.Handle(context.Background(), tt.update)
		})
	}
}

func TestIsOperatorCachesAdmins(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, surface, _ := newTestBot(ctrl)
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	gomock.InOrder(
		surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(admins(), nil),
		surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(nil, errors.New("Bad Gateway")),
	)

	ctx := context.Background()
	assert.True(t, b.isOperator(ctx, operator))
	assert.False(t, b.isOperator(ctx, stranger))
	assert.False(t, b.isOperator(ctx, 500), "bots não são operadores")

	// após o TTL a lista é renovada; em falha a última lista conhecida continua valendo
	now = now.Add(defaultOperatorsTTL + time.Second)
	assert.True(t, b.isOperator(ctx, operator))
}

func TestIsOperatorWithoutAnyListDenies(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, surface, _ := newTestBot(ctrl)
	surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(nil, errors.New("chat not found"))

	assert.False(t, b.isOperator(context.Background(), operator))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text    string
		command string
		args    []string
	}{
		{text: "/report", command: "report", args: []string{}},
		{text: "/report@seller_bot 09.05.2024", command: "report", args: []string{"09.05.2024"}},
		{text: "  /Summary  ", command: "summary", args: []string{}},
		{text: "report", command: ""},
		{text: "", command: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			command, args := parseCommand(tt.text)
			assert.Equal(t, tt.command, command)
			if tt.command != "" {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestFromTelegram(t *testing.T) {
	u, ok := FromTelegram(tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 5,
		From:      &tgbotapi.User{ID: operator},
		Chat:      &tgbotapi.Chat{ID: operator},
		Text:      "/report",
	}})
	require.True(t, ok)
	assert.Equal(t, Update{UserID: operator, ChatID: operator, MessageID: 5, Text: "/report"}, u)
	assert.False(t, u.IsCallback())

	u, ok = FromTelegram(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb9",
		From:    &tgbotapi.User{ID: operator},
		Data:    "manual|r1|sum|",
		Message: &tgbotapi.Message{MessageID: 12, Chat: &tgbotapi.Chat{ID: operator}},
	}})
	require.True(t, ok)
	assert.True(t, u.IsCallback())
	assert.Equal(t, 12, u.MessageID)
	assert.Equal(t, "manual|r1|sum|", u.CallbackData)

	_, ok = FromTelegram(tgbotapi.Update{})
	assert.False(t, ok)
}

func TestListenStopsWhenChannelCloses(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b, surface, _ := newTestBot(ctrl)
	surface.EXPECT().ListAdmins(gomock.Any(), adminChat).Return(admins(), nil)
	surface.EXPECT().SendText(gomock.Any(), operator, helpText, nil).Return(2, nil)

	updates := make(chan tgbotapi.Update, 2)
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: operator},
		Chat: &tgbotapi.Chat{ID: operator},
		Text: "/help",
	}}
	updates <- tgbotapi.Update{}
	close(updates)

	assert.NoError(t, b.Listen(context.Background(), updates))
}
