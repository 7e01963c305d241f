package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	wbdomain "github.com/vfg2006/seller-analytics-bot/infrastructure/integrator/wildberries/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/chat"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/fanout"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/navigating"
	"github.com/vfg2006/seller-analytics-bot/internal/usecases/reporting"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"github.com/vfg2006/seller-analytics-bot/pkg/utils"
)

const (
	defaultOperatorsTTL = 5 * time.Minute

	helpText = "<b>Relatórios da loja</b>\n\n" +
		"/report - funil de vendas de hoje\n" +
		"/report dd.mm.aaaa - funil de vendas do dia informado\n" +
		"/summary - pedidos e vendas das últimas 24 horas\n" +
		"/export - planilha CSV do último relatório\n" +
		"/help - esta mensagem"

	msgForbidden       = "⛔ Acesso restrito aos administradores do grupo."
	msgPrivateOnly     = "Use o bot em uma conversa privada."
	msgUnknownCommand  = "Comando desconhecido. Use /help."
	msgInvalidDate     = "Data inválida. Use o formato dd.mm.aaaa."
	msgCollecting      = "⏳ Coletando dados das lojas..."
	msgNoTenants       = "Nenhuma loja cadastrada. Cadastre uma loja pela API administrativa (POST /v1/tenants)."
	msgRunInProgress   = "Já existe um relatório em andamento. Aguarde a conclusão."
	msgRunFailed       = "❌ Erro ao gerar o relatório. Tente novamente em alguns minutos."
	msgNoReport        = "Nenhum relatório disponível. Gere um com /report ou /summary."
	msgExportFailed    = "❌ Erro ao exportar o relatório."
	msgReportExpired   = "Relatório expirado. Gere um novo com /report."
	msgInvalidButton   = "Botão inválido."
	msgNavigationError = "Erro ao atualizar o relatório."
)

// Update é a parte de uma atualização do mensageiro que o bot usa
type Update struct {
	UserID    int64
	ChatID    int64
	MessageID int
	Text      string

	CallbackID   string
	CallbackData string
}

func (u Update) IsCallback() bool {
	return u.CallbackID != ""
}

// FromTelegram converte a atualização do Telegram; false para tipos ignorados
func FromTelegram(upd tgbotapi.Update) (Update, bool) {
	if cq := upd.CallbackQuery; cq != nil {
		if cq.From == nil {
			return Update{}, false
		}
		u := Update{UserID: cq.From.ID, CallbackID: cq.ID, CallbackData: cq.Data}
		if cq.Message != nil {
			u.MessageID = cq.Message.MessageID
			if cq.Message.Chat != nil {
				u.ChatID = cq.Message.Chat.ID
			}
		}
		return u, true
	}

	if msg := upd.Message; msg != nil && msg.From != nil && msg.Chat != nil {
		return Update{
			UserID:    msg.From.ID,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			Text:      msg.Text,
		}, true
	}

	return Update{}, false
}

// Bot atende os comandos e botões dos operadores
type Bot struct {
	surface     chat.Surface
	reporter    reporting.Reporter
	adminChatID int64
	ttl         time.Duration
	now         func() time.Time

	mu        sync.Mutex
	operators map[int64]struct{}
	fetchedAt time.Time

	wg sync.WaitGroup
}

func New(cfg *config.Config, surface chat.Surface, reporter reporting.Reporter) *Bot {
	return &Bot{
		surface:     surface,
		reporter:    reporter,
		adminChatID: cfg.Telegram.AdminChatID,
		ttl:         defaultOperatorsTTL,
		now:         time.Now,
	}
}

// Listen consome as atualizações até o contexto ser cancelado.
// Comandos rodam em goroutines próprias para que os botões continuem respondendo durante uma coleta.
func (b *Bot) Listen(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}

			u, ok := FromTelegram(upd)
			if !ok {
				continue
			}

			if u.IsCallback() {
				b.Handle(ctx, u)
				continue
			}

			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.Handle(ctx, u)
			}()
		}
	}
}

func (b *Bot) Handle(ctx context.Context, u Update) {
	ctx, _ = log.WithCorrelationID(ctx)

	if u.IsCallback() {
		b.handleCallback(ctx, u)
		return
	}
	b.handleMessage(ctx, u)
}

func (b *Bot) handleMessage(ctx context.Context, u Update) {
	command, args := parseCommand(u.Text)
	if command == "" {
		return
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id": u.UserID,
		"command": command,
	})

	if u.ChatID != u.UserID {
		b.reply(ctx, u.ChatID, msgPrivateOnly)
		return
	}

	if !b.isOperator(ctx, u.UserID) {
		logger.Warn("Comando recusado: usuário não é administrador do grupo")
		b.reply(ctx, u.ChatID, msgForbidden)
		return
	}

	logger.Info("Comando recebido")

	switch command {
	case "start", "help":
		b.reply(ctx, u.ChatID, helpText)
	case "report":
		raw := ""
		if len(args) > 0 {
			raw = args[0]
		}
		date, err := utils.ParseDate(raw, wbdomain.Moscow)
		if err != nil {
			b.reply(ctx, u.ChatID, msgInvalidDate)
			return
		}
		b.runReport(ctx, u, domain.ModeFunnel, *date)
	case "summary":
		b.runReport(ctx, u, domain.ModeSummary, time.Time{})
	case "export":
		b.export(ctx, u)
	default:
		b.reply(ctx, u.ChatID, msgUnknownCommand)
	}
}

// parseCommand separa "/cmd@bot arg1 arg2" em "cmd" e argumentos
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}

	command := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}

	return strings.ToLower(command), fields[1:]
}

// runReport envia a mensagem de progresso, edita a cada loja e troca pelo resumo no final
func (b *Bot) runReport(ctx context.Context, u Update, mode domain.RunMode, date time.Time) {
	logger := log.ForContext(ctx).WithFields(log.Fields{"user_id": u.UserID, "mode": mode})

	messageID, err := b.surface.SendText(ctx, u.ChatID, msgCollecting, nil)
	if err != nil {
		logger.WithError(err).Warn("Erro ao enviar mensagem de progresso")
	}

	progress := fanout.NewProgressChannel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range progress {
			if messageID == 0 {
				continue
			}
			text := fmt.Sprintf("⏳ Processando loja %d/%d: <b>%s</b>", ev.Index, ev.Total, html.EscapeString(ev.TenantName))
			if err := b.surface.EditText(ctx, u.ChatID, messageID, text, nil); err != nil {
				logger.WithError(err).Debug("Erro ao atualizar progresso")
			}
		}
	}()

	_, err = b.reporter.Run(ctx, reporting.RunRequest{
		Namespace: domain.NamespaceManual,
		UserID:    u.UserID,
		Mode:      mode,
		Date:      date,
		Progress:  progress,
	})
	close(progress)
	<-done

	var render domain.Render
	switch {
	case errors.Is(err, reporting.ErrNoTenants):
		render = domain.Render{Text: msgNoTenants}
	case errors.Is(err, reporting.ErrRunInProgress):
		render = domain.Render{Text: msgRunInProgress}
	case err != nil:
		logger.WithError(err).Error("Erro ao executar relatório")
		render = domain.Render{Text: msgRunFailed}
	default:
		render, err = b.reporter.Render(domain.NamespaceManual, u.UserID)
		if err != nil {
			logger.WithError(err).Error("Relatório recém gerado não encontrado")
			render = domain.Render{Text: msgRunFailed}
		}
	}

	b.show(ctx, u.ChatID, messageID, render)
}

// show edita a mensagem de progresso ou, se ela não existir, envia uma nova
func (b *Bot) show(ctx context.Context, chatID int64, messageID int, render domain.Render) {
	if messageID != 0 {
		if err := b.surface.EditText(ctx, chatID, messageID, render.Text, render.Keyboard); err == nil {
			return
		}
	}

	if _, err := b.surface.SendText(ctx, chatID, render.Text, render.Keyboard); err != nil {
		log.ForContext(ctx).WithError(err).WithField("chat_id", chatID).Error("Erro ao enviar relatório")
	}
}

func (b *Bot) export(ctx context.Context, u Update) {
	logger := log.ForContext(ctx).WithField("user_id", u.UserID)

	result, err := b.reporter.Result(domain.NamespaceManual, u.UserID)
	if err != nil {
		b.reply(ctx, u.ChatID, msgNoReport)
		return
	}

	data, err := ExportCSV(result)
	if err != nil {
		logger.WithError(err).Error("Erro ao montar CSV do relatório")
		b.reply(ctx, u.ChatID, msgExportFailed)
		return
	}

	fileName := fmt.Sprintf("relatorio_%s_%s.csv", strings.ReplaceAll(result.Date, ".", "-"), result.ID)
	caption := fmt.Sprintf("Relatório de %s (%s)", result.Date, result.Weekday)
	if err := b.surface.SendDocument(ctx, u.ChatID, fileName, data, caption); err != nil {
		logger.WithError(err).Error("Erro ao enviar CSV do relatório")
		b.reply(ctx, u.ChatID, msgExportFailed)
	}
}

func (b *Bot) handleCallback(ctx context.Context, u Update) {
	logger := log.ForContext(ctx).WithField("user_id", u.UserID)

	if !b.isOperator(ctx, u.UserID) {
		b.answer(ctx, u.CallbackID, msgForbidden)
		return
	}

	render, err := b.reporter.Navigate(ctx, u.UserID, u.CallbackData)
	switch {
	case errors.Is(err, reporting.ErrReportExpired):
		b.answer(ctx, u.CallbackID, msgReportExpired)
		return
	case errors.Is(err, navigating.ErrInvalidEvent):
		b.answer(ctx, u.CallbackID, "")
		return
	case errors.Is(err, navigating.ErrInvalidPayload):
		b.answer(ctx, u.CallbackID, msgInvalidButton)
		return
	case err != nil:
		logger.WithError(err).Error("Erro ao navegar no relatório")
		b.answer(ctx, u.CallbackID, msgNavigationError)
		return
	}

	if err := b.surface.EditText(ctx, u.ChatID, u.MessageID, render.Text, render.Keyboard); err != nil {
		logger.WithError(err).Warn("Erro ao editar mensagem do relatório")
	}
	b.answer(ctx, u.CallbackID, "")
}

// isOperator consulta os administradores do grupo com cache; em falha usa a última lista conhecida
func (b *Bot) isOperator(ctx context.Context, userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.operators == nil || b.now().Sub(b.fetchedAt) > b.ttl {
		ids, err := chat.DiscoverOperators(ctx, b.surface, b.adminChatID)
		if err != nil {
			log.ForContext(ctx).WithError(err).Error("Erro ao buscar administradores do grupo")
		} else {
			b.operators = make(map[int64]struct{}, len(ids))
			for _, id := range ids {
				b.operators[id] = struct{}{}
			}
			b.fetchedAt = b.now()
		}
	}

	_, ok := b.operators[userID]
	return ok
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.surface.SendText(ctx, chatID, text, nil); err != nil {
		log.ForContext(ctx).WithError(err).WithField("chat_id", chatID).Error("Erro ao responder mensagem")
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, text string) {
	if err := b.surface.AnswerCallback(ctx, callbackID, text); err != nil {
		log.ForContext(ctx).WithError(err).Debug("Erro ao responder callback")
	}
}
