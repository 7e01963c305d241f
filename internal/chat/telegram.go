package chat

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
	"github.com/vfg2006/seller-analytics-bot/pkg/log"
	"golang.org/x/time/rate"
)

// Telegram implementa Surface sobre a Bot API com envio limitado por taxa
type Telegram struct {
	bot     *tgbotapi.BotAPI
	limiter *rate.Limiter
}

func NewTelegram(cfg *config.Config) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar na API do Telegram")
	}

	log.L.WithField("bot", bot.Self.UserName).Info("Bot do Telegram autenticado")

	return NewTelegramWithBot(bot, cfg.Telegram.SendRate), nil
}

func NewTelegramWithBot(bot *tgbotapi.BotAPI, sendRate float64) *Telegram {
	if sendRate <= 0 {
		sendRate = 25
	}
	return &Telegram{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(sendRate), 1),
	}
}

// Bot expõe o cliente para o laço de atualizações
func (t *Telegram) Bot() *tgbotapi.BotAPI {
	return t.bot
}

func markup(keyboard domain.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if keyboard.IsEmpty() {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		if len(row) == 0 {
			continue
		}
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload))
		}
		rows = append(rows, buttons)
	}

	m := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &m
}

func (t *Telegram) SendText(ctx context.Context, chatID int64, text string, keyboard domain.Keyboard) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if m := markup(keyboard); m != nil {
		msg.ReplyMarkup = *m
	}

	sent, err := t.bot.Send(msg)
	if err != nil {
		return 0, errors.Wrapf(err, "erro ao enviar mensagem para %d", chatID)
	}

	return sent.MessageID, nil
}

func (t *Telegram) EditText(ctx context.Context, chatID int64, messageID int, text string, keyboard domain.Keyboard) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	edit.ReplyMarkup = markup(keyboard)

	if _, err := t.bot.Request(edit); err != nil {
		// o mensageiro recusa edição idêntica à mensagem atual
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return errors.Wrapf(err, "erro ao editar mensagem %d", messageID)
	}

	return nil
}

func (t *Telegram) SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = caption
	doc.ParseMode = tgbotapi.ModeHTML

	if _, err := t.bot.Send(doc); err != nil {
		return errors.Wrapf(err, "erro ao enviar documento para %d", chatID)
	}

	return nil
}

func (t *Telegram) ListAdmins(ctx context.Context, chatID int64) ([]Member, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	admins, err := t.bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar administradores do grupo %d", chatID)
	}

	members := make([]Member, 0, len(admins))
	for _, a := range admins {
		if a.User == nil {
			continue
		}
		members = append(members, Member{
			ID:        a.User.ID,
			IsBot:     a.User.IsBot,
			FirstName: a.User.FirstName,
			Status:    a.Status,
		})
	}

	return members, nil
}

func (t *Telegram) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := t.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return errors.Wrap(err, "erro ao responder callback")
	}

	return nil
}
