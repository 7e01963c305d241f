package chat

import (
	"context"

	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

const (
	StatusCreator       = "creator"
	StatusAdministrator = "administrator"
)

// Member é um participante do grupo de administração
type Member struct {
	ID        int64
	IsBot     bool
	FirstName string
	Status    string
}

// Surface é o contrato com o mensageiro; os payloads dos botões são opacos aqui
type Surface interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard domain.Keyboard) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, keyboard domain.Keyboard) error
	SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error
	ListAdmins(ctx context.Context, chatID int64) ([]Member, error)
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// DiscoverOperators devolve os administradores humanos do grupo, na ordem devolvida pelo mensageiro
func DiscoverOperators(ctx context.Context, surface Surface, chatID int64) ([]int64, error) {
	members, err := surface.ListAdmins(ctx, chatID)
	if err != nil {
		return nil, err
	}

	operators := make([]int64, 0, len(members))
	for _, m := range members {
		if m.IsBot {
			continue
		}
		if m.Status != StatusCreator && m.Status != StatusAdministrator {
			continue
		}
		operators = append(operators, m.ID)
	}

	return operators, nil
}
