package navigating

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

var ErrInvalidPayload = errors.New("payload de navegação inválido")

// Action é o evento de navegação carregado no botão
type Action string

const (
	ActionOpenSummary   Action = "sum"
	ActionToProducts    Action = "prod"
	ActionPageNext      Action = "pn"
	ActionPagePrev      Action = "pp"
	ActionStoreNext     Action = "sn"
	ActionStorePrev     Action = "sp"
	ActionBackToSummary Action = "back"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionOpenSummary, ActionToProducts, ActionPageNext, ActionPagePrev,
		ActionStoreNext, ActionStorePrev, ActionBackToSummary:
		return true
	}
	return false
}

type Event struct {
	Action Action
	// Arg só é usado por ActionOpenSummary (índice da loja)
	Arg int
}

// Payload é o conteúdo do callback: "<ns>|<runID>|<action>|<arg>"
type Payload struct {
	Namespace domain.Namespace
	RunID     string
	Event     Event
}

func (p Payload) Encode() string {
	return fmt.Sprintf("%s|%s|%s|%d", p.Namespace, p.RunID, p.Event.Action, p.Event.Arg)
}

func ParsePayload(raw string) (Payload, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 4 {
		return Payload{}, ErrInvalidPayload
	}

	ns := domain.Namespace(parts[0])
	action := Action(parts[2])
	if !ns.IsValid() || parts[1] == "" || !action.IsValid() {
		return Payload{}, ErrInvalidPayload
	}

	arg, err := strconv.Atoi(parts[3])
	if err != nil {
		return Payload{}, ErrInvalidPayload
	}

	return Payload{
		Namespace: ns,
		RunID:     parts[1],
		Event:     Event{Action: action, Arg: arg},
	}, nil
}
