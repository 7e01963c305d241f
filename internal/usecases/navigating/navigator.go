package navigating

import (
	"errors"

	"github.com/vfg2006/seller-analytics-bot/internal/config"
	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

var ErrInvalidEvent = errors.New("evento de navegação não permitido na posição atual")

const defaultPageSize = 3

// Navigator transforma (resultado, cursor, evento) no novo cursor e na visão. Não guarda estado.
type Navigator struct {
	pageSize int
}

func NewNavigator(cfg *config.Config) *Navigator {
	pageSize := cfg.View.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Navigator{pageSize: pageSize}
}

func (n *Navigator) PageSize() int {
	return n.pageSize
}

// TotalPages devolve ceil(produtos ativos / tamanho da página), no mínimo 1
func (n *Navigator) TotalPages(store *domain.Aggregate) int {
	active := len(store.ActiveProducts())
	if active == 0 {
		return 1
	}
	return (active + n.pageSize - 1) / n.pageSize
}

// Apply valida o evento contra o cursor atual; evento inválido devolve o cursor sem alteração
func (n *Navigator) Apply(result *domain.FanoutResult, cursor domain.Cursor, event Event) (domain.Cursor, error) {
	if result == nil || len(result.Stores) == 0 {
		return cursor, ErrInvalidEvent
	}

	total := len(result.Stores)
	if event.Action != ActionOpenSummary && (cursor.Store < 0 || cursor.Store >= total) {
		return cursor, ErrInvalidEvent
	}

	switch event.Action {
	case ActionOpenSummary:
		if event.Arg < 0 || event.Arg >= total {
			return cursor, ErrInvalidEvent
		}
		return domain.Cursor{Store: event.Arg, Page: 1, View: domain.ViewSummary}, nil

	case ActionToProducts:
		if !result.Stores[cursor.Store].HasActivity {
			return cursor, ErrInvalidEvent
		}
		return domain.Cursor{Store: cursor.Store, Page: 1, View: domain.ViewProducts}, nil

	case ActionPageNext, ActionPagePrev:
		if cursor.View != domain.ViewProducts {
			return cursor, ErrInvalidEvent
		}
		page := cursor.Page + 1
		if event.Action == ActionPagePrev {
			page = cursor.Page - 1
		}
		if page < 1 || page > n.TotalPages(&result.Stores[cursor.Store]) {
			return cursor, ErrInvalidEvent
		}
		return domain.Cursor{Store: cursor.Store, Page: page, View: domain.ViewProducts}, nil

	case ActionStoreNext, ActionStorePrev:
		store := cursor.Store + 1
		if event.Action == ActionStorePrev {
			store = cursor.Store - 1
		}
		if store < 0 || store >= total {
			return cursor, ErrInvalidEvent
		}
		return domain.Cursor{Store: store, Page: 1, View: domain.ViewSummary}, nil

	case ActionBackToSummary:
		if cursor.View != domain.ViewProducts {
			return cursor, ErrInvalidEvent
		}
		return domain.Cursor{Store: cursor.Store, Page: 1, View: domain.ViewSummary}, nil
	}

	return cursor, ErrInvalidEvent
}
