package cache

import (
	"sync"

	"github.com/vfg2006/seller-analytics-bot/internal/domain"
)

// Entry é o último resultado de um operador e a posição atual da navegação.
// O resultado não é alterado depois de salvo; leitores recebem uma cópia da entrada.
type Entry struct {
	Result *domain.FanoutResult
	Cursor domain.Cursor
}

type key struct {
	ns     domain.Namespace
	userID int64
}

// ReportStore guarda resultados em memória por (namespace, operador); reiniciar o processo descarta tudo
type ReportStore interface {
	Save(ns domain.Namespace, userID int64, result *domain.FanoutResult)
	Get(ns domain.Namespace, userID int64) (Entry, bool)
	SetCursor(ns domain.Namespace, userID int64, runID string, cursor domain.Cursor) bool
	Delete(ns domain.Namespace, userID int64)
	Len() int
}

type MemoryReportStore struct {
	mu      sync.RWMutex
	entries map[key]Entry
}

func NewReportStore() *MemoryReportStore {
	return &MemoryReportStore{entries: make(map[key]Entry)}
}

// Save substitui o resultado anterior e reinicia o cursor
func (s *MemoryReportStore) Save(ns domain.Namespace, userID int64, result *domain.FanoutResult) {
	if result == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key{ns, userID}] = Entry{Result: result, Cursor: domain.InitialCursor()}
}

func (s *MemoryReportStore) Get(ns domain.Namespace, userID int64) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key{ns, userID}]
	return entry, ok
}

// SetCursor só grava se o resultado ainda for o mesmo da navegação; um resultado mais novo vence
func (s *MemoryReportStore) SetCursor(ns domain.Namespace, userID int64, runID string, cursor domain.Cursor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{ns, userID}
	entry, ok := s.entries[k]
	if !ok || entry.Result.ID != runID {
		return false
	}

	entry.Cursor = cursor
	s.entries[k] = entry
	return true
}

func (s *MemoryReportStore) Delete(ns domain.Namespace, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key{ns, userID})
}

func (s *MemoryReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
