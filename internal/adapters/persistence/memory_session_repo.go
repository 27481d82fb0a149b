package persistence

import (
	"errors"
	"sync"
	"time"

	"microquiz/internal/domain/session"
	"microquiz/internal/ports"
)

type sessionEntry struct {
	controller *session.Controller
	expiresAt  time.Time
}

// InMemorySessionRepository implementa SessionRepository usando memória RAM.
type InMemorySessionRepository struct {
	sessions sync.Map // Map[string]sessionEntry
}

func NewInMemorySessionRepository() ports.SessionRepository {
	return &InMemorySessionRepository{}
}

func (r *InMemorySessionRepository) Save(s *session.Controller, expiresAt time.Time) error {
	r.sessions.Store(s.ID, sessionEntry{controller: s, expiresAt: expiresAt})
	return nil
}

func (r *InMemorySessionRepository) FindByID(id string) (*session.Controller, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, nil // Não encontrado (sem erro)
	}

	entry, ok := val.(sessionEntry)
	if !ok {
		return nil, errors.New("erro de tipo no repositório de sessões")
	}
	return entry.controller, nil
}

func (r *InMemorySessionRepository) Delete(id string) error {
	r.sessions.Delete(id)
	return nil
}

func (r *InMemorySessionRepository) DeleteExpired(now time.Time) []*session.Controller {
	var expired []*session.Controller
	r.sessions.Range(func(key, val interface{}) bool {
		entry, ok := val.(sessionEntry)
		if !ok || entry.expiresAt.After(now) {
			return true
		}
		// LoadAndDelete evita devolver duas vezes a mesma sessão
		if _, loaded := r.sessions.LoadAndDelete(key); loaded {
			expired = append(expired, entry.controller)
		}
		return true
	})
	return expired
}
