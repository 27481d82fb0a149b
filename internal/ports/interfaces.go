package ports

import (
	"context"
	"time"

	"microquiz/internal/domain/catalog"
	"microquiz/internal/domain/quiz"
	"microquiz/internal/domain/session"
)

// CatalogRepository é o provedor de dados: categorias, listagens e quizzes completos.
type CatalogRepository interface {
	// ListCategories retorna todas as categorias em ordem de exibição.
	ListCategories(ctx context.Context) ([]catalog.Category, error)

	// ListQuizzesByCategory retorna catalog.ErrCategoryNotFound se a categoria não existir.
	ListQuizzesByCategory(ctx context.Context, categoryID string) ([]catalog.QuizSummary, error)

	// FindQuizByID retorna quiz.ErrQuizNotFound se o quiz não existir.
	FindQuizByID(ctx context.Context, id string) (*quiz.Quiz, error)
}

// SessionRepository define persistência em memória para sessões em andamento.
type SessionRepository interface {
	// Save guarda a sessão até expiresAt (normalmente a expiração do token).
	Save(s *session.Controller, expiresAt time.Time) error
	FindByID(id string) (*session.Controller, error)
	Delete(id string) error
	// DeleteExpired remove e devolve as sessões com expiresAt <= now.
	DeleteExpired(now time.Time) []*session.Controller
}

// RealTimeHub define contrato para envio de mensagens via WebSocket.
type RealTimeHub interface {
	BroadcastToSession(sessionID string, message interface{})
}

// ResultPublisher entrega o resultado de uma tentativa concluída para fora do serviço.
type ResultPublisher interface {
	Publish(ctx context.Context, result session.Result) error
}

// TokenService define o contrato para geração e validação de tokens de sessão.
type TokenService interface {
	// GenerateToken gera um token vinculado ao ID da sessão.
	GenerateToken(sessionID string) (string, int64, error)

	// ValidateToken valida o token e retorna o ID da sessão se válido.
	ValidateToken(tokenString string) (string, error)
}
