package messaging

import (
	"context"

	"microquiz/internal/domain/session"
	"microquiz/internal/infra/logger"
)

// LogResultPublisher apenas registra o resultado. Usado quando não há broker configurado.
type LogResultPublisher struct{}

func NewLogResultPublisher() *LogResultPublisher {
	return &LogResultPublisher{}
}

func (p *LogResultPublisher) Publish(ctx context.Context, result session.Result) error {
	logger.Info("Tentativa concluída",
		"sessao", result.SessionID,
		"tentativa", result.Attempt,
		"quiz", result.QuizID,
		"acertos", result.Score,
		"total", result.Total,
		"percentual", result.Percentage,
	)
	return nil
}
