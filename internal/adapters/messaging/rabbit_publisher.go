package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"microquiz/internal/domain/session"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitResultPublisher publica resultados de tentativas concluídas em um exchange topic.
type RabbitResultPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string

	mu sync.Mutex // Um canal AMQP não deve publicar de várias goroutines ao mesmo tempo
}

// NewRabbitResultPublisher conecta ao broker e declara o exchange de resultados.
func NewRabbitResultPublisher(url, exchange string) (*RabbitResultPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("erro ao declarar exchange %s: %w", exchange, err)
	}

	return &RabbitResultPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish envia o resultado como JSON com a routing key quiz.<quizId>.completed.
func (p *RabbitResultPublisher) Publish(ctx context.Context, result session.Result) error {
	msg, err := NewResultMessage(result)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(result.QuizID),
		false, // mandatory
		false, // immediate
		msg,
	)
}

// Close encerra canal e conexão.
func (p *RabbitResultPublisher) Close() error {
	p.channel.Close()
	return p.conn.Close()
}

// RoutingKey monta a routing key de um resultado.
func RoutingKey(quizID string) string {
	return fmt.Sprintf("quiz.%s.completed", quizID)
}

// NewResultMessage serializa o resultado em uma mensagem AMQP persistente.
func NewResultMessage(result session.Result) (amqp.Publishing, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%s:%d", result.SessionID, result.Attempt),
		Timestamp:    result.CompletedAt,
		Type:         "quiz.completed",
		Body:         body,
	}, nil
}
