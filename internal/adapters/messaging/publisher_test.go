package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"microquiz/internal/domain/session"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

func sampleResult() session.Result {
	return session.Result{
		SessionID:   "sess-1",
		Attempt:     2,
		QuizID:      "math-1",
		QuizTitle:   "Basic Arithmetic",
		Score:       4,
		Total:       5,
		Percentage:  80,
		Message:     session.ScoreMessage(80),
		Answers:     []int{1, 1, 1, 0, 0},
		CompletedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestRoutingKey(t *testing.T) {
	require.Equal(t, "quiz.math-1.completed", RoutingKey("math-1"))
}

func TestNewResultMessage(t *testing.T) {
	result := sampleResult()

	msg, err := NewResultMessage(result)
	require.NoError(t, err)
	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)
	require.Equal(t, "sess-1:2", msg.MessageId)
	require.Equal(t, result.CompletedAt, msg.Timestamp)

	var decoded session.Result
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	require.Equal(t, result, decoded)
}

func TestLogResultPublisher(t *testing.T) {
	require.NoError(t, NewLogResultPublisher().Publish(context.Background(), sampleResult()))
}
