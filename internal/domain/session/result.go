package session

import "time"

// Result é o resultado final de uma tentativa concluída, entregue para fora do núcleo.
type Result struct {
	SessionID   string    `json:"sessionId"`
	Attempt     uint64    `json:"attempt"`
	QuizID      string    `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	Message     string    `json:"message"`
	Answers     []int     `json:"answers"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewResult monta o Result de um snapshot em COMPLETED.
func NewResult(s Snapshot, completedAt time.Time) Result {
	answers := make([]int, len(s.State.Answers))
	copy(answers, s.State.Answers)

	return Result{
		SessionID:   s.SessionID,
		Attempt:     s.Attempt,
		QuizID:      s.Quiz.ID,
		QuizTitle:   s.Quiz.Title,
		Score:       s.State.Score,
		Total:       s.Quiz.Len(),
		Percentage:  s.Percentage(),
		Message:     s.Message(),
		Answers:     answers,
		CompletedAt: completedAt,
	}
}
