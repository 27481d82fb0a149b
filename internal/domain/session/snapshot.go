package session

import "microquiz/internal/domain/quiz"

// Snapshot é uma visão somente-leitura de uma sessão em um instante.
type Snapshot struct {
	SessionID string
	Quiz      *quiz.Quiz
	Attempt   uint64
	State     State
}

func (s Snapshot) Phase() Phase {
	return s.State.Phase()
}

func (s Snapshot) Progress() float64 {
	return s.State.Progress(s.Quiz.Len())
}

func (s Snapshot) IsCorrect(i int) (bool, bool) {
	return s.State.IsCorrect(s.Quiz, i)
}

func (s Snapshot) Percentage() int {
	return Percentage(s.State.Score, s.Quiz.Len())
}

func (s Snapshot) Message() string {
	return ScoreMessage(s.Percentage())
}

// QuestionDTO é a pergunta atual como o cliente a vê.
type QuestionDTO struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctAnswer,omitempty"` // Só enviado após a submissão
}

// StateDTO é o estado enviado para a camada de apresentação.
type StateDTO struct {
	SessionID            string       `json:"sessionId"`
	QuizID               string       `json:"quizId"`
	QuizTitle            string       `json:"quizTitle"`
	QuizDescription      string       `json:"quizDescription"`
	Attempt              uint64       `json:"attempt"`
	Status               Phase        `json:"status"`
	CurrentQuestionIndex int          `json:"currentQuestionIndex"`
	TotalQuestions       int          `json:"totalQuestions"`
	Progress             float64      `json:"progress"`
	CurrentQuestion      *QuestionDTO `json:"currentQuestion,omitempty"`
	SelectedOption       *int         `json:"selectedOption"`
	Answers              []*int       `json:"answers"`
	Score                int          `json:"score"`
	LastAnswerCorrect    *bool        `json:"lastAnswerCorrect,omitempty"` // Só em FEEDBACK
	Percentage           *int         `json:"percentage,omitempty"`        // Só em COMPLETED
	Message              string       `json:"message,omitempty"`
}

// DTO monta o StateDTO. A resposta correta fica oculta enquanto a pergunta está aberta.
func (s Snapshot) DTO() StateDTO {
	st := s.State
	dto := StateDTO{
		SessionID:            s.SessionID,
		QuizID:               s.Quiz.ID,
		QuizTitle:            s.Quiz.Title,
		QuizDescription:      s.Quiz.Description,
		Attempt:              s.Attempt,
		Status:               st.Phase(),
		CurrentQuestionIndex: st.CurrentIndex,
		TotalQuestions:       s.Quiz.Len(),
		Progress:             s.Progress(),
		SelectedOption:       optional(st.SelectedOption),
		Answers:              make([]*int, len(st.Answers)),
		Score:                st.Score,
	}
	for i, a := range st.Answers {
		dto.Answers[i] = optional(a)
	}

	switch dto.Status {
	case PhaseAnswering:
		dto.CurrentQuestion = questionDTO(s.Quiz.Questions[st.CurrentIndex], false)
	case PhaseFeedback:
		dto.CurrentQuestion = questionDTO(s.Quiz.Questions[st.CurrentIndex], true)
		if correct, ok := s.IsCorrect(st.CurrentIndex); ok {
			dto.LastAnswerCorrect = &correct
		}
	case PhaseCompleted:
		pct := s.Percentage()
		dto.Percentage = &pct
		dto.Message = ScoreMessage(pct)
	}
	return dto
}

func questionDTO(q quiz.Question, reveal bool) *QuestionDTO {
	dto := &QuestionDTO{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Options: q.Options,
	}
	if reveal {
		correct := q.CorrectIndex
		dto.CorrectIndex = &correct
	}
	return dto
}

func optional(v int) *int {
	if v == NoAnswer {
		return nil
	}
	return &v
}
