package session

import "microquiz/internal/domain/quiz"

// Fases da sessão (State Machine)
type Phase string

const (
	PhaseAnswering Phase = "ANSWERING"
	PhaseFeedback  Phase = "FEEDBACK"
	PhaseCompleted Phase = "COMPLETED"
)

// NoAnswer marca uma seleção vazia ou uma pergunta ainda não respondida.
const NoAnswer = -1

// State é o progresso de uma tentativa. Cada transição devolve um novo State;
// o valor anterior nunca é alterado.
type State struct {
	CurrentIndex    int
	SelectedOption  int
	Answers         []int // Um slot por pergunta, NoAnswer até a submissão
	Score           int
	FeedbackVisible bool
	Completed       bool
}

// NewState cria o estado inicial Answering(0) para um quiz com total perguntas.
func NewState(total int) State {
	answers := make([]int, total)
	for i := range answers {
		answers[i] = NoAnswer
	}
	return State{
		CurrentIndex:   0,
		SelectedOption: NoAnswer,
		Answers:        answers,
	}
}

// Phase deriva a fase atual. Exatamente uma fase vale por vez.
func (s State) Phase() Phase {
	switch {
	case s.Completed:
		return PhaseCompleted
	case s.FeedbackVisible:
		return PhaseFeedback
	default:
		return PhaseAnswering
	}
}

func (s State) clone() State {
	answers := make([]int, len(s.Answers))
	copy(answers, s.Answers)
	s.Answers = answers
	return s
}

// SelectOption marca uma alternativa da pergunta atual. Só vale em Answering
// e com índice válido; caso contrário devolve o estado intacto e false.
func (s State) SelectOption(q *quiz.Quiz, index int) (State, bool) {
	if s.Phase() != PhaseAnswering {
		return s, false
	}
	question := &q.Questions[s.CurrentIndex]
	if !question.HasOption(index) {
		return s, false
	}

	next := s.clone()
	next.SelectedOption = index
	return next, true
}

// Submit registra a alternativa selecionada e abre o feedback.
func (s State) Submit(q *quiz.Quiz) (State, bool) {
	if s.Phase() != PhaseAnswering || s.SelectedOption == NoAnswer {
		return s, false
	}
	// Resposta já registrada para esta pergunta
	if s.Answers[s.CurrentIndex] != NoAnswer {
		return s, false
	}

	next := s.clone()
	next.Answers[next.CurrentIndex] = next.SelectedOption
	if q.Questions[next.CurrentIndex].IsCorrect(next.SelectedOption) {
		next.Score++
	}
	next.FeedbackVisible = true
	return next, true
}

// Advance sai do feedback para a próxima pergunta ou para Completed.
func (s State) Advance(q *quiz.Quiz) (State, bool) {
	if s.Phase() != PhaseFeedback {
		return s, false
	}

	next := s.clone()
	next.FeedbackVisible = false
	if next.CurrentIndex >= q.Len()-1 {
		next.Completed = true
		return next, true
	}

	next.CurrentIndex++
	next.SelectedOption = NoAnswer
	return next, true
}

// IsCorrect indica se a resposta registrada para a pergunta i está correta.
// ok é false enquanto o slot não foi preenchido.
func (s State) IsCorrect(q *quiz.Quiz, i int) (correct bool, ok bool) {
	if i < 0 || i >= len(s.Answers) || s.Answers[i] == NoAnswer {
		return false, false
	}
	return q.Questions[i].IsCorrect(s.Answers[i]), true
}

// Progress é (CurrentIndex+1)/total, sempre em (0, 1].
func (s State) Progress(total int) float64 {
	return float64(s.CurrentIndex+1) / float64(total)
}
