package session

import (
	"testing"

	"microquiz/internal/domain/quiz"

	"github.com/stretchr/testify/require"
)

// twoQuestions: respostas corretas nos índices 1 e 2.
func twoQuestions() *quiz.Quiz {
	return &quiz.Quiz{
		ID:    "q2",
		Title: "Two",
		Questions: []quiz.Question{
			{ID: "1", Prompt: "first", Options: []string{"a", "b", "c"}, CorrectIndex: 1},
			{ID: "2", Prompt: "second", Options: []string{"a", "b", "c"}, CorrectIndex: 2},
		},
	}
}

func singleQuestion() *quiz.Quiz {
	return &quiz.Quiz{
		ID:    "q1",
		Title: "One",
		Questions: []quiz.Question{
			{ID: "1", Prompt: "only", Options: []string{"yes", "no"}, CorrectIndex: 0},
		},
	}
}

// mustApply exige que a transição tenha sido aplicada: mustApply(t)(s.Submit(q)).
func mustApply(t *testing.T) func(State, bool) State {
	return func(s State, ok bool) State {
		t.Helper()
		require.True(t, ok)
		return s
	}
}

func TestNewState(t *testing.T) {
	s := NewState(3)
	require.Equal(t, PhaseAnswering, s.Phase())
	require.Equal(t, 0, s.CurrentIndex)
	require.Equal(t, NoAnswer, s.SelectedOption)
	require.Equal(t, []int{NoAnswer, NoAnswer, NoAnswer}, s.Answers)
	require.Zero(t, s.Score)
}

func TestOneRightOneWrongScoresHalf(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())

	s = mustApply(t)(s.SelectOption(q, 1))
	s = mustApply(t)(s.Submit(q))
	require.Equal(t, PhaseFeedback, s.Phase())
	require.Equal(t, 1, s.Score)

	s = mustApply(t)(s.Advance(q))
	require.Equal(t, PhaseAnswering, s.Phase())
	require.Equal(t, 1, s.CurrentIndex)
	require.Equal(t, NoAnswer, s.SelectedOption)

	s = mustApply(t)(s.SelectOption(q, 0))
	s = mustApply(t)(s.Submit(q))
	s = mustApply(t)(s.Advance(q))

	require.Equal(t, PhaseCompleted, s.Phase())
	require.False(t, s.FeedbackVisible)
	require.Equal(t, 1, s.Score)
	require.Equal(t, []int{1, 0}, s.Answers)
	require.Equal(t, 50, Percentage(s.Score, q.Len()))
}

func TestSubmitWithoutSelectionIsIgnored(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())

	next, ok := s.Submit(q)
	require.False(t, ok)
	require.Equal(t, PhaseAnswering, next.Phase())
	require.Equal(t, 0, next.CurrentIndex)
	require.Zero(t, next.Score)
}

func TestSingleQuestionCompletesAfterOneAdvance(t *testing.T) {
	q := singleQuestion()
	s := NewState(q.Len())

	s = mustApply(t)(s.SelectOption(q, 0))
	s = mustApply(t)(s.Submit(q))
	s = mustApply(t)(s.Advance(q))

	require.True(t, s.Completed)
	require.Equal(t, 100, Percentage(s.Score, q.Len()))
}

func TestSelectOption(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())

	s = mustApply(t)(s.SelectOption(q, 0))
	s = mustApply(t)(s.SelectOption(q, 2))
	require.Equal(t, 2, s.SelectedOption, "re-seleção antes de submeter é livre")

	_, ok := s.SelectOption(q, 3)
	require.False(t, ok)
	_, ok = s.SelectOption(q, -1)
	require.False(t, ok)
}

func TestSelectDuringFeedbackIsIgnored(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())
	s = mustApply(t)(s.SelectOption(q, 0))
	s = mustApply(t)(s.Submit(q))

	next, ok := s.SelectOption(q, 1)
	require.False(t, ok)
	require.Equal(t, 0, next.SelectedOption)
	require.Equal(t, []int{0, NoAnswer}, next.Answers)
}

func TestSubmitTwiceInFeedback(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())
	s = mustApply(t)(s.SelectOption(q, 1))
	s = mustApply(t)(s.Submit(q))

	next, ok := s.Submit(q)
	require.False(t, ok)
	require.Equal(t, 1, next.Score)
	require.Equal(t, []int{1, NoAnswer}, next.Answers)
}

func TestAdvanceOnlyFromFeedback(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())

	_, ok := s.Advance(q)
	require.False(t, ok, "Answering não avança")

	s = mustApply(t)(s.SelectOption(q, 1))
	s = mustApply(t)(s.Submit(q))
	s = mustApply(t)(s.Advance(q))
	s = mustApply(t)(s.SelectOption(q, 2))
	s = mustApply(t)(s.Submit(q))
	s = mustApply(t)(s.Advance(q))

	for _, tr := range []func() (State, bool){
		func() (State, bool) { return s.Advance(q) },
		func() (State, bool) { return s.SelectOption(q, 0) },
		func() (State, bool) { return s.Submit(q) },
	} {
		next, ok := tr()
		require.False(t, ok, "Completed é terminal")
		require.Equal(t, s, next)
	}
}

func TestTransitionsDoNotMutatePreviousState(t *testing.T) {
	q := twoQuestions()
	before := NewState(q.Len())
	before, _ = before.SelectOption(q, 1)

	after, ok := before.Submit(q)
	require.True(t, ok)
	require.Equal(t, NoAnswer, before.Answers[0])
	require.Equal(t, 1, after.Answers[0])
}

func TestScoreMatchesCorrectAnswers(t *testing.T) {
	q := &quiz.Quiz{ID: "q5", Questions: []quiz.Question{
		{ID: "1", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0},
		{ID: "2", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 1},
		{ID: "3", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 1},
		{ID: "4", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0},
		{ID: "5", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0},
	}}

	picks := [][]int{
		{0, 1, 1, 0, 0},
		{1, 0, 0, 1, 1},
		{0, 0, 1, 1, 0},
	}
	for _, pick := range picks {
		s := NewState(q.Len())
		prev := 0.0
		for _, p := range pick {
			progress := s.Progress(q.Len())
			require.Greater(t, progress, prev)
			prev = progress

			s = mustApply(t)(s.SelectOption(q, p))
			s = mustApply(t)(s.Submit(q))
			require.Equal(t, progress, s.Progress(q.Len()), "feedback não altera o progresso")
			s = mustApply(t)(s.Advance(q))
		}
		require.True(t, s.Completed)
		require.Equal(t, 1.0, s.Progress(q.Len()))

		correct := 0
		for i := range pick {
			ok, filled := s.IsCorrect(q, i)
			require.True(t, filled)
			if ok {
				correct++
			}
		}
		require.Equal(t, correct, s.Score)
	}
}

func TestIsCorrectUnfilledSlot(t *testing.T) {
	q := twoQuestions()
	s := NewState(q.Len())
	_, ok := s.IsCorrect(q, 0)
	require.False(t, ok)
	_, ok = s.IsCorrect(q, 5)
	require.False(t, ok)
}
