package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeScheduler guarda os callbacks agendados para dispará-los manualmente.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[len(s.timers)-1]
}

// fire executa o callback mesmo que o timer tenha sido parado, simulando
// um disparo que já estava em andamento.
func (t *fakeTimer) fire() { t.fn() }

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeScheduler, *[]Snapshot) {
	t.Helper()
	sched := &fakeScheduler{}
	var seen []Snapshot
	opts = append([]Option{
		WithScheduler(sched),
		WithListener(func(s Snapshot) { seen = append(seen, s) }),
	}, opts...)

	c, err := NewController("sess-1", twoQuestions(), opts...)
	require.NoError(t, err)
	return c, sched, &seen
}

func TestNewControllerRejectsMalformedQuiz(t *testing.T) {
	q := twoQuestions()
	q.Questions[0].CorrectIndex = 7

	c, err := NewController("x", q)
	require.Error(t, err)
	require.Nil(t, c)
}

func TestAutoAdvanceAfterSubmit(t *testing.T) {
	c, sched, seen := newTestController(t)

	require.True(t, c.SelectOption(1))
	require.True(t, c.SubmitAnswer())
	require.Equal(t, PhaseFeedback, c.Snapshot().Phase())

	timer := sched.last()
	require.Equal(t, DefaultFeedbackDelay, timer.delay)

	timer.fire()
	snap := c.Snapshot()
	require.Equal(t, PhaseAnswering, snap.Phase())
	require.Equal(t, 1, snap.State.CurrentIndex)
	require.Equal(t, NoAnswer, snap.State.SelectedOption)

	// select, submit, auto-advance
	require.Len(t, *seen, 3)
	require.Equal(t, PhaseAnswering, (*seen)[2].Phase())
}

func TestAutoAdvanceCompletesLastQuestion(t *testing.T) {
	c, sched, seen := newTestController(t)

	c.SelectOption(1)
	c.SubmitAnswer()
	sched.last().fire()
	c.SelectOption(0)
	c.SubmitAnswer()
	sched.last().fire()

	snap := c.Snapshot()
	require.Equal(t, PhaseCompleted, snap.Phase())
	require.Equal(t, 1, snap.State.Score)
	require.Equal(t, 50, snap.Percentage())

	last := (*seen)[len(*seen)-1]
	require.Equal(t, PhaseCompleted, last.Phase())
}

func TestRestartDuringFeedbackIgnoresStaleTimer(t *testing.T) {
	c, sched, _ := newTestController(t)

	c.SelectOption(1)
	c.SubmitAnswer()
	stale := sched.last()

	c.Restart()
	require.True(t, stale.stopped)

	snap := c.Snapshot()
	require.Equal(t, PhaseAnswering, snap.Phase())
	require.Equal(t, 0, snap.State.CurrentIndex)
	require.Zero(t, snap.State.Score)
	require.Equal(t, uint64(2), snap.Attempt)

	// Nova tentativa entra em feedback antes do callback antigo disparar.
	c.SelectOption(2)
	c.SubmitAnswer()

	stale.fire()
	snap = c.Snapshot()
	require.Equal(t, PhaseFeedback, snap.Phase(), "callback antigo não pode avançar a nova tentativa")
	require.Equal(t, 0, snap.State.CurrentIndex)
	require.Equal(t, []int{2, NoAnswer}, snap.State.Answers)
}

func TestManualAdvanceCancelsPendingTimer(t *testing.T) {
	c, sched, _ := newTestController(t)

	c.SelectOption(1)
	c.SubmitAnswer()
	first := sched.last()

	require.True(t, c.Advance())
	require.True(t, first.stopped)

	c.SelectOption(2)
	c.SubmitAnswer()
	first.fire()

	snap := c.Snapshot()
	require.Equal(t, PhaseFeedback, snap.Phase())
	require.Equal(t, 1, snap.State.CurrentIndex)
}

func TestIgnoredIntentsDoNotNotify(t *testing.T) {
	c, _, seen := newTestController(t)

	require.False(t, c.SubmitAnswer())
	require.False(t, c.Advance())
	require.False(t, c.SelectOption(9))
	require.Empty(t, *seen)

	c.SelectOption(0)
	c.SubmitAnswer()
	require.False(t, c.SelectOption(1))
	require.False(t, c.SubmitAnswer())
	require.Len(t, *seen, 2)
	require.Equal(t, []int{0, NoAnswer}, c.Snapshot().State.Answers)
}

func TestNotifyResendsCurrentState(t *testing.T) {
	c, _, seen := newTestController(t)
	c.SelectOption(1)

	c.Notify()
	require.Len(t, *seen, 2)
	require.Equal(t, (*seen)[0].State, (*seen)[1].State)
	require.Equal(t, 1, (*seen)[1].State.SelectedOption)
}

func TestRestartFromAnyPhase(t *testing.T) {
	c, sched, _ := newTestController(t)

	c.Restart()
	require.Equal(t, PhaseAnswering, c.Snapshot().Phase())

	c.SelectOption(1)
	c.SubmitAnswer()
	sched.last().fire()
	c.SelectOption(2)
	c.SubmitAnswer()
	sched.last().fire()
	require.Equal(t, PhaseCompleted, c.Snapshot().Phase())

	c.Restart()
	snap := c.Snapshot()
	require.Equal(t, PhaseAnswering, snap.Phase())
	require.Equal(t, []int{NoAnswer, NoAnswer}, snap.State.Answers)
	require.Zero(t, snap.State.Score)
	require.False(t, snap.State.Completed)
}

func TestZeroDelayDisablesAutoAdvance(t *testing.T) {
	c, sched, _ := newTestController(t, WithFeedbackDelay(0))

	c.SelectOption(1)
	c.SubmitAnswer()
	require.Empty(t, sched.timers)
	require.Equal(t, PhaseFeedback, c.Snapshot().Phase())

	require.True(t, c.Advance())
	require.Equal(t, 1, c.Snapshot().State.CurrentIndex)
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _, _ := newTestController(t)
	snap := c.Snapshot()
	snap.State.Answers[0] = 2

	require.Equal(t, NoAnswer, c.Snapshot().State.Answers[0])
}

func TestRealTimerAutoAdvance(t *testing.T) {
	done := make(chan Snapshot, 4)
	c, err := NewController("real", singleQuestion(),
		WithFeedbackDelay(20*time.Millisecond),
		WithListener(func(s Snapshot) { done <- s }),
	)
	require.NoError(t, err)

	c.SelectOption(0)
	c.SubmitAnswer()
	<-done
	<-done

	select {
	case snap := <-done:
		require.Equal(t, PhaseCompleted, snap.Phase())
		require.Equal(t, 100, snap.Percentage())
	case <-time.After(2 * time.Second):
		t.Fatal("avanço automático não aconteceu")
	}
}

func TestDTOHidesCorrectAnswerWhileAnswering(t *testing.T) {
	c, sched, _ := newTestController(t)

	dto := c.Snapshot().DTO()
	require.Equal(t, PhaseAnswering, dto.Status)
	require.NotNil(t, dto.CurrentQuestion)
	require.Nil(t, dto.CurrentQuestion.CorrectIndex)
	require.Nil(t, dto.SelectedOption)
	require.Equal(t, 0.5, dto.Progress)

	c.SelectOption(0)
	c.SubmitAnswer()
	dto = c.Snapshot().DTO()
	require.Equal(t, PhaseFeedback, dto.Status)
	require.Equal(t, 1, *dto.CurrentQuestion.CorrectIndex)
	require.NotNil(t, dto.LastAnswerCorrect)
	require.False(t, *dto.LastAnswerCorrect)
	require.Equal(t, 0, *dto.Answers[0])
	require.Nil(t, dto.Answers[1])

	sched.last().fire()
	c.SelectOption(2)
	c.SubmitAnswer()
	sched.last().fire()

	dto = c.Snapshot().DTO()
	require.Equal(t, PhaseCompleted, dto.Status)
	require.Nil(t, dto.CurrentQuestion)
	require.Equal(t, 50, *dto.Percentage)
	require.Equal(t, ScoreMessage(50), dto.Message)
	require.Equal(t, 1.0, dto.Progress)
}

func TestNewResult(t *testing.T) {
	c, _, _ := newTestController(t, WithFeedbackDelay(0))
	c.SelectOption(1)
	c.SubmitAnswer()
	c.Advance()
	c.SelectOption(2)
	c.SubmitAnswer()
	c.Advance()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewResult(c.Snapshot(), at)
	require.Equal(t, "sess-1", r.SessionID)
	require.Equal(t, "q2", r.QuizID)
	require.Equal(t, 2, r.Score)
	require.Equal(t, 2, r.Total)
	require.Equal(t, 100, r.Percentage)
	require.Equal(t, []int{1, 2}, r.Answers)
	require.Equal(t, at, r.CompletedAt)
}
