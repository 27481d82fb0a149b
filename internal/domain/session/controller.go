package session

import (
	"sync"
	"time"

	"microquiz/internal/domain/quiz"
)

// DefaultFeedbackDelay é o tempo que o feedback fica visível antes do avanço automático.
const DefaultFeedbackDelay = 2 * time.Second

// Timer é um avanço agendado que pode ser cancelado.
type Timer interface {
	Stop() bool
}

// Scheduler agenda o avanço automático. *time.Timer satisfaz Timer.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Listener recebe um Snapshot após cada transição aplicada.
// Não deve chamar métodos do Controller.
type Listener func(Snapshot)

// Controller é dono de uma tentativa de quiz: aplica as intenções do usuário
// sobre o State e agenda o avanço automático após o feedback.
type Controller struct {
	ID   string
	Quiz *quiz.Quiz

	delay     time.Duration
	scheduler Scheduler
	listener  Listener

	mu       sync.Mutex
	notifyMu sync.Mutex
	state    State
	attempt  uint64 // Incrementado a cada restart
	ticket   uint64 // Identifica o avanço agendado vigente
	pending  Timer
}

type Option func(*Controller)

// WithFeedbackDelay altera o atraso do avanço automático. Zero desliga o
// agendamento e o avanço passa a depender de Advance.
func WithFeedbackDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// NewController valida o quiz e cria a sessão em Answering(0).
func NewController(id string, q *quiz.Quiz, opts ...Option) (*Controller, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		ID:        id,
		Quiz:      q,
		delay:     DefaultFeedbackDelay,
		scheduler: realScheduler{},
		state:     NewState(q.Len()),
		attempt:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// --- Intenções (State Machine) ---

// SelectOption marca a alternativa index. Ignorada durante o feedback,
// após a conclusão ou com índice inválido.
func (c *Controller) SelectOption(index int) bool {
	return c.apply(func(s State) (State, bool) {
		return s.SelectOption(c.Quiz, index)
	}, nil)
}

// SubmitAnswer registra a seleção atual e agenda o avanço automático.
// Sem seleção, ou fora de Answering, não faz nada.
func (c *Controller) SubmitAnswer() bool {
	return c.apply(func(s State) (State, bool) {
		return s.Submit(c.Quiz)
	}, c.schedule)
}

// Advance sai do feedback imediatamente, cancelando o avanço agendado.
func (c *Controller) Advance() bool {
	return c.apply(func(s State) (State, bool) {
		return s.Advance(c.Quiz)
	}, c.cancelPending)
}

// Restart descarta a tentativa atual e volta para Answering(0) com o mesmo quiz.
// Um avanço agendado da tentativa anterior nunca altera a nova.
func (c *Controller) Restart() {
	c.apply(func(State) (State, bool) {
		return NewState(c.Quiz.Len()), true
	}, func() {
		c.cancelPending()
		c.attempt++
	})
}

// Close cancela qualquer avanço pendente. Usado ao encerrar a sessão.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPending()
}

// Notify reenvia o estado atual ao listener, na mesma fila das transições.
// Usado quando um novo observador precisa do estado vigente.
func (c *Controller) Notify() {
	c.mu.Lock()
	c.notify(c.snapshot())
}

// Snapshot retorna uma cópia consistente do estado atual.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// --- Internos ---

// apply é o único ponto de escrita do State. O listener recebe os snapshots
// na mesma ordem em que as transições foram aplicadas.
func (c *Controller) apply(transition func(State) (State, bool), after func()) bool {
	c.mu.Lock()
	next, ok := transition(c.state)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.state = next
	if after != nil {
		after()
	}
	c.notify(c.snapshot())
	return true
}

// notify deve ser chamado com mu travado; libera mu antes de chamar o listener.
func (c *Controller) notify(snap Snapshot) {
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	if c.listener != nil {
		c.listener(snap)
	}
}

// schedule deve ser chamado com mu travado.
func (c *Controller) schedule() {
	c.cancelPending()
	if c.delay <= 0 {
		return
	}
	ticket := c.ticket
	c.pending = c.scheduler.AfterFunc(c.delay, func() {
		c.autoAdvance(ticket)
	})
}

// cancelPending invalida o ticket atual; deve ser chamado com mu travado.
func (c *Controller) cancelPending() {
	c.ticket++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// autoAdvance é o callback do timer. Um ticket antigo (restart, avanço manual
// ou nova submissão no meio do caminho) é ignorado.
func (c *Controller) autoAdvance(ticket uint64) {
	c.apply(func(s State) (State, bool) {
		if ticket != c.ticket {
			return s, false
		}
		return s.Advance(c.Quiz)
	}, func() {
		c.pending = nil
		c.ticket++
	})
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		SessionID: c.ID,
		Quiz:      c.Quiz,
		Attempt:   c.attempt,
		State:     c.state.clone(),
	}
}
