package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microquiz/internal/domain/session"
	"microquiz/internal/infra/logger"
	"microquiz/internal/ports"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("sessão não encontrada")
	ErrSessionForbidden = errors.New("o token não pertence a esta sessão")
	ErrInvalidToken     = errors.New("token de sessão inválido ou expirado")
)

// Tipos de evento enviados pelo hub.
const EventSessionState = "session_state"

type SessionUseCases struct {
	sessionRepo   ports.SessionRepository
	catalogRepo   ports.CatalogRepository
	hub           ports.RealTimeHub
	publisher     ports.ResultPublisher
	tokenService  ports.TokenService
	feedbackDelay time.Duration
	scheduler     session.Scheduler
	now           func() time.Time
}

type SessionOption func(*SessionUseCases)

// WithClock troca o relógio usado para expirar sessões.
func WithClock(now func() time.Time) SessionOption {
	return func(uc *SessionUseCases) { uc.now = now }
}

// WithScheduler troca o agendador do avanço automático das novas sessões.
func WithScheduler(s session.Scheduler) SessionOption {
	return func(uc *SessionUseCases) { uc.scheduler = s }
}

func NewSessionUseCases(
	sessionRepo ports.SessionRepository,
	catalogRepo ports.CatalogRepository,
	hub ports.RealTimeHub,
	publisher ports.ResultPublisher,
	tokenService ports.TokenService,
	feedbackDelay time.Duration,
	opts ...SessionOption,
) *SessionUseCases {
	uc := &SessionUseCases{
		sessionRepo:   sessionRepo,
		catalogRepo:   catalogRepo,
		hub:           hub,
		publisher:     publisher,
		tokenService:  tokenService,
		feedbackDelay: feedbackDelay,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type StartOutput struct {
	Session   session.StateDTO `json:"session"`
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"` // Segundos
}

// Start inicia uma tentativa para o quiz. Quiz inexistente ou malformado impede o início.
func (uc *SessionUseCases) Start(ctx context.Context, quizID string) (*StartOutput, error) {
	q, err := uc.catalogRepo.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithFeedbackDelay(uc.feedbackDelay),
		session.WithListener(uc.onTransition),
	}
	if uc.scheduler != nil {
		opts = append(opts, session.WithScheduler(uc.scheduler))
	}

	s, err := session.NewController(uuid.NewString(), q, opts...)
	if err != nil {
		logger.Error("Quiz malformado, sessão não iniciada", "quiz", quizID, "erro", err)
		return nil, err
	}

	token, expiresIn, err := uc.tokenService.GenerateToken(s.ID)
	if err != nil {
		return nil, err
	}

	// A sessão vive enquanto o token dela for válido
	expiresAt := uc.now().Add(time.Duration(expiresIn) * time.Second)
	if err := uc.sessionRepo.Save(s, expiresAt); err != nil {
		return nil, err
	}

	logger.Info("Sessão iniciada", "sessao", s.ID, "quiz", q.ID)
	return &StartOutput{
		Session:   s.Snapshot().DTO(),
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

// Authorize confere se o token pertence à sessão.
func (uc *SessionUseCases) Authorize(token, sessionID string) error {
	owner, err := uc.tokenService.ValidateToken(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if owner != sessionID {
		return ErrSessionForbidden
	}
	return nil
}

// Get retorna o estado atual da sessão.
func (uc *SessionUseCases) Get(sessionID string) (session.StateDTO, error) {
	s, err := uc.find(sessionID)
	if err != nil {
		return session.StateDTO{}, err
	}
	return s.Snapshot().DTO(), nil
}

// SelectOption encaminha a seleção. Intenções fora de hora são ignoradas.
func (uc *SessionUseCases) SelectOption(sessionID string, index int) (session.StateDTO, error) {
	return uc.intent(sessionID, "select_option", func(s *session.Controller) bool {
		return s.SelectOption(index)
	})
}

func (uc *SessionUseCases) SubmitAnswer(sessionID string) (session.StateDTO, error) {
	return uc.intent(sessionID, "submit_answer", (*session.Controller).SubmitAnswer)
}

func (uc *SessionUseCases) Advance(sessionID string) (session.StateDTO, error) {
	return uc.intent(sessionID, "advance", (*session.Controller).Advance)
}

func (uc *SessionUseCases) Restart(sessionID string) (session.StateDTO, error) {
	return uc.intent(sessionID, "restart", func(s *session.Controller) bool {
		s.Restart()
		return true
	})
}

// End remove a sessão e cancela o avanço pendente.
func (uc *SessionUseCases) End(sessionID string) error {
	s, err := uc.find(sessionID)
	if err != nil {
		return err
	}
	s.Close()
	logger.Info("Sessão encerrada", "sessao", sessionID)
	return uc.sessionRepo.Delete(sessionID)
}

// Refresh reenvia o estado atual para o hub, depois de qualquer transição já aplicada.
func (uc *SessionUseCases) Refresh(sessionID string) error {
	s, err := uc.find(sessionID)
	if err != nil {
		return err
	}
	s.Notify()
	return nil
}

// EvictExpired encerra as sessões cujo token já expirou e devolve quantas foram removidas.
func (uc *SessionUseCases) EvictExpired() int {
	expired := uc.sessionRepo.DeleteExpired(uc.now())
	for _, s := range expired {
		s.Close()
		logger.Info("Sessão expirada removida", "sessao", s.ID)
	}
	return len(expired)
}

// RunJanitor remove sessões expiradas a cada interval até ctx ser cancelado.
func (uc *SessionUseCases) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.EvictExpired()
		}
	}
}

// --- Internos ---

func (uc *SessionUseCases) find(sessionID string) (*session.Controller, error) {
	s, err := uc.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (uc *SessionUseCases) intent(sessionID, name string, apply func(*session.Controller) bool) (session.StateDTO, error) {
	s, err := uc.find(sessionID)
	if err != nil {
		return session.StateDTO{}, err
	}
	if !apply(s) {
		logger.Debug("Intenção ignorada", "sessao", sessionID, "intencao", name, "status", s.Snapshot().Phase())
	}
	return s.Snapshot().DTO(), nil
}

// onTransition é o listener de todas as sessões: empurra o estado para o hub
// e publica o resultado quando a tentativa chega em COMPLETED.
func (uc *SessionUseCases) onTransition(snap session.Snapshot) {
	uc.hub.BroadcastToSession(snap.SessionID, map[string]interface{}{
		"type":    EventSessionState,
		"payload": snap.DTO(),
	})

	if snap.Phase() != session.PhaseCompleted {
		return
	}

	result := session.NewResult(snap, time.Now())
	// Publica em background
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(ctx, result); err != nil {
			logger.Error("Falha ao publicar resultado", "sessao", result.SessionID, "erro", err)
		}
	}()
}
