package handlers

import (
	"encoding/json"
	"net/http"

	"microquiz/internal/adapters/http/middlewares"
	"microquiz/internal/application/usecases"
	"microquiz/internal/domain/session"

	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionUC *usecases.SessionUseCases
	validate  *validator.Validate
}

func NewSessionHandler(sessionUC *usecases.SessionUseCases) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC, validate: validator.New()}
}

type StartSessionInput struct {
	QuizID string `json:"quizId" validate:"required"`
}

type SelectOptionInput struct {
	Index *int `json:"index" validate:"required"`
}

// StartSession godoc
// @Summary Inicia uma tentativa de quiz
// @Description Cria a sessão e devolve o token que autoriza as próximas chamadas.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param body body StartSessionInput true "Quiz escolhido"
// @Success 201 {object} usecases.StartOutput
// @Failure 400 {object} map[string]string "JSON inválido"
// @Failure 404 {object} map[string]string "Quiz não encontrado"
// @Failure 422 {object} map[string]string "Quiz malformado"
// @Router /api/sessions [post]
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var input StartSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, "quizId é obrigatório")
		return
	}

	out, err := h.sessionUC.Start(r.Context(), input.QuizID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// GetSession godoc
// @Summary Estado atual da sessão
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} session.StateDTO
// @Failure 404 {object} map[string]string "Sessão não encontrada"
// @Router /api/sessions/{id} [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.sessionUC.Get)
}

// SelectOption godoc
// @Summary Seleciona uma alternativa
// @Description Ignorada fora da fase ANSWERING ou com índice fora do intervalo.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Param body body SelectOptionInput true "Índice da alternativa"
// @Success 200 {object} session.StateDTO
// @Router /api/sessions/{id}/select [post]
func (h *SessionHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	var input SelectOptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if err := h.validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, "index é obrigatório")
		return
	}

	h.respond(w, r, func(id string) (session.StateDTO, error) {
		return h.sessionUC.SelectOption(id, *input.Index)
	})
}

// SubmitAnswer godoc
// @Summary Confirma a resposta selecionada
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} session.StateDTO
// @Router /api/sessions/{id}/submit [post]
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.sessionUC.SubmitAnswer)
}

// Advance godoc
// @Summary Avança para a próxima pergunta
// @Description Só tem efeito durante o feedback; antecipa o avanço automático.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} session.StateDTO
// @Router /api/sessions/{id}/advance [post]
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.sessionUC.Advance)
}

// Restart godoc
// @Summary Reinicia a tentativa
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 200 {object} session.StateDTO
// @Router /api/sessions/{id}/restart [post]
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.sessionUC.Restart)
}

// EndSession godoc
// @Summary Encerra a sessão
// @Tags Sessions
// @Security BearerAuth
// @Param id path string true "ID da sessão"
// @Success 204
// @Router /api/sessions/{id} [delete]
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Context().Value(middlewares.SessionIDKey).(string)
	if err := h.sessionUC.End(sessionID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, fn func(string) (session.StateDTO, error)) {
	sessionID := r.Context().Value(middlewares.SessionIDKey).(string)
	state, err := fn(sessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
