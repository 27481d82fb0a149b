package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"microquiz/internal/application/usecases"
	"microquiz/internal/domain/catalog"
	"microquiz/internal/domain/quiz"
	"microquiz/internal/infra/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Erro ao serializar resposta", "erro", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError traduz erros de domínio em status HTTP.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, usecases.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case quiz.IsMalformed(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usecases.ErrSessionForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, usecases.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("Erro interno", "erro", err)
		writeError(w, http.StatusInternalServerError, "Erro interno")
	}
}
