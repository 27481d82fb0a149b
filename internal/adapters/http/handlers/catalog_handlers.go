package handlers

import (
	"net/http"

	"microquiz/internal/application/usecases"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUC *usecases.CatalogUseCases
}

func NewCatalogHandler(catalogUC *usecases.CatalogUseCases) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// ListCategories godoc
// @Summary Lista as categorias
// @Tags Catalog
// @Produce json
// @Success 200 {array} catalog.Category
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUC.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListQuizzes godoc
// @Summary Lista os quizzes de uma categoria
// @Tags Catalog
// @Produce json
// @Param category path string true "ID da categoria"
// @Success 200 {array} catalog.QuizSummary
// @Failure 404 {object} map[string]string "Categoria não encontrada"
// @Router /api/quizzes/{category} [get]
func (h *CatalogHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.catalogUC.ListQuizzes(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Detalha um quiz
// @Description Retorna o quiz com perguntas e respostas corretas.
// @Tags Catalog
// @Produce json
// @Param id path string true "ID do Quiz"
// @Success 200 {object} quiz.Quiz
// @Failure 404 {object} map[string]string "Quiz não encontrado"
// @Router /api/quiz/{id} [get]
func (h *CatalogHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.catalogUC.GetQuiz(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
