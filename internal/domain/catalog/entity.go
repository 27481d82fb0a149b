package catalog

import "errors"

var ErrCategoryNotFound = errors.New("categoria não encontrada")

// Category agrupa quizzes por tema.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	QuizCount   int    `json:"quizCount"`
}

// QuizSummary é a entrada de um quiz na listagem de uma categoria.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
	Difficulty    string `json:"difficulty"` // Easy | Medium | Hard
}
