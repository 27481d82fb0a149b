package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"microquiz/internal/domain/catalog"
	"microquiz/internal/domain/quiz"
)

// SQLiteCatalogRepository implementa ports.CatalogRepository sobre SQLite.
type SQLiteCatalogRepository struct {
	db *sql.DB
}

func NewSQLiteCatalogRepository(db *sql.DB) *SQLiteCatalogRepository {
	return &SQLiteCatalogRepository{db: db}
}

// ------ CATEGORY METHODS ------

func (r *SQLiteCatalogRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	query := `
		SELECT c.id, c.name, c.description, c.icon, COUNT(q.id) AS quiz_count
		FROM categories c
		LEFT JOIN quizzes q ON q.category_id = c.id
		GROUP BY c.id
		ORDER BY c.sort_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []catalog.Category{}
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.QuizCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteCatalogRepository) ListQuizzesByCategory(ctx context.Context, categoryID string) ([]catalog.QuizSummary, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)", categoryID,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, catalog.ErrCategoryNotFound
	}

	query := `
		SELECT id, title, description, question_count, difficulty
		FROM quizzes
		WHERE category_id = ?
		ORDER BY sort_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []catalog.QuizSummary{}
	for rows.Next() {
		var s catalog.QuizSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.QuestionCount, &s.Difficulty); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ------ QUIZ METHODS ------

// FindQuizByID carrega o quiz com as perguntas em ordem de posição.
// Um quiz listado na categoria mas sem perguntas cadastradas é tratado como não encontrado.
func (r *SQLiteCatalogRepository) FindQuizByID(ctx context.Context, id string) (*quiz.Quiz, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, category_id, title, description FROM quizzes WHERE id = ?", id)

	var q quiz.Quiz
	if err := row.Scan(&q.ID, &q.CategoryID, &q.Title, &q.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quiz.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := r.findQuestions(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, quiz.ErrQuizNotFound
	}
	q.Questions = questions

	return &q, nil
}

func (r *SQLiteCatalogRepository) findQuestions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	query := `
		SELECT id, prompt, options, correct_index
		FROM questions
		WHERE quiz_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var q quiz.Question
		var options string
		if err := rows.Scan(&q.ID, &q.Prompt, &options, &q.CorrectIndex); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("alternativas inválidas na pergunta %s/%s: %w", quizID, q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
