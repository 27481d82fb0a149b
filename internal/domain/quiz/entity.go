package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrQuizNotFound     = errors.New("quiz não encontrado")
	ErrQuizSemPerguntas = errors.New("o quiz deve ter pelo menos uma pergunta")
	ErrIDDuplicado      = errors.New("existem perguntas com o mesmo id no quiz")
)

// Quiz é o registro imutável de um quiz: metadados e perguntas em ordem de apresentação.
// A ordem de Questions é significativa e nunca é embaralhada.
type Quiz struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"categoryId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Validate verifica se o quiz pode ser jogado. Um quiz inválido nunca inicia uma sessão.
func (q *Quiz) Validate() error {
	if q == nil || len(q.Questions) == 0 {
		return ErrQuizSemPerguntas
	}

	seen := make(map[string]struct{}, len(q.Questions))
	for i := range q.Questions {
		question := &q.Questions[i]
		if err := question.Validate(); err != nil {
			return fmt.Errorf("pergunta %d: %w", i+1, err)
		}
		if _, dup := seen[question.ID]; dup {
			return fmt.Errorf("pergunta %d: %w", i+1, ErrIDDuplicado)
		}
		seen[question.ID] = struct{}{}
	}
	return nil
}

// Len retorna a quantidade de perguntas.
func (q *Quiz) Len() int {
	return len(q.Questions)
}

// IsMalformed indica se o erro veio da validação do registro (e não de I/O).
func IsMalformed(err error) bool {
	return errors.Is(err, ErrQuizSemPerguntas) ||
		errors.Is(err, ErrIDDuplicado) ||
		errors.Is(err, ErrEnunciadoObrigatorio) ||
		errors.Is(err, ErrPoucasAlternativas) ||
		errors.Is(err, ErrIndiceInvalido)
}
