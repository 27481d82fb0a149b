package quiz

import "errors"

// MinOptions é a quantidade mínima de alternativas por pergunta.
const MinOptions = 2

var (
	ErrEnunciadoObrigatorio = errors.New("o enunciado (prompt) é obrigatório")
	ErrPoucasAlternativas   = errors.New("a pergunta deve ter pelo menos 2 alternativas")
	ErrIndiceInvalido       = errors.New("o índice da resposta correta está fora das alternativas")
)

// Question representa uma pergunta de múltipla escolha.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`      // Enunciado
	Options      []string `json:"options"`       // Em ordem de exibição
	CorrectIndex int      `json:"correctAnswer"` // 0..len(Options)-1
}

// Validate verifica se a pergunta é válida.
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return ErrEnunciadoObrigatorio
	}
	if len(q.Options) < MinOptions {
		return ErrPoucasAlternativas
	}
	if !q.HasOption(q.CorrectIndex) {
		return ErrIndiceInvalido
	}
	return nil
}

// HasOption indica se index aponta para uma alternativa existente.
func (q *Question) HasOption(index int) bool {
	return index >= 0 && index < len(q.Options)
}

// IsCorrect compara uma alternativa com a resposta correta.
func (q *Question) IsCorrect(index int) bool {
	return index == q.CorrectIndex
}
