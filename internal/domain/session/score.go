package session

import "math"

type scoreBand struct {
	threshold int
	message   string
}

// Faixas avaliadas da maior para a menor; o limite inferior é inclusivo.
var scoreBands = []scoreBand{
	{threshold: 90, message: "Excellent! You're a master!"},
	{threshold: 80, message: "Great job! You really know your stuff!"},
	{threshold: 70, message: "Good work! You have solid knowledge."},
	{threshold: 60, message: "Not bad! Keep learning and improving."},
	{threshold: 0, message: "Keep studying! Practice makes perfect."},
}

// Percentage retorna round(100 * score / total).
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// ScoreMessage escolhe a mensagem da faixa em que percentage cai.
func ScoreMessage(percentage int) string {
	for _, band := range scoreBands {
		if percentage >= band.threshold {
			return band.message
		}
	}
	return scoreBands[len(scoreBands)-1].message
}
