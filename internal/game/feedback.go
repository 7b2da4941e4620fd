package game

import (
	"unicode"

	"github.com/verte-zerg/tuidle/internal/model"
)

// Feedback classifies the cell at (row, col). Uncommitted rows are empty.
func (g *Game) Feedback(row, col int) model.Feedback {
	if row < 0 || row >= g.row || col < 0 || col >= len(g.secret) {
		return model.FeedbackEmpty
	}
	return classify(g.secret, col, g.rows[row][col])
}

// RowFeedback classifies every cell of a row.
func (g *Game) RowFeedback(row int) []model.Feedback {
	out := make([]model.Feedback, len(g.secret))
	for col := range out {
		out[col] = g.Feedback(row, col)
	}
	return out
}

// Keyboard returns the best classification seen for each committed letter.
func (g *Game) Keyboard() map[rune]model.Feedback {
	keys := map[rune]model.Feedback{}
	for row := 0; row < g.row; row++ {
		for col, r := range g.rows[row] {
			if r == 0 {
				continue
			}
			fb := classify(g.secret, col, r)
			if fb.Rank() > keys[r].Rank() {
				keys[r] = fb
			}
		}
	}
	return keys
}

func classify(secret []rune, col int, letter rune) model.Feedback {
	if letter == 0 {
		return model.FeedbackEmpty
	}
	letter = unicode.ToLower(letter)
	if secret[col] == letter {
		return model.FeedbackExact
	}
	for _, r := range secret {
		if r == letter {
			return model.FeedbackPresent
		}
	}
	return model.FeedbackAbsent
}
