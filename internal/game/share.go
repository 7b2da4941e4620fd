package game

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/tuidle/internal/model"
)

var feedbackEmoji = map[model.Feedback]string{
	model.FeedbackExact:   "🟩",
	model.FeedbackPresent: "🟨",
	model.FeedbackAbsent:  "⬛",
}

// ShareGrid renders committed rows as emoji, one row per line.
func ShareGrid(g *Game) string {
	lines := make([]string, 0, g.row)
	for row := 0; row < g.row; row++ {
		var b strings.Builder
		for _, fb := range g.RowFeedback(row) {
			b.WriteString(feedbackEmoji[fb])
		}
		if b.Len() > 0 {
			lines = append(lines, b.String())
		}
	}
	return strings.Join(lines, "\n")
}

// ShareText renders the shareable result with a header line.
func ShareText(g *Game, day int) string {
	score := "X"
	if g.State() == model.StateWon {
		score = fmt.Sprintf("%d", g.GuessCount())
	}
	header := fmt.Sprintf("Tuidle %d %s/%d", day, score, model.Tries)
	grid := ShareGrid(g)
	if grid == "" {
		return header
	}
	return header + "\n\n" + grid
}
