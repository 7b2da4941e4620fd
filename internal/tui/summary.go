package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/game"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/stats"
)

const distributionWidth = 24

func summaryTitle(g *game.Game) string {
	if g.State() == model.StateWon {
		return titleStyle.Render("Congrats!")
	}
	word := strings.ToUpper(g.Secret())
	return titleStyle.Render("Try again tomorrow") + "\n" + labelStyle.Render("The word was ") + exactStyle.Render(" "+word+" ")
}

func renderCards(s model.Summary) string {
	cards := []struct {
		label string
		value int
	}{
		{"Played", s.Played},
		{"Win %", s.WinRate},
		{"Cur Streak", s.CurrentStreak},
		{"Max Streak", s.MaxStreak},
	}
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Center,
			valueStyle.Render(strconv.Itoa(c.value)),
			labelStyle.Render(c.label),
		)
		out = append(out, cardStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// renderDistribution draws one bar per guess count. highlight is the
// 1-based bucket of today's win, or 0 for none.
func renderDistribution(s model.Summary, highlight int) string {
	bars := stats.BarLengths(s.Distribution, distributionWidth)
	lines := make([]string, 0, model.Tries+1)
	lines = append(lines, labelStyle.Render("Guess distribution"))
	for i, count := range s.Distribution {
		style := barStyle
		if i+1 == highlight {
			style = barHighlightStyle
		}
		label := strconv.Itoa(count)
		width := bars[i]
		if width < len(label)+2 {
			width = len(label) + 2
		}
		bar := style.Render(strings.Repeat(" ", width-len(label)-1) + label + " ")
		lines = append(lines, fmt.Sprintf("%d %s", i+1, bar))
	}
	return strings.Join(lines, "\n")
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func renderSummary(g *game.Game, s model.Summary, now time.Time) string {
	highlight := 0
	if g.State() == model.StateWon {
		highlight = g.GuessCount()
	}
	next := formatCountdown(calendar.NextRollover(now).Sub(now))
	sections := []string{
		summaryTitle(g),
		renderCards(s),
		renderDistribution(s, highlight),
		labelStyle.Render("Next puzzle in ") + valueStyle.Render(next),
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}
