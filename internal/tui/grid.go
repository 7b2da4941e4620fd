package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuidle/internal/game"
	"github.com/verte-zerg/tuidle/internal/model"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

var spaceCell = styledCell{s: " ", width: 1, isSpace: true}

func feedbackStyle(fb model.Feedback) lipgloss.Style {
	switch fb {
	case model.FeedbackExact:
		return exactStyle
	case model.FeedbackPresent:
		return presentStyle
	case model.FeedbackAbsent:
		return absentStyle
	default:
		return pendingStyle
	}
}

func cellLabel(r rune) string {
	if r == 0 {
		return "   "
	}
	return " " + string(unicode.ToUpper(r)) + " "
}

func buildRowCells(g *game.Game, row int) []styledCell {
	curRow, curCol := g.Cursor()
	playing := g.State() == model.StatePlaying
	out := make([]styledCell, 0, g.Width())
	for col := 0; col < g.Width(); col++ {
		r := g.Letter(row, col)
		style := feedbackStyle(g.Feedback(row, col))
		label := cellLabel(r)
		if r == 0 {
			style = emptyStyle
		}
		if playing && row == curRow && col == curCol {
			style = cursorStyle
			label = " _ "
		}
		out = append(out, styledCell{
			s:     style.Render(label),
			width: runewidth.StringWidth(label),
		})
	}
	return out
}

func buildKeyboardCells(row string, keys map[rune]model.Feedback) []styledCell {
	out := make([]styledCell, 0, 2*len(row))
	for i, r := range row {
		if i > 0 {
			out = append(out, spaceCell)
		}
		style := keyStyle
		if fb, ok := keys[r]; ok {
			style = feedbackStyle(fb)
		}
		label := cellLabel(r)
		out = append(out, styledCell{
			s:     style.Render(label),
			width: runewidth.StringWidth(label),
		})
	}
	return out
}

func renderGrid(g *game.Game) string {
	lines := make([]string, 0, model.Tries)
	for row := 0; row < model.Tries; row++ {
		cells := buildRowCells(g, row)
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c.s
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n\n")
}

func renderKeyboard(g *game.Game, width int) string {
	keys := g.Keyboard()
	lines := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		lines = append(lines, wrapCells(buildKeyboardCells(row, keys), width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapCells breaks a row of cells at spaces so no line exceeds width.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func lineWidthOf(line []styledCell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
