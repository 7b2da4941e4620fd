// Package game implements the guess grid and the win/loss state machine.
package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/tuidle/internal/model"
)

// ErrMalformedRecord is returned when a stored record does not fit the secret word.
var ErrMalformedRecord = errors.New("malformed game record")

// Game is one day's grid, cursor and state.
type Game struct {
	secret []rune
	rows   [][]rune
	row    int
	col    int
	state  model.GameState
}

// New returns an empty game for secret.
func New(secret string) *Game {
	s := []rune(strings.ToLower(secret))
	rows := make([][]rune, model.Tries)
	for i := range rows {
		rows[i] = make([]rune, len(s))
	}
	return &Game{secret: s, rows: rows, state: model.StatePlaying}
}

// Restore rebuilds a game from a persisted record.
func Restore(secret string, rec model.GameRecord) (*Game, error) {
	g := New(secret)
	width := len(g.secret)
	if len(rec.Rows) != model.Tries {
		return nil, fmt.Errorf("%w: %d rows", ErrMalformedRecord, len(rec.Rows))
	}
	if rec.CurRow < 0 || rec.CurRow > model.Tries || rec.CurCol < 0 || rec.CurCol > width {
		return nil, fmt.Errorf("%w: cursor (%d,%d)", ErrMalformedRecord, rec.CurRow, rec.CurCol)
	}
	if rec.CurRow == model.Tries && rec.CurCol != 0 {
		return nil, fmt.Errorf("%w: cursor (%d,%d)", ErrMalformedRecord, rec.CurRow, rec.CurCol)
	}
	if !rec.GameState.Valid() {
		return nil, fmt.Errorf("%w: state %q", ErrMalformedRecord, rec.GameState)
	}
	for i, row := range rec.Rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformedRecord, i, len(row))
		}
		for j, cell := range row {
			if cell == "" {
				if i < rec.CurRow {
					return nil, fmt.Errorf("%w: committed row %d has a gap", ErrMalformedRecord, i)
				}
				continue
			}
			r, size := utf8.DecodeRuneInString(cell)
			if size != len(cell) || !unicode.IsLetter(r) {
				return nil, fmt.Errorf("%w: cell (%d,%d) = %q", ErrMalformedRecord, i, j, cell)
			}
			if i > rec.CurRow || (i == rec.CurRow && j >= rec.CurCol) {
				return nil, fmt.Errorf("%w: letter beyond cursor at (%d,%d)", ErrMalformedRecord, i, j)
			}
			g.rows[i][j] = unicode.ToLower(r)
		}
	}
	g.row = rec.CurRow
	g.col = rec.CurCol
	for row := 0; row < g.row-1; row++ {
		if g.rowMatches(row) {
			return nil, fmt.Errorf("%w: play continued after a win on row %d", ErrMalformedRecord, row)
		}
	}
	g.evaluate()
	if g.state != rec.GameState {
		return nil, fmt.Errorf("%w: state %q does not match rows (%q)", ErrMalformedRecord, rec.GameState, g.state)
	}
	if g.state.Terminal() && g.col != 0 {
		return nil, fmt.Errorf("%w: letters typed after the game ended", ErrMalformedRecord)
	}
	return g, nil
}

// Record snapshots the game for persistence.
func (g *Game) Record() model.GameRecord {
	rows := make([][]string, len(g.rows))
	for i, row := range g.rows {
		cells := make([]string, len(row))
		for j, r := range row {
			if r != 0 {
				cells[j] = string(r)
			}
		}
		rows[i] = cells
	}
	return model.GameRecord{Rows: rows, CurRow: g.row, CurCol: g.col, GameState: g.state}
}

// Secret returns the secret word.
func (g *Game) Secret() string {
	return string(g.secret)
}

// Width returns the word length L.
func (g *Game) Width() int {
	return len(g.secret)
}

// State returns the current game state.
func (g *Game) State() model.GameState {
	return g.state
}

// Cursor returns the active row and column.
func (g *Game) Cursor() (row, col int) {
	return g.row, g.col
}

// Letter returns the letter at (row, col), or 0 when empty.
func (g *Game) Letter(row, col int) rune {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.secret) {
		return 0
	}
	return g.rows[row][col]
}

// RowFull reports whether the active row has every cell filled.
func (g *Game) RowFull() bool {
	return g.row < model.Tries && g.col == len(g.secret)
}

// CurrentGuess returns the letters typed on the active row.
func (g *Game) CurrentGuess() string {
	if g.row >= model.Tries {
		return ""
	}
	return string(g.rows[g.row][:g.col])
}

// GuessCount returns the number of committed rows.
func (g *Game) GuessCount() int {
	return g.row
}

// TypeLetter writes key at the cursor. It reports whether the grid changed.
func (g *Game) TypeLetter(key rune) bool {
	if g.state != model.StatePlaying || g.row >= model.Tries {
		return false
	}
	if !unicode.IsLetter(key) || g.col >= len(g.secret) {
		return false
	}
	g.rows[g.row][g.col] = unicode.ToLower(key)
	g.col++
	return true
}

// ClearLetter removes the letter left of the cursor. It reports whether the grid changed.
func (g *Game) ClearLetter() bool {
	if g.state != model.StatePlaying || g.col == 0 {
		return false
	}
	g.col--
	g.rows[g.row][g.col] = 0
	return true
}

// CommitRow submits a full row and evaluates the state transition.
// Incomplete rows are ignored. It reports whether a row was committed.
func (g *Game) CommitRow() bool {
	if g.state != model.StatePlaying || !g.RowFull() {
		return false
	}
	g.row++
	g.col = 0
	g.evaluate()
	return true
}

func (g *Game) evaluate() {
	if g.row == 0 {
		return
	}
	switch {
	case g.rowMatches(g.row-1):
		g.state = model.StateWon
	case g.row == model.Tries:
		g.state = model.StateLost
	}
}

func (g *Game) rowMatches(row int) bool {
	for i, want := range g.secret {
		if unicode.ToLower(g.rows[row][i]) != want {
			return false
		}
	}
	return true
}
