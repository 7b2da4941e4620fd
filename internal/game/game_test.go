package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/model"
)

func typeWord(g *Game, word string) {
	for _, r := range word {
		g.TypeLetter(r)
	}
}

func guess(g *Game, word string) {
	typeWord(g, word)
	g.CommitRow()
}

func TestNewGameIsEmpty(t *testing.T) {
	g := New("Crane")
	require.Equal(t, "crane", g.Secret())
	require.Equal(t, 5, g.Width())
	require.Equal(t, model.StatePlaying, g.State())
	row, col := g.Cursor()
	require.Zero(t, row)
	require.Zero(t, col)
	rec := g.Record()
	require.Len(t, rec.Rows, model.Tries)
	for _, r := range rec.Rows {
		require.Equal(t, []string{"", "", "", "", ""}, r)
	}
}

func TestTypeLetterAdvancesAndStopsAtRowEnd(t *testing.T) {
	g := New("crane")
	typeWord(g, "abcde")
	_, col := g.Cursor()
	require.Equal(t, 5, col)
	require.False(t, g.TypeLetter('f'))
	require.Equal(t, "abcde", g.CurrentGuess())
	require.True(t, g.RowFull())
}

func TestTypeLetterIgnoresNonLetters(t *testing.T) {
	g := New("crane")
	require.False(t, g.TypeLetter('1'))
	require.False(t, g.TypeLetter(' '))
	_, col := g.Cursor()
	require.Zero(t, col)
}

func TestTypeThenClearRestoresGrid(t *testing.T) {
	g := New("crane")
	typeWord(g, "ab")
	before := g.Record()
	require.True(t, g.TypeLetter('x'))
	require.True(t, g.ClearLetter())
	require.Equal(t, before, g.Record())
}

func TestClearAtColumnZeroIsNoop(t *testing.T) {
	g := New("crane")
	before := g.Record()
	require.False(t, g.ClearLetter())
	require.Equal(t, before, g.Record())
}

func TestTypeAtFullRowThenClearOnlyRemovesLast(t *testing.T) {
	g := New("crane")
	typeWord(g, "abcde")
	require.False(t, g.TypeLetter('z'))
	require.True(t, g.ClearLetter())
	require.Equal(t, "abcd", g.CurrentGuess())
}

func TestCommitIncompleteRowIsNoop(t *testing.T) {
	g := New("crane")
	typeWord(g, "abc")
	before := g.Record()
	require.False(t, g.CommitRow())
	require.Equal(t, before, g.Record())
}

func TestCommitAdvancesRowAndResetsColumn(t *testing.T) {
	g := New("crane")
	guess(g, "slate")
	row, col := g.Cursor()
	require.Equal(t, 1, row)
	require.Zero(t, col)
	require.Equal(t, model.StatePlaying, g.State())
	require.Equal(t, 1, g.GuessCount())
}

func TestWinIsCaseInsensitive(t *testing.T) {
	g := New("crane")
	guess(g, "CRANE")
	require.Equal(t, model.StateWon, g.State())
}

func TestSingleMismatchNeverWins(t *testing.T) {
	g := New("crane")
	guess(g, "crank")
	require.Equal(t, model.StatePlaying, g.State())
	guess(g, "brane")
	require.Equal(t, model.StatePlaying, g.State())
}

func TestLossAfterAllTries(t *testing.T) {
	g := New("crane")
	for i := 0; i < model.Tries; i++ {
		require.Equal(t, model.StatePlaying, g.State())
		guess(g, "slate")
	}
	require.Equal(t, model.StateLost, g.State())
	row, _ := g.Cursor()
	require.Equal(t, model.Tries, row)
}

func TestWinningFinalRowIsWonNotLost(t *testing.T) {
	g := New("crane")
	for i := 0; i < model.Tries-1; i++ {
		guess(g, "slate")
	}
	guess(g, "crane")
	require.Equal(t, model.StateWon, g.State())
}

func TestTerminalStateIgnoresInput(t *testing.T) {
	g := New("crane")
	guess(g, "crane")
	before := g.Record()
	require.False(t, g.TypeLetter('a'))
	require.False(t, g.ClearLetter())
	require.False(t, g.CommitRow())
	require.Equal(t, before, g.Record())
}

func TestRestoreRoundTrip(t *testing.T) {
	g := New("crane")
	guess(g, "slate")
	typeWord(g, "cr")
	rec := g.Record()

	restored, err := Restore("crane", rec)
	require.NoError(t, err)
	require.Equal(t, rec, restored.Record())
	row, col := restored.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
}

func TestRestoreRejectsMalformedRecords(t *testing.T) {
	valid := New("crane").Record()

	cases := map[string]func(*model.GameRecord){
		"too few rows":  func(r *model.GameRecord) { r.Rows = r.Rows[:3] },
		"short row":     func(r *model.GameRecord) { r.Rows[2] = []string{"a"} },
		"cursor row":    func(r *model.GameRecord) { r.CurRow = 7 },
		"cursor col":    func(r *model.GameRecord) { r.CurCol = -1 },
		"unknown state": func(r *model.GameRecord) { r.GameState = "paused" },
		"multi-char":    func(r *model.GameRecord) { r.Rows[0][0] = "ab"; r.CurCol = 1 },
		"digit":         func(r *model.GameRecord) { r.Rows[0][0] = "1"; r.CurCol = 1 },
		"beyond cursor": func(r *model.GameRecord) { r.Rows[3][0] = "a" },
		"gap in commit": func(r *model.GameRecord) { r.CurRow = 1 },
		"done with col": func(r *model.GameRecord) { r.CurRow = model.Tries; r.CurCol = 2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := cloneRecord(valid)
			mutate(&rec)
			_, err := Restore("crane", rec)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformedRecord))
		})
	}
}

func recordWithRows(state model.GameState, curCol int, rows ...string) model.GameRecord {
	rec := New("crane").Record()
	for i, word := range rows {
		for j, r := range word {
			rec.Rows[i][j] = string(r)
		}
	}
	rec.CurRow = len(rows)
	rec.CurCol = curCol
	rec.GameState = state
	return rec
}

func TestRestoreRejectsInconsistentState(t *testing.T) {
	full := []string{"slate", "slate", "slate", "slate", "slate", "slate"}
	cases := []struct {
		name string
		rec  model.GameRecord
	}{
		{"full grid still playing", recordWithRows(model.StatePlaying, 0, full...)},
		{"winning row still playing", recordWithRows(model.StatePlaying, 0, "crane")},
		{"won without a match", recordWithRows(model.StateWon, 0, "slate")},
		{"lost before the last row", recordWithRows(model.StateLost, 0, "slate", "slate")},
		{"play after a win", recordWithRows(model.StatePlaying, 0, "crane", "slate")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Restore("crane", tc.rec)
			require.ErrorIs(t, err, ErrMalformedRecord)
		})
	}

	afterWin := recordWithRows(model.StateWon, 1, "crane")
	afterWin.Rows[1][0] = "s"
	_, err := Restore("crane", afterWin)
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestRestoreFinishedGames(t *testing.T) {
	won, err := Restore("crane", recordWithRows(model.StateWon, 0, "slate", "crane"))
	require.NoError(t, err)
	require.Equal(t, model.StateWon, won.State())
	require.Equal(t, 2, won.GuessCount())

	lost, err := Restore("crane", recordWithRows(model.StateLost, 0, "slate", "slate", "slate", "slate", "slate", "slate"))
	require.NoError(t, err)
	require.Equal(t, model.StateLost, lost.State())
	require.False(t, lost.TypeLetter('a'))
}

func cloneRecord(rec model.GameRecord) model.GameRecord {
	rows := make([][]string, len(rec.Rows))
	for i, row := range rec.Rows {
		rows[i] = append([]string(nil), row...)
	}
	rec.Rows = rows
	return rec
}
