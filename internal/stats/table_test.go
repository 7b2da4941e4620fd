package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextTableAlignsColumns(t *testing.T) {
	tbl := newTextTable(left("Day"), left("Result"), right("Guesses"))
	tbl.addRow("day-9", "won", "3")
	tbl.addRow("day-10", "lost", "6")

	require.Equal(t, []string{
		"Day    Result Guesses",
		"day-9  won          3",
		"day-10 lost         6",
	}, tbl.lines())
}

func TestTextTableUsesDisplayWidth(t *testing.T) {
	tbl := newTextTable(left("Row"), left("Grid"), right("N"))
	tbl.addRow("1", "🟩🟨", "2")
	tbl.addRow("10", "🟩", "1")

	lines := tbl.lines()
	require.Len(t, lines, 3)
	require.Equal(t, "1   🟩🟨 2", lines[1])
	require.Equal(t, "10  🟩   1", lines[2])
}

func TestTextTableWithoutHeaderTrimsTrailingBlanks(t *testing.T) {
	tbl := newTextTable(left(""), left(""))
	tbl.addRow("1", "###")
	tbl.addRow("2")

	var buf bytes.Buffer
	require.NoError(t, tbl.writeTo(&buf))
	require.Equal(t, "1 ###\n2\n", buf.String())
}

func TestTextTableDropsExtraCells(t *testing.T) {
	tbl := newTextTable(left("A"))
	tbl.addRow("x", "ignored")
	require.Equal(t, []string{"A", "x"}, tbl.lines())
}
