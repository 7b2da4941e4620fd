package words

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultListIsUsable(t *testing.T) {
	list, err := Default()
	require.NoError(t, err)
	require.GreaterOrEqual(t, list.Len(), 366)
	for day := 0; day < list.Len(); day++ {
		w, err := list.WordForDay(day)
		require.NoError(t, err)
		require.Len(t, w, 5, "day %d", day)
		require.Equal(t, strings.ToLower(w), w)
	}
}

func TestWordForDayIsDeterministic(t *testing.T) {
	list := New([]string{"alpha", "bravo", "charl"})
	first, err := list.WordForDay(1)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := list.WordForDay(1)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Equal(t, "bravo", first)
}

func TestWordForDayOutOfRange(t *testing.T) {
	list := New([]string{"alpha", "bravo"})
	for _, day := range []int{-1, 2, 400} {
		_, err := list.WordForDay(day)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNoPuzzle))
	}
}

func TestParseNormalisesAndFilters(t *testing.T) {
	input := "# comment\n\nHello\n  World \nco-op\nnaïve\n"
	list, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, list.Len())
	w, err := list.WordForDay(0)
	require.NoError(t, err)
	require.Equal(t, "hello", w)
	require.True(t, list.Contains("WORLD"))
	require.True(t, list.Contains("naïve"))
	require.False(t, list.Contains("co-op"))
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing\n\n"))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\nslate\n"), 0o644))
	list, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestFilterLetters(t *testing.T) {
	keep := FilterLetters()
	require.True(t, keep("hello"))
	for _, word := range []string{"", "don’t", "co-op", "abc1"} {
		require.False(t, keep(word), word)
	}
}
