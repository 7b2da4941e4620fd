package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/store"
	"github.com/verte-zerg/tuidle/internal/words"
)

type failingBackend struct{}

func (failingBackend) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (failingBackend) SetItem(context.Context, string, string) error {
	return errors.New("disk gone")
}

var testEpoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)

func newTestSession(t *testing.T, backend store.Backend, opts Options) (*Session, *store.History) {
	t.Helper()
	cal, err := calendar.New(calendar.SchemeEpoch, testEpoch)
	require.NoError(t, err)
	history := store.NewHistory(backend, zerolog.Nop())
	list := words.New([]string{"crane", "slate", "pious"})
	s, err := New(list, cal, testEpoch.AddDate(0, 0, 1).Add(9*time.Hour), history, zerolog.Nop(), opts)
	require.NoError(t, err)
	return s, history
}

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	ctx := context.Background()
	for _, r := range word {
		require.NoError(t, s.Press(ctx, Letter(r)))
	}
	require.NoError(t, s.Press(ctx, Key{Kind: KeyEnter}))
}

func TestNewSelectsWordForDay(t *testing.T) {
	s, _ := newTestSession(t, store.NewMemory(), Options{})
	require.Equal(t, 1, s.Day())
	require.Equal(t, "slate", s.Game().Secret())
}

func TestNewNoPuzzle(t *testing.T) {
	cal, err := calendar.New(calendar.SchemeEpoch, testEpoch)
	require.NoError(t, err)
	history := store.NewHistory(store.NewMemory(), zerolog.Nop())
	_, err = New(words.New([]string{"crane"}), cal, testEpoch.AddDate(0, 0, 5), history, zerolog.Nop(), Options{})
	require.ErrorIs(t, err, words.ErrNoPuzzle)
}

func TestPressDroppedBeforeLoad(t *testing.T) {
	mem := store.NewMemory()
	s, history := newTestSession(t, mem, Options{})
	require.NoError(t, s.Press(context.Background(), Letter('s')))
	row, col := s.Game().Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
	require.Empty(t, history.Load(context.Background()))
}

func TestPressPersistsEveryChange(t *testing.T) {
	ctx := context.Background()
	s, history := newTestSession(t, store.NewMemory(), Options{})
	s.Load(ctx)
	require.True(t, s.Loaded())

	require.NoError(t, s.Press(ctx, Letter('c')))
	rec := history.Load(ctx)[1]
	require.Equal(t, "c", rec.Rows[0][0])
	require.Equal(t, 1, rec.CurCol)

	require.NoError(t, s.Press(ctx, Key{Kind: KeyClear}))
	rec = history.Load(ctx)[1]
	require.Equal(t, "", rec.Rows[0][0])
	require.Equal(t, 0, rec.CurCol)
}

func TestWinIsPersistedAndSummarised(t *testing.T) {
	ctx := context.Background()
	s, history := newTestSession(t, store.NewMemory(), Options{})
	s.Load(ctx)
	typeWord(t, s, "crane")
	typeWord(t, s, "slate")

	require.Equal(t, model.StateWon, s.Game().State())
	rec := history.Load(ctx)[1]
	require.Equal(t, model.StateWon, rec.GameState)
	require.Equal(t, 2, rec.CurRow)

	summary := s.Summary(ctx)
	require.Equal(t, 1, summary.Played)
	require.Equal(t, 100, summary.WinRate)
	require.Equal(t, 1, summary.Distribution[1])

	require.NoError(t, s.Press(ctx, Letter('x')))
	require.Equal(t, rec, history.Load(ctx)[1])
}

func TestLoadRestoresSavedGame(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	first, _ := newTestSession(t, mem, Options{})
	first.Load(ctx)
	typeWord(t, first, "crane")
	require.NoError(t, first.Press(ctx, Letter('s')))

	second, _ := newTestSession(t, mem, Options{})
	second.Load(ctx)
	row, col := second.Game().Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 1, col)
	require.Equal(t, 's', second.Game().Letter(1, 0))
}

func TestLoadMalformedRecordStartsFresh(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.SetItem(ctx, store.HistoryKey, `{"day-1":{"rows":[["a"]],"curRow":9,"curCol":0,"gameState":"playing"}}`))
	s, _ := newTestSession(t, mem, Options{})
	s.Load(ctx)
	require.True(t, s.Loaded())
	require.Equal(t, model.StatePlaying, s.Game().State())
	row, col := s.Game().Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
}

func TestLoadFullGridStillPlayingStartsFresh(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	row := `["c","r","a","n","e"]`
	grid := row + "," + row + "," + row + "," + row + "," + row + "," + row
	require.NoError(t, mem.SetItem(ctx, store.HistoryKey, `{"day-1":{"rows":[`+grid+`],"curRow":6,"curCol":0,"gameState":"playing"}}`))
	s, _ := newTestSession(t, mem, Options{})
	s.Load(ctx)

	r, c := s.Game().Cursor()
	require.Equal(t, 0, r)
	require.Equal(t, 0, c)
	typeWord(t, s, "slate")
	require.Equal(t, model.StateWon, s.Game().State())
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, failingBackend{}, Options{})
	s.Load(ctx)
	require.True(t, s.Loaded())
	require.NoError(t, s.Press(ctx, Letter('c')))
	_, col := s.Game().Cursor()
	require.Equal(t, 1, col)
}

func TestStrictRejectsUnknownWords(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, store.NewMemory(), Options{Strict: true})
	s.Load(ctx)
	for _, r := range "zzzzz" {
		require.NoError(t, s.Press(ctx, Letter(r)))
	}
	require.ErrorIs(t, s.Press(ctx, Key{Kind: KeyEnter}), words.ErrNotInWordList)
	row, col := s.Game().Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 5, col)

	for range 5 {
		require.NoError(t, s.Press(ctx, Key{Kind: KeyClear}))
	}
	typeWord(t, s, "pious")
	row, _ = s.Game().Cursor()
	require.Equal(t, 1, row)
}

func TestShareText(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, store.NewMemory(), Options{})
	s.Load(ctx)
	typeWord(t, s, "slate")
	require.Equal(t, "Tuidle 1 1/6\n\n🟩🟩🟩🟩🟩", s.ShareText())
}
