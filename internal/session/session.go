// Package session binds one day's game to the persisted history.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/game"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/stats"
	"github.com/verte-zerg/tuidle/internal/store"
	"github.com/verte-zerg/tuidle/internal/words"
)

// KeyKind identifies a key event from the renderer.
type KeyKind int

const (
	KeyLetter KeyKind = iota
	KeyClear
	KeyEnter
)

// Key is a single key press routed to the grid.
type Key struct {
	Kind   KeyKind
	Letter rune
}

// Letter returns a letter key event.
func Letter(r rune) Key {
	return Key{Kind: KeyLetter, Letter: r}
}

// Session is today's game plus its persistence.
type Session struct {
	day     int
	date    time.Time
	secret  string
	game    *game.Game
	history *store.History
	dict    *words.List
	log     zerolog.Logger
	loaded  bool
}

// Options configure a session.
type Options struct {
	// Strict rejects guesses that are not in the word list.
	Strict bool
}

// New selects the word for now's day. It returns words.ErrNoPuzzle (wrapped)
// when the list has no word for that day.
func New(list *words.List, cal calendar.Calendar, now time.Time, history *store.History, log zerolog.Logger, opts Options) (*Session, error) {
	day := cal.DayIndex(now)
	secret, err := list.WordForDay(day)
	if err != nil {
		return nil, fmt.Errorf("failed to select word: %w", err)
	}
	s := &Session{
		day:     day,
		date:    now,
		secret:  secret,
		game:    game.New(secret),
		history: history,
		log:     log.With().Str("day", calendar.Key(day)).Logger(),
	}
	if opts.Strict {
		s.dict = list
	}
	return s, nil
}

// Day returns the day index.
func (s *Session) Day() int {
	return s.day
}

// Date returns the time the session was built for.
func (s *Session) Date() time.Time {
	return s.date
}

// Game exposes the grid for rendering.
func (s *Session) Game() *game.Game {
	return s.game
}

// Loaded reports whether the grid has been hydrated.
func (s *Session) Loaded() bool {
	return s.loaded
}

// FetchHistory reads the persisted history. It is safe to call off the UI loop.
func (s *Session) FetchHistory(ctx context.Context) model.History {
	return s.history.Load(ctx)
}

// Hydrate restores today's record from history and unlocks input.
// A malformed record is logged and replaced by a fresh game.
func (s *Session) Hydrate(history model.History) {
	if s.loaded {
		return
	}
	if rec, ok := history[s.day]; ok {
		g, err := game.Restore(s.secret, rec)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not restore saved game; starting fresh")
		} else {
			s.game = g
			s.log.Debug().Str("state", string(g.State())).Msg("restored saved game")
		}
	}
	s.loaded = true
}

// Load fetches history and hydrates the session.
func (s *Session) Load(ctx context.Context) {
	s.Hydrate(s.FetchHistory(ctx))
}

// Press applies a key event. Input before hydration is dropped. The only
// error returned is words.ErrNotInWordList in strict mode; storage failures
// are logged.
func (s *Session) Press(ctx context.Context, key Key) error {
	if !s.loaded {
		s.log.Debug().Msg("dropping key before load")
		return nil
	}
	var changed bool
	switch key.Kind {
	case KeyLetter:
		changed = s.game.TypeLetter(key.Letter)
	case KeyClear:
		changed = s.game.ClearLetter()
	case KeyEnter:
		if s.dict != nil && s.game.RowFull() && !s.dict.Contains(s.game.CurrentGuess()) {
			return words.ErrNotInWordList
		}
		changed = s.game.CommitRow()
		if changed && s.game.State().Terminal() {
			s.log.Info().Str("state", string(s.game.State())).Int("guesses", s.game.GuessCount()).Msg("game finished")
		}
	}
	if changed {
		s.persist(ctx)
	}
	return nil
}

func (s *Session) persist(ctx context.Context) {
	if err := s.history.Upsert(ctx, s.day, s.game.Record()); err != nil {
		s.log.Error().Err(err).Msg("failed to write data to storage")
	}
}

// Summary recomputes statistics from the full stored history.
func (s *Session) Summary(ctx context.Context) model.Summary {
	return stats.Compute(s.history.Load(ctx))
}

// ShareText renders today's result for sharing.
func (s *Session) ShareText() string {
	return game.ShareText(s.game, s.day)
}
