package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/model"
)

// Entries flattens history into rows, newest day first.
func Entries(history model.History, cal calendar.Calendar, ref time.Time) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, len(history))
	for day, rec := range history {
		out = append(out, model.HistoryEntry{
			Day:     day,
			Date:    cal.DateFor(day, ref),
			State:   rec.GameState,
			Guesses: rec.CurRow,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Day > out[j].Day
	})
	return out
}

// RenderSummary prints the headline numbers and the guess distribution.
func RenderSummary(w io.Writer, s model.Summary) error {
	if s.Played == 0 {
		_, err := fmt.Fprintln(w, "No games played yet.")
		return err
	}
	t := newTextTable(right("Played"), right("Win %"), right("Cur Streak"), right("Max Streak"))
	t.addRow(
		strconv.Itoa(s.Played),
		strconv.Itoa(s.WinRate),
		strconv.Itoa(s.CurrentStreak),
		strconv.Itoa(s.MaxStreak),
	)
	if err := t.writeTo(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return RenderDistribution(w, s, 30)
}

// RenderDistribution prints one bar per guess count.
func RenderDistribution(w io.Writer, s model.Summary, width int) error {
	if _, err := fmt.Fprintln(w, "Guess Distribution"); err != nil {
		return err
	}
	bars := BarLengths(s.Distribution, width)
	t := newTextTable(left(""), left(""), right(""))
	for i, n := range s.Distribution {
		t.addRow(strconv.Itoa(i+1), strings.Repeat("#", bars[i]), strconv.Itoa(n))
	}
	return t.writeTo(w)
}

// RenderHistory prints one line per recorded day.
func RenderHistory(w io.Writer, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	t := newTextTable(left("Day"), left("Date"), left("Result"), right("Guesses"))
	for _, e := range entries {
		t.addRow(calendar.Key(e.Day), calendar.FormatDate(e.Date), string(e.State), strconv.Itoa(e.Guesses))
	}
	return t.writeTo(w)
}
