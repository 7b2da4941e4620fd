// Package stats derives win/streak/distribution statistics from the game history.
package stats

import (
	"sort"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/model"
)

// Compute scans history in ascending day order and returns the summary.
func Compute(history model.History) model.Summary {
	var s model.Summary
	days := SortedDays(history)
	s.Played = len(days)

	prevDay := 0
	for i, day := range days {
		rec := history[day]
		won := rec.GameState == model.StateWon
		if won {
			s.Wins++
			if k := rec.GuessCount(); k >= 1 && k <= model.Tries {
				s.Distribution[k-1]++
			}
		}
		if won && i > 0 && s.CurrentStreak > 0 && day == prevDay+1 {
			s.CurrentStreak++
		} else {
			if s.CurrentStreak > s.MaxStreak {
				s.MaxStreak = s.CurrentStreak
			}
			s.CurrentStreak = 0
			if won {
				s.CurrentStreak = 1
			}
		}
		prevDay = day
	}
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	s.WinRate = WinRate(s.Wins, s.Played)
	return s
}

// WinRate returns floor(100 * wins / played), or 0 when nothing was played.
func WinRate(wins, played int) int {
	if played <= 0 {
		return 0
	}
	return 100 * wins / played
}

// SortedDays returns the day indexes of history in ascending order.
func SortedDays(history model.History) []int {
	days := make([]int, 0, len(history))
	for day := range history {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// BarLengths scales each distribution bucket against the largest one.
// Every bucket gets at least one cell so its count stays visible.
func BarLengths(dist [model.Tries]int, width int) [model.Tries]int {
	var out [model.Tries]int
	if width < 1 {
		width = 1
	}
	peak := 0
	for _, n := range dist {
		if n > peak {
			peak = n
		}
	}
	for i, n := range dist {
		out[i] = 1
		if peak > 0 && n > 0 {
			if l := n * width / peak; l > 1 {
				out[i] = l
			}
		}
	}
	return out
}

// Filter narrows history to the days selected by cfg. The day for Since is
// resolved with cal.
func Filter(history model.History, cal calendar.Calendar, cfg model.StatsConfig) model.History {
	days := SortedDays(history)
	if cfg.Since != nil {
		from := cal.DayIndex(*cfg.Since)
		idx := sort.SearchInts(days, from)
		days = days[idx:]
	}
	if cfg.Last > 0 && len(days) > cfg.Last {
		days = days[len(days)-cfg.Last:]
	}
	out := make(model.History, len(days))
	for _, day := range days {
		out[day] = history[day]
	}
	return out
}
