// Package model defines shared data structures.
package model

import "time"

// Tries is the number of guess rows in a game.
const Tries = 6

// Config defines game settings.
type Config struct {
	WordsPath string
	Scheme    string
	Epoch     time.Time
	Strict    bool
	DBPath    string
	LogLevel  string
}

// StatsConfig defines options for the stats browser.
type StatsConfig struct {
	Scheme string
	Epoch  time.Time
	// Since keeps days on or after this date when set.
	Since *time.Time
	// Last keeps only the most recent N recorded days when positive.
	Last int
}

// GameState is the lifecycle state of a daily game.
type GameState string

const (
	StatePlaying GameState = "playing"
	StateWon     GameState = "won"
	StateLost    GameState = "lost"
)

// Terminal reports whether no further input is accepted.
func (s GameState) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Valid reports whether s is a known state.
func (s GameState) Valid() bool {
	switch s {
	case StatePlaying, StateWon, StateLost:
		return true
	default:
		return false
	}
}

// Feedback classifies a single letter against the secret word.
type Feedback string

const (
	FeedbackEmpty   Feedback = "empty"
	FeedbackAbsent  Feedback = "absent"
	FeedbackPresent Feedback = "present"
	FeedbackExact   Feedback = "exact"
)

// Rank orders feedback for keyboard precedence.
func (f Feedback) Rank() int {
	switch f {
	case FeedbackExact:
		return 3
	case FeedbackPresent:
		return 2
	case FeedbackAbsent:
		return 1
	default:
		return 0
	}
}

// GameRecord is the persisted snapshot of one day's game.
type GameRecord struct {
	Rows      [][]string `json:"rows"`
	CurRow    int        `json:"curRow"`
	CurCol    int        `json:"curCol"`
	GameState GameState  `json:"gameState"`
}

// GuessCount returns the number of rows that hold at least one letter.
func (r GameRecord) GuessCount() int {
	count := 0
	for _, row := range r.Rows {
		if len(row) > 0 && row[0] != "" {
			count++
		}
	}
	return count
}

// History maps a day index to that day's record.
type History map[int]GameRecord

// HistoryEntry is a day record flattened for listing.
type HistoryEntry struct {
	Day     int
	Date    time.Time
	State   GameState
	Guesses int
}

// Summary aggregates statistics across a history.
type Summary struct {
	Played        int
	Wins          int
	WinRate       int
	CurrentStreak int
	MaxStreak     int
	// Distribution[k-1] counts wins that took k guesses.
	Distribution [Tries]int
}
