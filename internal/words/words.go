// Package words loads answer lists and selects the word for a day.
package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var embedded string

// ErrNoPuzzle is returned when a day index falls outside the word list.
var ErrNoPuzzle = errors.New("no puzzle for this day")

// ErrNotInWordList is returned when a guess is not a known word.
var ErrNotInWordList = errors.New("not in word list")

// List is an ordered, lowercase answer list.
type List struct {
	words []string
	set   map[string]struct{}
}

// Default returns the embedded answer list.
func Default() (*List, error) {
	return Parse(strings.NewReader(embedded))
}

// Load reads one word per line from the provided file path.
// An empty path selects the embedded list.
func Load(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads words from r, skipping blank lines, '#' comments and
// entries that are not plain letters.
func Parse(r io.Reader) (*List, error) {
	var out []string
	keep := FilterLetters()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !keep(line) {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return New(out), nil
}

// New builds a List from already normalised words.
func New(words []string) *List {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return &List{words: words, set: set}
}

// Len returns the number of words.
func (l *List) Len() int {
	return len(l.words)
}

// WordForDay returns the answer for a day index.
func (l *List) WordForDay(day int) (string, error) {
	if day < 0 || day >= len(l.words) {
		return "", fmt.Errorf("%w: day %d outside list of %d words", ErrNoPuzzle, day, len(l.words))
	}
	return l.words[day], nil
}

// Contains reports whether word is in the list, ignoring case.
func (l *List) Contains(word string) bool {
	_, ok := l.set[strings.ToLower(word)]
	return ok
}
