package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/model"
)

// HistoryKey is the backend key holding the serialized history.
const HistoryKey = "@game"

// History reads and writes the game history blob.
type History struct {
	mu      sync.Mutex
	backend Backend
	log     zerolog.Logger
}

// NewHistory returns a History over backend.
func NewHistory(backend Backend, log zerolog.Logger) *History {
	return &History{backend: backend, log: log}
}

// Load returns every parseable day record. Missing or malformed data yields
// an empty history; it never returns an error.
func (h *History) Load(ctx context.Context) model.History {
	h.mu.Lock()
	defer h.mu.Unlock()
	blob, ok := h.read(ctx)
	if !ok {
		return model.History{}
	}
	return h.decode(blob)
}

// Save replaces the stored history with history.
func (h *History) Save(ctx context.Context, history model.History) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	byKey := make(map[string]model.GameRecord, len(history))
	for day, rec := range history {
		byKey[calendar.Key(day)] = rec
	}
	data, err := json.Marshal(byKey)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := h.backend.SetItem(ctx, HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Upsert re-reads the stored history, replaces the entry for day and writes
// the result back. Other entries are kept verbatim.
func (h *History) Upsert(ctx context.Context, day int, rec model.GameRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	blob, found, err := h.backend.GetItem(ctx, HistoryKey)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if !found || !validObject(blob) {
		if found {
			h.log.Warn().Str("key", HistoryKey).Msg("discarding malformed history blob")
		}
		blob = "{}"
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	updated, err := sjson.SetRaw(blob, calendar.Key(day), string(raw))
	if err != nil {
		return fmt.Errorf("failed to merge record: %w", err)
	}
	if err := h.backend.SetItem(ctx, HistoryKey, updated); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	h.log.Debug().Str("day", calendar.Key(day)).Str("state", string(rec.GameState)).Msg("saved record")
	return nil
}

func (h *History) read(ctx context.Context) (string, bool) {
	blob, found, err := h.backend.GetItem(ctx, HistoryKey)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read history; starting fresh")
		return "", false
	}
	if !found {
		return "", false
	}
	if !validObject(blob) {
		h.log.Warn().Msg("could not parse the stored history; starting fresh")
		return "", false
	}
	return blob, true
}

func (h *History) decode(blob string) model.History {
	out := model.History{}
	gjson.Parse(blob).ForEach(func(key, value gjson.Result) bool {
		day, ok := calendar.ParseKey(key.String())
		if !ok {
			h.log.Debug().Str("key", key.String()).Msg("skipping unknown history key")
			return true
		}
		var rec model.GameRecord
		if err := json.Unmarshal([]byte(value.Raw), &rec); err != nil {
			h.log.Warn().Err(err).Str("key", key.String()).Msg("skipping malformed record")
			return true
		}
		out[day] = rec
		return true
	})
	return out
}

func validObject(blob string) bool {
	return gjson.Valid(blob) && gjson.Parse(blob).IsObject()
}
