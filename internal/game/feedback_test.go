package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/model"
)

func TestFeedbackClassifiesCommittedRow(t *testing.T) {
	g := New("crane")
	guess(g, "react")
	require.Equal(t, []model.Feedback{
		model.FeedbackPresent, // r
		model.FeedbackPresent, // e
		model.FeedbackExact,   // a
		model.FeedbackPresent, // c
		model.FeedbackAbsent,  // t
	}, g.RowFeedback(0))
}

func TestFeedbackEmptyForUncommittedRows(t *testing.T) {
	g := New("crane")
	typeWord(g, "crane")
	for col := 0; col < g.Width(); col++ {
		require.Equal(t, model.FeedbackEmpty, g.Feedback(0, col))
	}
	require.Equal(t, model.FeedbackEmpty, g.Feedback(5, 0))
	require.Equal(t, model.FeedbackEmpty, g.Feedback(-1, 0))
}

func TestKeyboardPrefersBestClassification(t *testing.T) {
	g := New("crane")
	guess(g, "acorn") // a present, c present, n present
	guess(g, "bravo") // a exact, r exact
	keys := g.Keyboard()
	require.Equal(t, model.FeedbackExact, keys['a'])
	require.Equal(t, model.FeedbackExact, keys['r'])
	require.Equal(t, model.FeedbackPresent, keys['c'])
	require.Equal(t, model.FeedbackPresent, keys['n'])
	require.Equal(t, model.FeedbackAbsent, keys['o'])
	require.Equal(t, model.FeedbackAbsent, keys['b'])
	_, seen := keys['z']
	require.False(t, seen)
}

func TestKeyboardIgnoresTypedButUncommitted(t *testing.T) {
	g := New("crane")
	typeWord(g, "zz")
	require.Empty(t, g.Keyboard())
}
