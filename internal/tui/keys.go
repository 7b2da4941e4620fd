package tui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Letters key.Binding
	Enter   key.Binding
	Clear   key.Binding
	Share   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Letters: key.NewBinding(
			key.WithKeys(letterKeys()...),
			key.WithHelp("a-z", "type"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "clear"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy result"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// letterKeys lists the single-letter key names a-z and A-Z. Other letters
// (accented, pasted runs) still arrive as tea.KeyRunes and are routed by
// handleKey.
func letterKeys() []string {
	keys := make([]string, 0, 52)
	for r := 'a'; r <= 'z'; r++ {
		keys = append(keys, string(r), string(unicode.ToUpper(r)))
	}
	return keys
}

// setFinished swaps the gameplay bindings for the summary bindings.
func (k *keyMap) setFinished(finished bool) {
	k.Letters.SetEnabled(!finished)
	k.Enter.SetEnabled(!finished)
	k.Clear.SetEnabled(!finished)
	k.Share.SetEnabled(finished)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Letters, k.Enter, k.Clear, k.Share, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
