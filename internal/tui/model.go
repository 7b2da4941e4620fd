// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/session"
	"github.com/verte-zerg/tuidle/internal/stats"
	"github.com/verte-zerg/tuidle/internal/words"
)

const noticeDuration = 2 * time.Second

type loadedMsg struct {
	history model.History
}

type summaryMsg struct {
	summary model.Summary
}

type tickMsg time.Time

type noticeExpiredMsg struct {
	id int
}

// Model implements the Bubble Tea game UI.
type Model struct {
	ctx     context.Context
	session *session.Session
	log     zerolog.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	noPuzzle   bool
	summary    model.Summary
	hasSummary bool
	notice     string
	noticeID   int

	now       time.Time
	clock     func() time.Time
	writeClip func(string) error
}

var (
	exactStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#538D4E")).Bold(true)
	presentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#B59F3B")).Bold(true)
	absentStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3C")).Bold(true)
	pendingStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#262626")).Bold(true)
	emptyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#262626"))
	cursorStyle       = emptyStyle.Underline(true)
	keyStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#5A5A5A"))
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	noticeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1).Width(12).Align(lipgloss.Center)
	barStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A3C"))
	barHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#538D4E"))
)

// NewModel constructs the game UI for a session that has not been loaded yet.
func NewModel(ctx context.Context, sess *session.Session, log zerolog.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return &Model{
		ctx:       ctx,
		session:   sess,
		log:       log,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		clock:     time.Now,
		writeClip: clipboard.WriteAll,
	}
}

// NewNoPuzzleModel shows the screen for a day without a word.
func NewNoPuzzleModel() *Model {
	m := &Model{
		keys:     defaultKeyMap(),
		help:     help.New(),
		noPuzzle: true,
	}
	m.keys.Letters.SetEnabled(false)
	m.keys.Enter.SetEnabled(false)
	m.keys.Clear.SetEnabled(false)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.noPuzzle {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadHistory())
}

func (m *Model) loadHistory() tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return loadedMsg{history: sess.FetchHistory(ctx)}
	}
}

func (m *Model) loadSummary() tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return summaryMsg{summary: sess.Summary(ctx)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.session.Hydrate(msg.history)
		if m.finished() {
			m.keys.setFinished(true)
			m.summary = stats.Compute(msg.history)
			m.hasSummary = true
			m.now = m.clock()
			return m, tick()
		}
		return m, nil
	case summaryMsg:
		m.summary = msg.summary
		m.hasSummary = true
		m.now = m.clock()
		return m, tick()
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	case spinner.TickMsg:
		if m.loaded() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) loaded() bool {
	return m.session != nil && m.session.Loaded()
}

func (m *Model) finished() bool {
	return m.loaded() && m.session.Game().State().Terminal()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.noPuzzle {
		return nil
	}
	if key.Matches(msg, m.keys.Share) {
		return m.share()
	}
	var keys []session.Key
	switch {
	case key.Matches(msg, m.keys.Enter):
		keys = append(keys, session.Key{Kind: session.KeyEnter})
	case key.Matches(msg, m.keys.Clear):
		keys = append(keys, session.Key{Kind: session.KeyClear})
	case key.Matches(msg, m.keys.Letters), msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			keys = append(keys, session.Letter(r))
		}
	default:
		return nil
	}
	wasFinished := m.finished()
	for _, k := range keys {
		if err := m.session.Press(m.ctx, k); err != nil {
			if errors.Is(err, words.ErrNotInWordList) {
				return m.flash("Not in word list")
			}
			m.log.Error().Err(err).Msg("key press failed")
			return nil
		}
	}
	if !wasFinished && m.finished() {
		m.keys.setFinished(true)
		return m.loadSummary()
	}
	return nil
}

func (m *Model) share() tea.Cmd {
	text := m.session.ShareText()
	if err := m.writeClip(text); err != nil {
		m.log.Warn().Err(err).Msg("failed to copy share text")
		return m.flash("Clipboard unavailable")
	}
	m.log.Debug().Msg("share text copied")
	return m.flash("Copied to clipboard")
}

func (m *Model) flash(text string) tea.Cmd {
	m.noticeID++
	m.notice = text
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBody() string {
	switch {
	case m.noPuzzle:
		return lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("No puzzle today"),
			labelStyle.Render("The word list has run out. Come back tomorrow."),
		)
	case !m.loaded():
		return m.spinner.View() + " Loading…"
	}
	g := m.session.Game()
	sections := []string{
		titleStyle.Render(m.title()),
		renderGrid(g),
		m.renderNotice(),
	}
	if m.finished() && m.hasSummary {
		sections = append(sections, renderSummary(g, m.summary, m.now))
	} else {
		sections = append(sections, renderKeyboard(g, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m *Model) title() string {
	return "Tuidle " + strconv.Itoa(m.session.Day())
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return " "
	}
	return noticeStyle.Render(m.notice)
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(m.help.View(m.keys))
}
