package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cubebrowser/internal/browser"
	"github.com/san-kum/cubebrowser/internal/logging"
)

// Model is the interactive browser: a row of plots above a focusable
// slider form.
type Model struct {
	browser       *browser.Browser
	names         []string
	focus         int
	help          help.Model
	showProfile   bool
	width, height int
	err           error
	logger        *slog.Logger
}

// NewModel wraps a displayed browser.
func NewModel(b *browser.Browser, logger *slog.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	h := help.New()
	h.Styles.ShortKey = KeyName
	h.Styles.ShortDesc = KeyHint
	h.Styles.FullKey = KeyName
	h.Styles.FullDesc = KeyHint
	return Model{
		browser: b,
		names:   b.Names(),
		help:    h,
		width:   80,
		height:  24,
		logger:  logger,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Update moves the focused slider on key input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Profile):
		m.showProfile = !m.showProfile
	case key.Matches(msg, keys.Next):
		if len(m.names) > 0 {
			m.focus = (m.focus + 1) % len(m.names)
		}
	case key.Matches(msg, keys.Prev):
		if len(m.names) > 0 {
			m.focus = (m.focus + len(m.names) - 1) % len(m.names)
		}
	case key.Matches(msg, keys.Right):
		m.step(1)
	case key.Matches(msg, keys.Left):
		m.step(-1)
	case key.Matches(msg, keys.FastUp):
		m.step(5)
	case key.Matches(msg, keys.FastDown):
		m.step(-5)
	case key.Matches(msg, keys.First):
		m.jump(false)
	case key.Matches(msg, keys.Last):
		m.jump(true)
	}
	return m, nil
}

// Focused returns the name of the focused slider, or "" without sliders.
func (m Model) Focused() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.focus]
}

func (m *Model) step(delta int) {
	slider, ok := m.browser.Slider(m.Focused())
	if !ok {
		return
	}
	m.report(slider.Step(delta))
}

func (m *Model) jump(end bool) {
	slider, ok := m.browser.Slider(m.Focused())
	if !ok {
		return
	}
	target := slider.Min
	if end {
		target = slider.Max
	}
	m.report(slider.SetValue(target))
}

func (m *Model) report(err error) {
	m.err = err
	if err != nil {
		logging.Error(context.Background(), m.logger, err)
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render("CUBEBROWSER") + "  " + Subtle.Render(fmt.Sprintf("%d plots · %s", len(m.browser.Plots()), m.browser.State())) + "\n\n")
	s.WriteString(PlotsView(m.browser) + "\n")
	s.WriteString(Separator(m.width) + "\n")
	s.WriteString(slidersView(m.browser, m.focus) + "\n")

	if m.showProfile {
		s.WriteString(m.profileView())
	}
	if m.err != nil {
		s.WriteString("\n" + ErrorStyle.Render(m.err.Error()) + "\n")
	}
	if m.help.ShowAll {
		s.WriteString("\n" + HelpPanel.Render(m.help.View(keys)) + "\n")
	} else {
		s.WriteString("\n" + m.help.View(keys) + "\n")
	}
	return s.String()
}

// profileView charts the mean of the first plot depending on the focused
// slider along that slider.
func (m Model) profileView() string {
	name := m.Focused()
	plots := m.browser.PlotsFor(name)
	if len(plots) == 0 {
		return "\n" + Subtle.Render("no profile") + "\n"
	}
	values, err := m.browser.Profile(plots[0], name)
	if err != nil {
		return "\n" + ErrorStyle.Render(err.Error()) + "\n"
	}
	caption := fmt.Sprintf("mean of %s along %s", plots[0].Cube().Name(), name)
	return "\n" + GraphStyle.Render(ProfileChart(values, caption, 40)) + "\n"
}

// Run displays b and hands the terminal to the interactive model.
func Run(b *browser.Browser, logger *slog.Logger) error {
	if _, err := b.Display(); err != nil {
		return err
	}
	_, err := tea.NewProgram(NewModel(b, logger), tea.WithAltScreen()).Run()
	return err
}
