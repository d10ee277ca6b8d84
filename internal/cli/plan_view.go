package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/larderhq/larder/internal/app"
	"github.com/larderhq/larder/internal/calendar"
	"github.com/larderhq/larder/internal/cli/formatter"
	"github.com/larderhq/larder/internal/domain"
)

type planKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Swap       key.Binding
	Regenerate key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func defaultPlanKeys() planKeyMap {
	return planKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Swap:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap day")),
		Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type planLoadedMsg struct {
	view *app.GenerateResponse
	note string
}

type planErrMsg struct{ err error }

// planViewModel is the interactive plan browser: cursor over the days,
// swap or regenerate in place.
type planViewModel struct {
	app    *App
	view   *app.GenerateResponse
	cursor int
	note   string
	err    error
	keys   planKeyMap
}

func newPlanViewModel(a *App, view *app.GenerateResponse) *planViewModel {
	return &planViewModel{app: a, view: view, keys: defaultPlanKeys()}
}

func (m *planViewModel) Init() tea.Cmd {
	return nil
}

func (m *planViewModel) reload(note string) tea.Cmd {
	return func() tea.Msg {
		view, err := m.app.Plans.ViewActive(context.Background())
		if err != nil {
			return planErrMsg{err}
		}
		return planLoadedMsg{view: view, note: note}
	}
}

func (m *planViewModel) swapDay(date string) tea.Cmd {
	return func() tea.Msg {
		d, err := calendar.ParseDate(date)
		if err != nil {
			return planErrMsg{err}
		}
		resp, err := m.app.Plans.Swap(context.Background(), app.SwapRequest{Date: d})
		if err != nil {
			return planErrMsg{err}
		}

		note := "day left unassigned"
		if resp.Picked != nil {
			note = "-> " + resp.Picked.Name
			if resp.Repeated {
				note = "kept " + resp.Picked.Name + " (only compatible recipe)"
			}
		}
		view, err := m.app.Plans.ViewActive(context.Background())
		if err != nil {
			return planErrMsg{err}
		}
		return planLoadedMsg{view: view, note: note}
	}
}

func (m *planViewModel) regenerate() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.app.Plans.Generate(context.Background(), app.NewGenerateRequest(domain.TriggerRecreate)); err != nil {
			return planErrMsg{err}
		}
		view, err := m.app.Plans.ViewActive(context.Background())
		if err != nil {
			return planErrMsg{err}
		}
		return planLoadedMsg{view: view, note: "plan regenerated"}
	}
}

func (m *planViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		m.view = msg.view
		m.note = msg.note
		m.err = nil
		if m.cursor >= len(m.view.Days) {
			m.cursor = len(m.view.Days) - 1
		}
		return m, nil

	case planErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.view.Days)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Swap):
			if len(m.view.Days) > 0 {
				return m, m.swapDay(calendar.FormatDate(m.view.Days[m.cursor].Date))
			}
		case key.Matches(msg, m.keys.Regenerate):
			return m, m.regenerate()
		case key.Matches(msg, m.keys.Reload):
			return m, m.reload("reloaded")
		}
	}
	return m, nil
}

func (m *planViewModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header(m.view.Plan.Name))
	b.WriteString("\n")

	for i, day := range m.view.Days {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}

		recipe := formatter.Dim("(unassigned)")
		if day.Recipe != nil {
			recipe = day.Recipe.Name
		}
		line := fmt.Sprintf("%s%-18s %s", cursor, calendar.FormatItemDate(day.Date), recipe)
		if day.TagName != "" {
			line += "  " + formatter.StylePurple.Render("["+day.TagName+"]")
		}
		if i == m.cursor {
			line = formatter.StyleBold.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Assigned %d/%d days\n", m.view.AssignedDays, m.view.TotalDays))

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("  " + m.err.Error() + "\n"))
	} else if m.note != "" {
		b.WriteString(formatter.Dim("  " + m.note + "\n"))
	}

	b.WriteString(formatter.Dim("\n  ↑/↓ move · s swap · g regenerate · r reload · q quit\n"))
	return b.String()
}
