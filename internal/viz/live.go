package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanuel/episim/internal/epi"
	"github.com/kanuel/episim/internal/model"
)

const (
	graphWidth  = 70
	graphHeight = 12
	stepsPerSec = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Live is the interactive day-by-day view. Space pauses, r restarts the
// outbreak, tab/arrows adjust the selected rate mid-run.
type Live struct {
	model     *model.SIR
	state     epi.State
	day       int
	maxDays   int
	running   bool
	selected  int
	paramKeys []string
	infected  []float64
	peakI     float64
	peakDay   int
}

func NewLive(m *model.SIR, maxDays int) Live {
	keys := make([]string, 0, 2)
	for k := range m.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	l := Live{
		model:     m,
		maxDays:   maxDays,
		running:   true,
		paramKeys: keys,
	}
	l.restart()
	return l
}

func (l *Live) restart() {
	l.state = l.model.InitialState()
	l.day = 0
	l.infected = append(l.infected[:0], l.state[model.Infected])
	l.peakI = l.state[model.Infected]
	l.peakDay = 0
}

func (l Live) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/stepsPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.restart()
		case "tab":
			if len(l.paramKeys) > 0 {
				l.selected = (l.selected + 1) % len(l.paramKeys)
			}
		case "up", "k":
			l.adjustParam(1.05)
		case "down", "j":
			l.adjustParam(0.95)
		}
		return l, nil

	case TickMsg:
		if l.running && l.day < l.maxDays {
			l.state = l.model.DiscreteStep(l.state)
			l.day++
			l.infected = append(l.infected, l.state[model.Infected])
			if l.state[model.Infected] > l.peakI {
				l.peakI = l.state[model.Infected]
				l.peakDay = l.day
			}
		}
		return l, tick()
	}

	return l, nil
}

func (l *Live) adjustParam(factor float64) {
	if len(l.paramKeys) == 0 {
		return
	}
	name := l.paramKeys[l.selected]
	value := l.model.GetParams()[name]
	if value == 0 {
		value = 1e-3
	}
	// Negative values are rejected by the model, nothing to handle here.
	_ = l.model.SetParam(name, value*factor)
}

func (l Live) View() string {
	var graph string
	if len(l.infected) > 1 {
		graph = InfectedCurve(l.infected, graphWidth, graphHeight, "infected")
	} else {
		graph = "collecting data..."
	}

	var stats strings.Builder
	row := func(label string, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("day", fmt.Sprintf("%d / %d", l.day, l.maxDays))
	row("susceptible", fmt.Sprintf("%.1f", l.state[model.Susceptible]))
	row("infected", fmt.Sprintf("%.1f", l.state[model.Infected]))
	row("recovered", fmt.Sprintf("%.1f", l.state[model.Recovered]))
	row("peak", fmt.Sprintf("%.1f (day %d)", l.peakI, l.peakDay))

	for i, name := range l.paramKeys {
		value := fmt.Sprintf("%.4f", l.model.GetParams()[name])
		if i == l.selected {
			stats.WriteString(activeStyle.Render("> "+name+" ") + valueStyle.Render(value) + "\n")
		} else {
			stats.WriteString(labelStyle.Render("  "+name) + valueStyle.Render(value) + "\n")
		}
	}

	status := "running"
	if !l.running {
		status = "paused"
	}
	if l.day >= l.maxDays {
		status = "done"
	}
	row("status", status)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		graphStyle.Render(graph),
		statsStyle.Render(stats.String()),
	)

	help := helpStyle.Render("space pause · r reset · tab select param · ↑/↓ adjust · q quit")

	return headerStyle.Render("episim live") + "\n" + body + "\n" + help + "\n"
}

// RunLive starts the interactive view and blocks until the user quits.
func RunLive(m *model.SIR, maxDays int) error {
	p := tea.NewProgram(NewLive(m, maxDays))
	_, err := p.Run()
	return err
}
