// Package ui renders live progress for a running workload as a Bubble
// Tea program, for the CLI's --watch run mode.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"concore/internal/runevent"
)

type progressModel struct {
	title   string
	events  <-chan runevent.Event
	spinner spinner.Model
	prog    progress.Model
	items   []taskItem
	index   map[uint64]int
	width   int
	done    bool
}

type taskItem struct {
	taskID uint64
	status string
	stage  runevent.Stage
}

type eventMsg runevent.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders task
// lifecycle progress for the given root and child task IDs as events
// arrive on the channel.
func NewProgressModel(title string, taskIDs []uint64, events <-chan runevent.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]taskItem, 0, len(taskIDs))
	index := make(map[uint64]int, len(taskIDs))
	for i, id := range taskIDs {
		items = append(items, taskItem{taskID: id, status: "queued"})
		index[id] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(runevent.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.prog.Update(msg)
		m.prog = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 10 {
		nameWidth = 10
	}

	for _, item := range m.items {
		name := truncate(fmt.Sprintf("task %d", item.taskID), nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev runevent.Event) tea.Cmd {
	label := statusLabel(ev.Stage, ev.Status)
	idx, ok := m.index[ev.TaskID]
	if !ok {
		idx = len(m.items)
		m.items = append(m.items, taskItem{taskID: ev.TaskID, status: "queued"})
		m.index[ev.TaskID] = idx
	}
	if label != "" {
		m.items[idx].status = label
		m.items[idx].stage = ev.Stage
	}

	total := 0.0
	for _, item := range m.items {
		total += progressFromStatus(item.status)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStatus(status string) float64 {
	switch status {
	case "done", "error":
		return 1.0
	case "parked":
		return 0.7
	case "working":
		return 0.4
	default:
		return 0.0
	}
}

func statusLabel(stage runevent.Stage, status runevent.Status) string {
	switch status {
	case runevent.StatusQueued:
		return "queued"
	case runevent.StatusDone:
		return "done"
	case runevent.StatusError:
		return "error"
	case runevent.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage runevent.Stage) string {
	switch stage {
	case runevent.StageRunning:
		return "working"
	case runevent.StageParked:
		return "parked"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "working", "parked":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
