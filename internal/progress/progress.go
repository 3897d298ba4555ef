// Package progress shows a progress bar on the terminal while a long
// simulation runs.
package progress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	padding  = 2
	maxWidth = 60
)

// TickMsg reports how many games have finished
type TickMsg struct {
	Done  int
	Total int
}

// DoneMsg ends the display
type DoneMsg struct {
	Err error
}

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the Bubble Tea model behind the bar
type Model struct {
	label    string
	bar      progress.Model
	done     int
	total    int
	finished bool
	err      error
}

// NewModel creates a model for a run of total games
func NewModel(label string, total int) Model {
	return Model{
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxWidth-padding)),
		total: total,
	}
}

// Percent returns the finished share of the run
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(1, float64(m.done)/float64(m.total))
}

// Finished reports whether a DoneMsg has been received
func (m Model) Finished() bool {
	return m.finished
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		if msg.Err == nil {
			m.done = m.total
		}
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-padding*2-len(m.label), maxWidth))
	}
	return m, nil
}

func (m Model) View() string {
	line := fmt.Sprintf("%s %s %s",
		labelStyle.Render(m.label),
		m.bar.ViewAs(m.Percent()),
		countStyle.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
	if m.err != nil {
		line += " " + failedStyle.Render(m.err.Error())
	}
	if m.finished {
		line += "\n"
	}
	return line
}

// Bar runs a Model in the background until Finish is called
type Bar struct {
	program *tea.Program
	exited  chan struct{}
	once    sync.Once
}

// Start draws a bar on w. It does not read from the terminal and leaves
// signal handling to the caller.
func Start(ctx context.Context, w io.Writer, label string, total int) *Bar {
	b := &Bar{
		program: tea.NewProgram(NewModel(label, total),
			tea.WithContext(ctx),
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler()),
		exited: make(chan struct{}),
	}
	go func() {
		defer close(b.exited)
		_, _ = b.program.Run()
	}()
	return b
}

// Update moves the bar; safe to call from any goroutine
func (b *Bar) Update(done, total int) {
	b.program.Send(TickMsg{Done: done, Total: total})
}

// Finish stops the bar and waits for the terminal to be restored
func (b *Bar) Finish(err error) {
	b.once.Do(func() {
		b.program.Send(DoneMsg{Err: err})
		<-b.exited
	})
}
