package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/freshtracks/internal/pipeline"
)

// Model renders run progress from a [pipeline.ProgressUpdate] channel.
type Model struct {
	updates <-chan pipeline.ProgressUpdate

	spinner  spinner.Model
	bar      progress.Model
	current  pipeline.ProgressUpdate
	received bool
	found    int
	done     bool
}

type progressUpdateMsg pipeline.ProgressUpdate

type runFinishedMsg struct{}

// NewModel creates a progress display reading from the given channel. The
// display exits when the channel closes.
func NewModel(updates <-chan pipeline.ProgressUpdate) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ok

	return &Model{
		updates: updates,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the spinner and begins consuming updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

// Update handles incoming messages and updates the display state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		if b, ok := bar.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd

	case progressUpdateMsg:
		m.current = pipeline.ProgressUpdate(msg)
		m.received = true

		var cmds []tea.Cmd
		if m.current.Phase == pipeline.ExpandAlbum {
			m.found++
		}
		if m.current.Phase == pipeline.ScanArtists && m.current.Total > 0 {
			cmds = append(cmds, m.bar.SetPercent(float64(m.current.Step)/float64(m.current.Total)))
		}
		cmds = append(cmds, m.waitForUpdate())
		return m, tea.Batch(cmds...)

	case runFinishedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current phase, message, and cohort progress.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("freshtracks"))
	b.WriteString("\n\n")

	if !m.received {
		b.WriteString(fmt.Sprintf("%s Starting run...\n", m.spinner.View()))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.current.Message))

		if m.current.Phase == pipeline.ScanArtists || m.current.Phase == pipeline.ExpandAlbum {
			b.WriteString("\n")
			b.WriteString(m.bar.View())
			b.WriteString("\n")
			b.WriteString(styles.warn.Render(fmt.Sprintf("%d new releases found", m.found)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("press q to hide progress (the run continues)"))
	b.WriteString("\n")

	return b.String()
}

// waitForUpdate blocks on the update channel and converts the next value
// into a message. A closed channel ends the display.
func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return runFinishedMsg{}
		}
		return progressUpdateMsg(update)
	}
}
