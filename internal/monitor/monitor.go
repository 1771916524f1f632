// Package monitor provides an interactive live view of a board's serial
// console, for bring-up and debugging outside of CI runs.
package monitor

import (
	"fmt"
	"regexp"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ember-os/hwci/internal/serialcon"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// anyData matches whatever has accumulated so the forwarder drains the
// buffer in one call.
var anyData = regexp.MustCompile(`(?s).+`)

type dataMsg string

type keyMap struct {
	quit key.Binding
}

var keys = keyMap{
	quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	vp      viewport.Model
	content string
	device  string
	baud    int
	ready   bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
		m.vp.SetContent(m.content)

	case dataMsg:
		m.content += string(msg)
		if m.ready {
			m.vp.SetContent(m.content)
			m.vp.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "connecting..."
	}
	title := titleStyle.Render(fmt.Sprintf("console %s @ %d", m.device, m.baud))
	status := statusStyle.Render("q to quit")
	return title + "\n" + m.vp.View() + "\n" + status
}

// Run attaches to the device and streams its console until the user quits.
func Run(device string, baud int) error {
	port, err := serialcon.Open(device, baud)
	if err != nil {
		return err
	}
	defer port.Close()

	p := tea.NewProgram(model{device: device, baud: baud}, tea.WithAltScreen())

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			if data, ok := port.Expect(anyData, 250*time.Millisecond); ok {
				p.Send(dataMsg(data))
			}
		}
	}()

	_, err = p.Run()
	close(done)
	return err
}
