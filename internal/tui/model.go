// Package tui is the full-screen terminal front end. It feeds typed lines
// to a console session and shows the board next to a scrolling log.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chess_rules/internal/console"
	"chess_rules/internal/shared"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

const maxLogLines = 200

type Model struct {
	session *console.Session

	m        mode
	input    textinput.Model
	logLines []string
	board    string

	width  int
	height int
}

func NewModel(s *console.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "e2;e4, e2?, undo, help..."
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{
		session: s,
		m:       modeNormal,
		input:   ti,
		board:   console.Render(s.Board(), shared.NoSquare),
	}
	m.appendLog("ready (press i to enter a move, ? for help)")
	for _, line := range s.Status() {
		m.appendLog(line)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(60, max(20, m.width-4))
		return m, nil

	case tea.KeyMsg:
		switch m.m {
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "i", "enter":
				if m.session.Ended() {
					m.appendLog("the game has ended (press q to quit)")
					return m, nil
				}
				m.m = modeInput
				m.input.SetValue("")
				m.input.Focus()
				return m, nil
			case "u":
				m.exec("undo")
				return m, nil
			case "?":
				m.exec("help")
				return m, nil
			}
			return m, nil

		case modeInput:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if line != "" {
					m.exec(line)
				}
				if m.session.Ended() {
					m.m = modeNormal
					m.input.Blur()
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// exec dispatches one line and folds the reply into the view.
func (m *Model) exec(line string) {
	m.appendLog("> " + line)
	reply := m.session.Dispatch(line)
	for _, l := range reply.Lines {
		m.appendLog(l)
	}
	if reply.Board != "" {
		m.board = reply.Board
	}
	if reply.Done {
		m.appendLog("game over (press q to quit)")
	}
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	b := m.session.Board()
	modeStr := "NORMAL"
	if m.m == modeInput {
		modeStr = "INPUT"
	}
	turn := b.Turn().Name()
	if m.session.Ended() {
		turn = "ended"
	}
	header := titleStyle.Render(fmt.Sprintf("chess  [%s]  move:%d  mode:%s", turn, b.FullMoveNumber(), modeStr))

	boardBox := boxStyle.Render(strings.TrimRight(m.board, "\n"))
	boardHeight := lipgloss.Height(boardBox)

	logHeight := max(boardHeight-2, m.height-6)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logWidth := max(30, m.width-lipgloss.Width(boardBox)-2)
	logBox := boxStyle.Width(logWidth).Height(logHeight).Render(logBody)

	var inputLine string
	if m.m == modeInput {
		inputLine = m.input.View()
	} else {
		inputLine = "i: move  u: undo  ?: help  q: quit"
	}
	inputBox := boxStyle.Width(max(20, m.width-2)).Render(inputLine)

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, logBox)
	return header + "\n" + body + "\n" + inputBox + "\n"
}
