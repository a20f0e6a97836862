package teatest

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg int

// counterModel loads a value on Init and on "+", and polls on a timer that
// the driver should drop.
type counterModel struct {
	n     int
	loads int
}

func (m counterModel) load() tea.Cmd {
	next := m.n + 1
	return func() tea.Msg { return loadedMsg(next) }
}

func (m counterModel) Init() tea.Cmd {
	return tea.Batch(m.load(), tea.Tick(time.Hour, func(time.Time) tea.Msg { return loadedMsg(-1) }))
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.n = int(msg)
		m.loads++
	case tea.KeyMsg:
		switch msg.String() {
		case "+":
			return m, m.load()
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m counterModel) View() string { return "n=" + strconv.Itoa(m.n) }

func TestDriver_RunsLoadsAndDropsTimers(t *testing.T) {
	d := New(t, counterModel{})
	d.Start()
	assert.Equal(t, "n=1", d.View())
	assert.Len(t, d.Msgs, 1)

	d.PressKey('+')
	d.PressKey('+')
	assert.Equal(t, "n=3", d.View())
	assert.Equal(t, 3, d.Model.(counterModel).loads)
}

func TestDriver_QuitStopsInput(t *testing.T) {
	d := New(t, counterModel{})
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.PressKey('+')
	assert.Equal(t, "n=0", d.View())
}

func TestDriver_WithSize(t *testing.T) {
	var got tea.WindowSizeMsg
	m := sizeModel{got: &got}
	New(t, m, WithSize(80, 24))
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, got)
}

type sizeModel struct{ got *tea.WindowSizeMsg }

func (m sizeModel) Init() tea.Cmd { return nil }
func (m sizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		*m.got = ws
	}
	return m, nil
}
func (m sizeModel) View() string { return "" }
