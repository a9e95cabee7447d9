package picker

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model adapts State to bubbletea. Each message is applied in full before
// the next redraw.
type Model struct {
	state  *State
	keys   KeyMap
	width  int
	height int
}

func NewModel(state *State, keys KeyMap) Model {
	return Model{
		state:  state,
		keys:   keys,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m Model) State() *State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.state.SetPageSize(m.layout().preview)
	case tea.KeyMsg:
		for _, ev := range m.keys.Events(m.state.Mode(), msg) {
			m.state.Apply(ev)
		}
		if m.state.Exited() {
			return m, tea.Quit
		}
	}
	return m, nil
}
