package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/lcarsmon/internal/coordinator"
	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
)

// Telemetry is what the UI reads and drives. *coordinator.Coordinator
// implements it.
type Telemetry interface {
	Tick() coordinator.Refreshed
	Host() model.Host
	CPUInfo() model.CPUInfo
	Battery() model.Battery
	GPU() model.GPU
	Processes() []model.Process
	Children(pid int32) []model.Process
	ToggleSort(col sampler.SortColumn)
	ToggleExpanded(pid int32)
	View() sampler.ProcessView
}

// Screen is one of the top-level views.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProcesses
	ScreenBattery
	ScreenGPU
)

var screenNames = []string{"DASHBOARD", "PROCESSES", "BATTERY", "GPU"}

func (s Screen) String() string { return screenNames[s] }

var sortKeys = map[string]sampler.SortColumn{
	"p": sampler.SortPID,
	"n": sampler.SortName,
	"u": sampler.SortUser,
	"c": sampler.SortCPU,
	"m": sampler.SortMemory,
}

// Model renders the coordinator's snapshots. All sampling happens on the
// frame tick inside Update.
type Model struct {
	tel    Telemetry
	frame  time.Duration
	now    func() time.Time
	screen Screen
	rows   []model.Process
	cursor int
	width  int
	height int
}

func New(tel Telemetry, frame time.Duration) *Model {
	if frame <= 0 {
		frame = 500 * time.Millisecond
	}
	return &Model{
		tel:    tel,
		frame:  frame,
		now:    time.Now,
		width:  120,
		height: 40,
	}
}

// Messages
type tickMsg time.Time

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tickMsg:
		m.tel.Tick()
		if m.screen == ScreenProcesses {
			m.reloadRows()
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "1", "2", "3", "4":
		m.screen = Screen(key[0] - '1')
		if m.screen == ScreenProcesses {
			m.reloadRows()
		}
		return nil
	}
	if m.screen != ScreenProcesses {
		return nil
	}

	if col, ok := sortKeys[key]; ok {
		m.tel.ToggleSort(col)
		m.reloadRows()
		return nil
	}
	switch key {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		if m.cursor < len(m.rows) {
			m.tel.ToggleExpanded(m.rows[m.cursor].PID)
		}
	}
	return nil
}

func (m *Model) reloadRows() {
	m.rows = m.tel.Processes()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// RunTUI starts the Bubble Tea program and blocks until the user quits.
func RunTUI(tel Telemetry, frame time.Duration) error {
	prog := tea.NewProgram(New(tel, frame), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
