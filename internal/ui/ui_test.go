package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/lcarsmon/internal/coordinator"
	"github.com/Dicklesworthstone/lcarsmon/internal/model"
	"github.com/Dicklesworthstone/lcarsmon/internal/sampler"
)

type fakeTelemetry struct {
	ticks    int
	view     sampler.ProcessView
	procs    []model.Process
	children map[int32][]model.Process
	battery  model.Battery
	gpu      model.GPU
}

func newFakeTelemetry() *fakeTelemetry {
	return &fakeTelemetry{
		view: sampler.DefaultProcessView(),
		procs: []model.Process{
			{PID: 10, Name: "alpha", User: "root", Memory: 3000},
			{PID: 20, Name: "beta", User: "root", Memory: 2000},
			{PID: 30, Name: "gamma", User: "root", Memory: 1000},
		},
		children: map[int32][]model.Process{20: {{PID: 21, PPID: 20, Name: "beta-worker"}}},
		battery:  model.NoBattery(),
		gpu:      model.NoGPU(),
	}
}

func (f *fakeTelemetry) Tick() coordinator.Refreshed {
	f.ticks++
	return coordinator.Refreshed{Host: true}
}
func (f *fakeTelemetry) Host() model.Host                   { return model.Host{} }
func (f *fakeTelemetry) CPUInfo() model.CPUInfo             { return model.CPUInfo{} }
func (f *fakeTelemetry) Battery() model.Battery             { return f.battery }
func (f *fakeTelemetry) GPU() model.GPU                     { return f.gpu }
func (f *fakeTelemetry) Processes() []model.Process         { return f.procs }
func (f *fakeTelemetry) Children(pid int32) []model.Process { return f.children[pid] }
func (f *fakeTelemetry) ToggleSort(col sampler.SortColumn)  { f.view.ToggleSort(col) }
func (f *fakeTelemetry) ToggleExpanded(pid int32)           { f.view.ToggleExpanded(pid) }
func (f *fakeTelemetry) View() sampler.ProcessView          { return f.view.Clone() }

var _ Telemetry = (*coordinator.Coordinator)(nil)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func TestTickDrivesCoordinator(t *testing.T) {
	tel := newFakeTelemetry()
	m := New(tel, time.Second)
	_, cmd := m.Update(tickMsg(time.Now()))
	if tel.ticks != 1 {
		t.Fatalf("expected one tick, got %d", tel.ticks)
	}
	if cmd == nil {
		t.Fatal("tick must schedule the next frame")
	}
}

func TestScreenSwitching(t *testing.T) {
	m := New(newFakeTelemetry(), 0)
	if m.screen != ScreenDashboard {
		t.Fatalf("expected dashboard first, got %v", m.screen)
	}
	for k, want := range map[string]Screen{"2": ScreenProcesses, "3": ScreenBattery, "4": ScreenGPU, "1": ScreenDashboard} {
		press(m, k)
		if m.screen != want {
			t.Errorf("key %s: expected %v, got %v", k, want, m.screen)
		}
	}
}

func TestSortKeysOnlyInProcessView(t *testing.T) {
	tel := newFakeTelemetry()
	m := New(tel, 0)

	press(m, "c")
	if tel.view.Column != sampler.SortMemory {
		t.Fatal("sort key handled outside the process view")
	}

	press(m, "2", "c")
	if tel.view.Column != sampler.SortCPU || tel.view.Order != sampler.Descending {
		t.Fatalf("expected cpu descending, got %v %v", tel.view.Column, tel.view.Order)
	}
	press(m, "c")
	if tel.view.Order != sampler.Ascending {
		t.Fatal("second press must flip the order")
	}
}

func TestCursorAndExpand(t *testing.T) {
	tel := newFakeTelemetry()
	m := New(tel, 0)
	press(m, "2", "down", "j", "j", "j")
	if m.cursor != 2 {
		t.Fatalf("cursor must stop at the last row, got %d", m.cursor)
	}
	press(m, "k", "enter")
	if !tel.view.IsExpanded(20) {
		t.Fatal("enter must expand the selected pid")
	}
	out := m.View()
	if !strings.Contains(out, "beta-worker") {
		t.Errorf("expanded children not rendered:\n%s", out)
	}
	press(m, "enter")
	if tel.view.IsExpanded(20) {
		t.Fatal("second enter must collapse")
	}
}

func TestQuit(t *testing.T) {
	m := New(newFakeTelemetry(), 0)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q must quit")
	}
}

func TestMissingHardwareScreens(t *testing.T) {
	m := New(newFakeTelemetry(), 0)
	press(m, "3")
	if !strings.Contains(m.View(), "NO BATTERY DETECTED") {
		t.Error("battery screen must report a missing battery")
	}
	press(m, "4")
	if !strings.Contains(m.View(), "NO GPU DETECTED") {
		t.Error("gpu screen must report a missing gpu")
	}
}

func TestStardate(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 6, 20, 0, 30, 0, 0, time.UTC), "24172.0"},
		{time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC), "24172.5"},
		{time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), "25001.3"},
		{time.Date(2024, 6, 20, 23, 59, 0, 0, time.UTC), "24172.9"},
	}
	for _, c := range cases {
		if got := stardate(c.t); got != c.want {
			t.Errorf("stardate(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestHelpers(t *testing.T) {
	if got := truncate("firefox-content", 8); got != "firefox…" {
		t.Errorf("truncate = %q", got)
	}
	if got := mountLabel("/run/media/usb-stick"); got != "..sb-stick" {
		t.Errorf("mountLabel = %q", got)
	}
	if diskColor(0.3) != green || diskColor(0.7) != yellow || diskColor(0.95) != red {
		t.Error("unexpected disk color thresholds")
	}
	if clockString(nil) != "N/A" {
		t.Error("absent clock must render N/A")
	}
}
