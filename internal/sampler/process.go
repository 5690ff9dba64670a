package sampler

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Dicklesworthstone/lcarsmon/internal/model"
)

// SortColumn selects the process table ordering.
type SortColumn int

const (
	SortPID SortColumn = iota
	SortName
	SortUser
	SortCPU
	SortMemory
)

func (c SortColumn) String() string {
	switch c {
	case SortPID:
		return "pid"
	case SortName:
		return "name"
	case SortUser:
		return "user"
	case SortCPU:
		return "cpu"
	case SortMemory:
		return "memory"
	}
	return fmt.Sprintf("SortColumn(%d)", int(c))
}

// ParseSortColumn accepts the names produced by SortColumn.String, plus
// "mem" as shorthand for memory.
func ParseSortColumn(s string) (SortColumn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pid":
		return SortPID, nil
	case "name":
		return SortName, nil
	case "user":
		return SortUser, nil
	case "cpu":
		return SortCPU, nil
	case "memory", "mem":
		return SortMemory, nil
	}
	return 0, fmt.Errorf("unknown sort column %q", s)
}

// SortOrder is the direction applied after an ascending sort.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// DefaultProcessLimit is the number of rows List returns by default.
const DefaultProcessLimit = 50

// ProcessView is the user-controlled table state: sort column and
// direction, row limit and the set of expanded parent pids.
type ProcessView struct {
	Column   SortColumn
	Order    SortOrder
	Limit    int
	expanded map[int32]struct{}
}

// DefaultProcessView sorts by memory, biggest first, 50 rows.
func DefaultProcessView() ProcessView {
	return ProcessView{
		Column:   SortMemory,
		Order:    Descending,
		Limit:    DefaultProcessLimit,
		expanded: make(map[int32]struct{}),
	}
}

// ToggleSort flips the direction when col is already active; otherwise it
// switches to col, biggest first.
func (v *ProcessView) ToggleSort(col SortColumn) {
	if v.Column == col {
		if v.Order == Descending {
			v.Order = Ascending
		} else {
			v.Order = Descending
		}
		return
	}
	v.Column = col
	v.Order = Descending
}

// ToggleExpanded adds pid to the expanded set, or removes it if present.
func (v *ProcessView) ToggleExpanded(pid int32) {
	if v.expanded == nil {
		v.expanded = make(map[int32]struct{})
	}
	if _, ok := v.expanded[pid]; ok {
		delete(v.expanded, pid)
		return
	}
	v.expanded[pid] = struct{}{}
}

// IsExpanded reports whether pid's children are shown.
func (v ProcessView) IsExpanded(pid int32) bool {
	_, ok := v.expanded[pid]
	return ok
}

// Clone copies the view including its expanded set.
func (v ProcessView) Clone() ProcessView {
	out := v
	out.expanded = make(map[int32]struct{}, len(v.expanded))
	for pid := range v.expanded {
		out.expanded[pid] = struct{}{}
	}
	return out
}

// Catalog lists processes on demand. Unlike the pollers it is not
// time-gated: every List reads the live process table.
type Catalog struct {
	src Source
	log *slog.Logger

	// table is the last full sample List took; ChildrenOf reads it so a
	// frame's expanded rows share one scan.
	table   []model.Process
	sampled bool
}

// NewCatalog builds a Catalog over src.
func NewCatalog(src Source, opts ...Option) *Catalog {
	st := newSettings(0, opts)
	return &Catalog{src: src, log: st.log}
}

func (c *Catalog) sample() []model.Process {
	procs, err := c.src.Processes()
	if err != nil {
		c.log.Debug("process table unavailable", "error", err)
		procs = nil
	}
	c.table, c.sampled = procs, true
	return procs
}

// List resamples the table and returns at most view.Limit processes in the
// view's order.
func (c *Catalog) List(view ProcessView) []model.Process {
	procs := slices.Clone(c.sample())
	SortProcesses(procs, view.Column, view.Order)
	if view.Limit >= 0 && len(procs) > view.Limit {
		procs = procs[:view.Limit]
	}
	return procs
}

// ChildrenOf returns the direct children of pid, heaviest memory first,
// whatever the table's sort state. It reads the table from the last List
// and only samples when there is none. Equal memory ties come out in
// descending pid order.
func (c *Catalog) ChildrenOf(pid int32) []model.Process {
	table := c.table
	if !c.sampled {
		table = c.sample()
	}
	var children []model.Process
	for _, p := range table {
		if p.PPID == pid && p.PID != pid {
			children = append(children, p)
		}
	}
	SortProcesses(children, SortMemory, Descending)
	return children
}

// SortProcesses sorts ascending by col from a pid-ordered base, then
// reverses for Descending, so ties keep one canonical relative order.
func SortProcesses(procs []model.Process, col SortColumn, order SortOrder) {
	slices.SortFunc(procs, func(a, b model.Process) int { return cmp.Compare(a.PID, b.PID) })
	if col != SortPID {
		slices.SortStableFunc(procs, compareBy(col))
	}
	if order == Descending {
		slices.Reverse(procs)
	}
}

func compareBy(col SortColumn) func(a, b model.Process) int {
	switch col {
	case SortName:
		return func(a, b model.Process) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortUser:
		return func(a, b model.Process) int {
			return strings.Compare(strings.ToLower(a.User), strings.ToLower(b.User))
		}
	case SortCPU:
		return func(a, b model.Process) int { return compareFloat(a.CPU, b.CPU) }
	case SortMemory:
		return func(a, b model.Process) int { return cmp.Compare(a.Memory, b.Memory) }
	}
	return func(a, b model.Process) int { return cmp.Compare(a.PID, b.PID) }
}

// compareFloat treats NaN as equal to everything.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
