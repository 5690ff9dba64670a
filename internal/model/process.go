package model

// Process is one row of the process table, rebuilt on every query.
type Process struct {
	PID    int32   `json:"pid"`
	PPID   int32   `json:"ppid"`
	Name   string  `json:"name"`
	User   string  `json:"user"`
	CPU    float64 `json:"cpu"`    // percent of one core
	Memory uint64  `json:"memory"` // resident bytes
}

// Report is the one-shot dump of every poller's latest state.
type Report struct {
	Host      Host      `json:"host"`
	CPUInfo   CPUInfo   `json:"cpu_info"`
	Battery   Battery   `json:"battery"`
	GPU       GPU       `json:"gpu"`
	Processes []Process `json:"processes"`
}
