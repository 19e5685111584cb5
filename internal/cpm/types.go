package cpm

// Result holds the complete critical path analysis.
type Result struct {
	Tasks         map[string]*TaskSchedule
	CriticalPath  []string // zero-slack task IDs in topological order
	TotalDuration int
	TopoOrder     []string
}

// TaskSchedule holds the timing info for a single task under the
// unit-duration model.
type TaskSchedule struct {
	TaskID     string
	ES, EF     int // earliest start/finish
	LS, LF     int // latest start/finish
	Slack      int
	IsCritical bool
}
