package model

// statusProgress maps a project status to its displayed percent-complete.
// This is derived state: it must be recomputed from Status wherever shown,
// never stored.
var statusProgress = map[string]int{
	ProjectStatusCompleted:  100,
	ProjectStatusReview:     90,
	ProjectStatusInProgress: 60,
	ProjectStatusOnHold:     30,
}

// ProgressForStatus returns the percent-complete for a project status.
// Unrecognized statuses (including "pending") report 10.
func ProgressForStatus(status string) int {
	if p, ok := statusProgress[status]; ok {
		return p
	}
	return 10
}
