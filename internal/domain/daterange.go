package domain

// DateWindow is an inclusive [Start, End] range in epoch milliseconds.
type DateWindow struct {
	Start int64
	End   int64
}

// Contains returns true if ms falls within the window, bounds included.
func (w DateWindow) Contains(ms int64) bool {
	return ms >= w.Start && ms <= w.End
}

// InDailyView reports whether a task belongs in the daily view for the window.
//
// Cancelled tasks never appear. A task appears when its effective start falls
// inside the window, or when it started before the window and is still
// assigned or started, so overdue work keeps surfacing until resolved.
func (w DateWindow) InDailyView(t *Task) bool {
	if t.Status == StatusCancelled {
		return false
	}
	start := t.EffectiveStart()
	if w.Contains(start) {
		return true
	}
	return start < w.Start && t.Status.IsActive()
}

// FilterDailyView returns the tasks that belong in the daily view, preserving input order.
func (w DateWindow) FilterDailyView(tasks []*Task) []*Task {
	result := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if w.InDailyView(t) {
			result = append(result, t)
		}
	}
	return result
}
