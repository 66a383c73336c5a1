package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_EffectiveStart(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	withStart := &Task{Created: created, StartDate: Millis(1000)}
	assert.Equal(t, int64(1000), withStart.EffectiveStart())

	withoutStart := &Task{Created: created}
	assert.Equal(t, created.UTC().UnixMilli(), withoutStart.EffectiveStart())
}

func TestDateWindow_InDailyView(t *testing.T) {
	window := DateWindow{Start: 1000, End: 2000}

	tests := []struct {
		name   string
		start  int64
		status Status
		want   bool
	}{
		{"inside, assigned", 1500, StatusAssigned, true},
		{"inside, completed", 1500, StatusCompleted, true},
		{"inside, cancelled", 1500, StatusCancelled, false},
		{"on start bound", 1000, StatusCompleted, true},
		{"on end bound", 2000, StatusStarted, true},
		{"before, assigned", 500, StatusAssigned, true},
		{"before, started", 500, StatusStarted, true},
		{"before, completed", 500, StatusCompleted, false},
		{"before, cancelled", 500, StatusCancelled, false},
		{"after, assigned", 2001, StatusAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{StartDate: Millis(tt.start), Status: tt.status}
			assert.Equal(t, tt.want, window.InDailyView(task))
		})
	}
}

func TestDateWindow_FilterDailyView_PreservesOrder(t *testing.T) {
	window := DateWindow{Start: 1000, End: 2000}
	tasks := []*Task{
		{ID: 3, StartDate: Millis(1200), Status: StatusAssigned},
		{ID: 1, StartDate: Millis(100), Status: StatusCompleted},
		{ID: 2, StartDate: Millis(100), Status: StatusStarted},
	}

	got := window.FilterDailyView(tasks)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
}
