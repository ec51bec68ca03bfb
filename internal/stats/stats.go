package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

// Stats summarizes a task collection.
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	Overdue        int
	CompletionRate int // percent, 0-100
}

// Calculate reduces tasks into Stats. Callers pass the full collection, not a
// filtered view.
func Calculate(tasks []model.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusPending:
			s.Pending++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("total %d · completed %d · pending %d · overdue %d · %d%% done",
		s.Total, s.Completed, s.Pending, s.Overdue, s.CompletionRate)
}
