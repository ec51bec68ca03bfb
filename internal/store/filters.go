package store

import "github.com/nissyi-gh/taskdeck/internal/filter"

// SetSearchQuery records the raw, undebounced search text.
func (s *TaskStore) SetSearchQuery(q string) {
	s.mu.Lock()
	s.search = q
	s.mu.Unlock()
}

// SearchQuery returns the raw search text.
func (s *TaskStore) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

func (s *TaskStore) SetStatusFilter(f filter.StatusFilter) {
	s.mu.Lock()
	s.status = f
	s.mu.Unlock()
}

func (s *TaskStore) SetPriorityFilter(f filter.PriorityFilter) {
	s.mu.Lock()
	s.priority = f
	s.mu.Unlock()
}

// Filters returns the current view state. Query holds the raw search text.
func (s *TaskStore) Filters() filter.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Criteria{Query: s.search, Status: s.status, Priority: s.priority}
}

// ClearFilters resets search and both filters to "all".
func (s *TaskStore) ClearFilters() {
	s.mu.Lock()
	s.search = ""
	s.status = filter.StatusAll
	s.priority = filter.PriorityAll
	s.mu.Unlock()
}
