package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/storage"
)

// TaskStore owns the task collection and the list view's filter state.
// Tasks are kept most recent first. Every successful mutation writes the whole
// collection back to storage; a failed write is logged and the in-memory
// state stays authoritative.
type TaskStore struct {
	mu       sync.RWMutex
	kv       storage.KV
	tasks    []model.Task
	search   string
	status   filter.StatusFilter
	priority filter.PriorityFilter
	now      func() time.Time
	newID    func() string
}

// NewTaskStore loads the persisted collection from kv. Unreadable or
// malformed data is discarded and the store starts empty.
func NewTaskStore(kv storage.KV) *TaskStore {
	s := &TaskStore{
		kv:       kv,
		status:   filter.StatusAll,
		priority: filter.PriorityAll,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	s.tasks = s.load()
	return s
}

func (s *TaskStore) load() []model.Task {
	data, ok, err := s.kv.Get(storage.KeyTasks)
	if err != nil {
		log.Printf("[store] load tasks: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	tasks, err := decodeTasks(data)
	if err != nil {
		log.Printf("[store] discarding malformed task collection: %v", err)
		if err := s.kv.Remove(storage.KeyTasks); err != nil {
			log.Printf("[store] remove malformed tasks: %v", err)
		}
		return nil
	}
	log.Printf("[store] loaded %d tasks", len(tasks))
	return tasks
}

// decodeTasks accepts only a JSON array; any other shape is malformed.
func decodeTasks(data []byte) ([]model.Task, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("task collection is not an array")
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// persist must be called with s.mu held.
func (s *TaskStore) persist() {
	tasks := s.tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		log.Printf("[store] encode tasks: %v", err)
		return
	}
	if err := s.kv.Put(storage.KeyTasks, data); err != nil {
		log.Printf("[store] save tasks: %v", err)
	}
}

// Add validates d and inserts a new pending task at the front of the list.
// The returned error is a model.ValidationErrors.
func (s *TaskStore) Add(d model.Draft) (model.Task, error) {
	if errs := model.Validate(d); errs != nil {
		return model.Task{}, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      model.StatusPending,
		DueDate:     d.DueDate,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append([]model.Task{t}, s.tasks...)
	s.persist()
	log.Printf("[store] added task %s", t.ID)
	return t, nil
}

// Update merges the fields present in p into the task with the given id and
// stamps UpdatedAt. Present fields are validated with the Add rules; on
// failure the task is left unchanged. An unknown id or an empty patch is a
// no-op.
func (s *TaskStore) Update(id string, p model.Patch) error {
	if errs := model.ValidatePatch(p); errs != nil {
		return errs
	}
	if p.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	now := s.now().UTC()
	t := s.tasks[i]
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil && *p.Status != t.Status {
		setStatus(&t, *p.Status, now)
	}
	t.UpdatedAt = &now
	s.tasks[i] = t
	s.persist()
	log.Printf("[store] updated task %s", id)
	return nil
}

// Delete removes the task with the given id, if present.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persist()
	log.Printf("[store] deleted task %s", id)
}

// ToggleStatus flips a task between pending and completed.
func (s *TaskStore) ToggleStatus(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	next := model.StatusCompleted
	if s.tasks[i].Completed() {
		next = model.StatusPending
	}
	setStatus(&s.tasks[i], next, s.now().UTC())
	s.persist()
	log.Printf("[store] task %s is now %s", id, next)
}

func setStatus(t *model.Task, st model.Status, now time.Time) {
	t.Status = st
	if st == model.StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// Get returns a copy of the task with the given id.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of the full, unfiltered collection.
func (s *TaskStore) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Query returns the tasks matching search together with the store's current
// status and priority filters. search is the debounced text, not the raw
// query held by SetSearchQuery.
func (s *TaskStore) Query(search string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filter.Apply(s.tasks, filter.Criteria{
		Query:    search,
		Status:   s.status,
		Priority: s.priority,
	})
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
