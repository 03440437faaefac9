package task

import (
	"fmt"
	"time"
)

// Persister receives the full collection after every mutation.
type Persister interface {
	SaveTasks(tasks []Task) error
}

// Store is the in-memory task collection. It is owned by a single session
// and is not safe for concurrent use.
type Store struct {
	tasks   []Task
	persist Persister
	now     func() time.Time
	lastID  int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now for id and createdAt assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore takes ownership of a copy of initial.
func NewStore(initial []Task, p Persister, opts ...Option) *Store {
	s := &Store{
		tasks:   append([]Task(nil), initial...),
		persist: p,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

func (s *Store) Create(f Fields) (Task, error) {
	f, err := f.Validate()
	if err != nil {
		return Task{}, err
	}
	now := s.now()
	t := Task{
		ID:        s.nextID(now),
		CreatedAt: now.UTC().Format(CreatedAtLayout),
	}
	t.apply(f)

	next := make([]Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, t)
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	s.lastID = t.ID
	return t, nil
}

func (s *Store) Update(id int64, f Fields) (Task, error) {
	f, err := f.Validate()
	if err != nil {
		return Task{}, err
	}
	return s.modify(id, func(t *Task) { t.apply(f) })
}

func (s *Store) ToggleComplete(id int64) (Task, error) {
	return s.modify(id, func(t *Task) { t.Completed = !t.Completed })
}

// Delete removes the task with id. Deleting an absent id is a no-op.
func (s *Store) Delete(id int64) error {
	idx := s.index(id)
	if idx < 0 {
		return nil
	}
	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	return s.commit(next)
}

// All returns a snapshot in insertion order.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id int64) (Task, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) modify(id int64, fn func(*Task)) (Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	next := append([]Task(nil), s.tasks...)
	fn(&next[idx])
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	return next[idx], nil
}

// commit persists next and only then makes it the current collection.
func (s *Store) commit(next []Task) error {
	if s.persist != nil {
		if err := s.persist.SaveTasks(next); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
	}
	s.tasks = next
	return nil
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	return id
}
