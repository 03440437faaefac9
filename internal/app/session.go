// Package app turns user commands into task store calls and keeps the
// per-session view state: filter, edit mode and user name.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tareas/internal/notify"
	"tareas/internal/task"
)

// Backend is the persisted state a session reads at start and writes to.
type Backend interface {
	task.Persister
	LoadTasks() []task.Task
	SaveUserName(name string) error
	LoadUserName() (string, bool)
}

// Form is the content of the add/edit form.
type Form = task.Fields

// Session is created once per run. It is not safe for concurrent use.
type Session struct {
	backend   Backend
	store     *task.Store
	now       func() time.Time
	filter    task.Filter
	edit      task.EditState
	userName  string
	reminders []task.Reminder
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func WithFilter(f task.Filter) Option {
	return func(s *Session) {
		s.filter = f
	}
}

// NewSession loads persisted state and runs the deadline check once.
func NewSession(b Backend, opts ...Option) *Session {
	s := &Session{
		backend: b,
		now:     time.Now,
		filter:  task.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = task.NewStore(b.LoadTasks(), b, task.WithClock(s.now))
	s.userName, _ = b.LoadUserName()
	s.reminders = task.DueToday(s.store.All(), s.now())
	return s
}

// Submit creates a task, or updates the one being edited.
func (s *Session) Submit(f Form) (notify.Notification, error) {
	if id, editing := s.edit.Target(); editing {
		if _, err := s.store.Update(id, f); err != nil {
			if !errors.Is(err, task.ErrValidation) {
				s.edit.Cancel()
			}
			return failure(err), err
		}
		s.edit.Finish()
		return notify.Updated(), nil
	}
	t, err := s.store.Create(f)
	if err != nil {
		return failure(err), err
	}
	return notify.Created(t.Title), nil
}

// BeginEdit switches to editing id and returns the form pre-filled with the
// task's current values.
func (s *Session) BeginEdit(id int64) (Form, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return Form{}, fmt.Errorf("edit task %d: %w", id, task.ErrNotFound)
	}
	s.edit.Begin(id)
	return t.Fields(), nil
}

func (s *Session) CancelEdit() {
	s.edit.Cancel()
}

// Editing reports the id being edited, if any.
func (s *Session) Editing() (int64, bool) {
	return s.edit.Target()
}

func (s *Session) Toggle(id int64) (notify.Notification, error) {
	t, err := s.store.ToggleComplete(id)
	if err != nil {
		return notify.Notification{}, err
	}
	return notify.Toggled(t.Completed), nil
}

func (s *Session) Delete(id int64) (notify.Notification, error) {
	if err := s.store.Delete(id); err != nil {
		return notify.Notification{}, err
	}
	if editID, editing := s.edit.Target(); editing && editID == id {
		s.edit.Cancel()
	}
	return notify.Deleted(), nil
}

func (s *Session) SetFilter(f task.Filter) {
	s.filter = f
}

func (s *Session) Filter() task.Filter {
	return s.filter
}

// SetUserName stores the welcome name. Blank names are ignored.
func (s *Session) SetUserName(name string) (notify.Notification, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return notify.Notification{}, &task.ValidationError{Field: "name", Reason: "empty"}
	}
	if err := s.backend.SaveUserName(name); err != nil {
		return notify.Notification{}, err
	}
	s.userName = name
	return notify.Welcome(name), nil
}

func (s *Session) UserName() string {
	return s.userName
}

// NeedsWelcome is true until a user name has been stored.
func (s *Session) NeedsWelcome() bool {
	return s.userName == ""
}

// Reminders returns the start-up reminders, one per due-today task.
func (s *Session) Reminders() []notify.Notification {
	out := make([]notify.Notification, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, notify.Reminder(r.Title))
	}
	return out
}

func (s *Session) Tasks() []task.Task {
	return s.store.All()
}

func (s *Session) Get(id int64) (task.Task, bool) {
	return s.store.Get(id)
}

// Visible applies the current filter and splits the result into the
// in-progress and completed lists.
func (s *Session) Visible() (inProgress, completed []task.Task) {
	return task.Split(task.Project(s.store.All(), s.filter))
}

func (s *Session) Stats() task.Summary {
	return task.Stats(s.store.All())
}

func (s *Session) Now() time.Time {
	return s.now()
}

func failure(err error) notify.Notification {
	if errors.Is(err, task.ErrValidation) {
		return notify.Incomplete()
	}
	return notify.Notification{}
}
