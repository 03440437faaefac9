// Package storage persists the task collection and the user's display name
// in a string-keyed store.
package storage

import (
	"encoding/json"
	"io"
	"log"

	"tareas/internal/task"
)

const (
	TasksKey    = "tasks"
	UserNameKey = "userName"
)

// Adapter serializes session state into a KV.
type Adapter struct {
	kv  KV
	log *log.Logger
}

// NewAdapter wraps kv. A nil logger discards recovery messages.
func NewAdapter(kv KV, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Adapter{kv: kv, log: logger}
}

// SaveTasks writes the full collection, replacing whatever was stored.
func (a *Adapter) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return a.kv.Set(TasksKey, string(data))
}

// LoadTasks never fails: a missing key, unreadable store or malformed
// content all yield an empty collection.
func (a *Adapter) LoadTasks() []task.Task {
	raw, ok, err := a.kv.Get(TasksKey)
	if err != nil {
		a.log.Printf("load tasks: %v; starting empty", err)
		return []task.Task{}
	}
	if !ok {
		return []task.Task{}
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		a.log.Printf("load tasks: malformed %q value: %v; starting empty", TasksKey, err)
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks
}

func (a *Adapter) SaveUserName(name string) error {
	return a.kv.Set(UserNameKey, name)
}

// LoadUserName reports false when no name has been stored yet.
func (a *Adapter) LoadUserName() (string, bool) {
	name, ok, err := a.kv.Get(UserNameKey)
	if err != nil {
		a.log.Printf("load user name: %v", err)
		return "", false
	}
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
