package task

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll        Filter = "all"
	FilterInProgress Filter = "in-progress"
	FilterCompleted  Filter = "completed"
)

// Filters lists the modes in the order the filter buttons show them.
func Filters() []Filter {
	return []Filter{FilterAll, FilterInProgress, FilterCompleted}
}

func ParseFilter(v string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(v))); f {
	case FilterAll, FilterInProgress, FilterCompleted:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, in-progress or completed)", v)
	}
}

// Project returns the tasks selected by f in input order. Unknown filters
// select everything.
func Project(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterInProgress:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Split partitions tasks into the in-progress and completed lists.
func Split(tasks []Task) (inProgress, completed []Task) {
	return Project(tasks, FilterInProgress), Project(tasks, FilterCompleted)
}

type Summary struct {
	Total      int
	InProgress int
	Completed  int
}

func Stats(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.InProgress = s.Total - s.Completed
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("Total: %d | En progreso: %d | Completadas: %d", s.Total, s.InProgress, s.Completed)
}
