// Package output formats tasks for the command line.
package output

import (
	"fmt"
	"io"
	"strings"

	"tareas/internal/task"
)

const ListSeparator = "------------"

// FormatTask writes one task line:
// "  [ ] {ID}  {TITLE}  #{CATEGORY}  Vence: {DATE}".
func FormatTask(w io.Writer, t task.Task) {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	line := fmt.Sprintf("  %s %d  %s", checkbox, t.ID, normalize(t.Title))
	if t.Category != "" {
		line += "  #" + normalize(t.Category)
	}
	line += "  Vence: " + t.Date
	fmt.Fprintln(w, line)
}

func FormatSection(w io.Writer, title string, tasks []task.Task) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  (sin tareas)")
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatLists writes the in-progress and completed lists followed by the
// stats line.
func FormatLists(w io.Writer, inProgress, completed []task.Task, stats task.Summary) {
	FormatSection(w, "En progreso", inProgress)
	FormatSection(w, "Completadas", completed)
	fmt.Fprintln(w, stats.String())
}

// normalize keeps each task on one line.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
