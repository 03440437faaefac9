package task

import "time"

// Reminder is emitted for an incomplete task due today.
type Reminder struct {
	TaskID int64
	Title  string
	Date   string
}

// DueToday returns one reminder per incomplete task whose date is today's
// local calendar date. Reminders are not deduplicated.
func DueToday(tasks []Task, today time.Time) []Reminder {
	day := today.Format(DateLayout)
	var out []Reminder
	for _, t := range tasks {
		if t.Completed || t.Date != day {
			continue
		}
		out = append(out, Reminder{TaskID: t.ID, Title: t.Title, Date: t.Date})
	}
	return out
}
