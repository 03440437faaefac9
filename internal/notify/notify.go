// Package notify defines the transient messages shown after user actions.
package notify

import "fmt"

type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
)

type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

func (n Notification) IsZero() bool {
	return n.Title == "" && n.Message == ""
}

func (n Notification) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Message)
}

func Created(title string) Notification {
	return Notification{Title: "Tarea creada", Message: fmt.Sprintf("\"%s\" ha sido agregada exitosamente", title), Severity: Success}
}

func Updated() Notification {
	return Notification{Title: "Tarea actualizada", Message: "Los cambios han sido guardados", Severity: Success}
}

func Toggled(completed bool) Notification {
	msg := "Tarea reabierta"
	if completed {
		msg = "¡Tarea completada!"
	}
	return Notification{Title: "Tarea actualizada", Message: msg, Severity: Success}
}

func Deleted() Notification {
	return Notification{Title: "Tarea eliminada", Message: "La tarea ha sido eliminada", Severity: Success}
}

func Incomplete() Notification {
	return Notification{Title: "Campos incompletos", Message: "Por favor completa todos los campos", Severity: Warning}
}

func Welcome(name string) Notification {
	return Notification{Title: "¡Bienvenido!", Message: fmt.Sprintf("Hola %s, ¡comencemos a organizar tus tareas!", name), Severity: Success}
}

func Reminder(title string) Notification {
	return Notification{Title: "Recordatorio", Message: fmt.Sprintf("La tarea \"%s\" vence hoy", title), Severity: Warning}
}
