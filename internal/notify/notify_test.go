package notify

import "testing"

func TestCatalog(t *testing.T) {
	tests := []struct {
		name string
		got  Notification
		want Notification
	}{
		{"created", Created("Pay rent"), Notification{"Tarea creada", `"Pay rent" ha sido agregada exitosamente`, Success}},
		{"created keeps quotes", Created(`Leer "Rayuela"`), Notification{"Tarea creada", `"Leer "Rayuela"" ha sido agregada exitosamente`, Success}},
		{"created keeps accents", Created("Café"), Notification{"Tarea creada", `"Café" ha sido agregada exitosamente`, Success}},
		{"updated", Updated(), Notification{"Tarea actualizada", "Los cambios han sido guardados", Success}},
		{"completed", Toggled(true), Notification{"Tarea actualizada", "¡Tarea completada!", Success}},
		{"reopened", Toggled(false), Notification{"Tarea actualizada", "Tarea reabierta", Success}},
		{"deleted", Deleted(), Notification{"Tarea eliminada", "La tarea ha sido eliminada", Success}},
		{"incomplete", Incomplete(), Notification{"Campos incompletos", "Por favor completa todos los campos", Warning}},
		{"welcome", Welcome("Ana"), Notification{"¡Bienvenido!", "Hola Ana, ¡comencemos a organizar tus tareas!", Success}},
		{"reminder", Reminder("Pay rent"), Notification{"Recordatorio", `La tarea "Pay rent" vence hoy`, Warning}},
		{"reminder keeps tab", Reminder("a\tb"), Notification{"Recordatorio", "La tarea \"a\tb\" vence hoy", Warning}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := Reminder(`Leer "Rayuela"`).String(); got != `Recordatorio: La tarea "Leer "Rayuela"" vence hoy` {
		t.Errorf("unexpected string %q", got)
	}
	if !(Notification{}).IsZero() || Deleted().IsZero() {
		t.Error("IsZero wrong")
	}
}
