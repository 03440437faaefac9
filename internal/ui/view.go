package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tareas/internal/notify"
	"tareas/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	activeFilter  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	completedText = lipgloss.NewStyle().Strikethrough(true)
	boxStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
)

var filterLabels = map[task.Filter]string{
	task.FilterAll:        "Todas",
	task.FilterInProgress: "En progreso",
	task.FilterCompleted:  "Completadas",
}

func (m Model) View() string {
	if m.mode == modeWelcome {
		return m.renderWelcome()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(m.renderLists())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.session.Stats().String()))
	b.WriteString("\n")

	if m.mode == modeForm {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}
	if m.confirmDel && m.pendingDel != nil {
		b.WriteString(fmt.Sprintf("\n¿Eliminar %q? y/n\n", m.pendingDel.Title))
	}

	b.WriteString("\n")
	b.WriteString(renderNote(m.note))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("¡Bienvenido!"))
	b.WriteString("\n\n¿Cómo te llamas?\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter para comenzar"))
	return boxStyle.Render(b.String())
}

func (m Model) renderHeader() string {
	greeting := "Mis tareas"
	if name := m.session.UserName(); name != "" {
		greeting = "Hola, " + name
	}
	return titleStyle.Render(greeting) + "  " + dimStyle.Render(spanishDate(m.session.Now()))
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, len(task.Filters()))
	for _, f := range task.Filters() {
		label := "[" + filterLabels[f] + "]"
		if f == m.session.Filter() {
			label = activeFilter.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderLists() string {
	inProgress, completed := m.session.Visible()
	var b strings.Builder
	b.WriteString(sectionStyle.Render("En progreso"))
	b.WriteString("\n")
	m.renderTasks(&b, inProgress, 0)
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Completadas"))
	b.WriteString("\n")
	m.renderTasks(&b, completed, len(inProgress))
	return b.String()
}

func (m Model) renderTasks(b *strings.Builder, tasks []task.Task, offset int) {
	if len(tasks) == 0 {
		b.WriteString(dimStyle.Render("  (sin tareas)"))
		b.WriteString("\n")
		return
	}
	for i, t := range tasks {
		cursor := " "
		if m.mode == modeList && m.cursor == offset+i {
			cursor = cursorStyle.Render(">")
		}
		checkbox := "[ ]"
		title := t.Title
		if t.Completed {
			checkbox = "[x]"
			title = completedText.Render(title)
		}
		line := fmt.Sprintf("%s %s %s", cursor, checkbox, title)
		if t.Category != "" {
			line += " " + dimStyle.Render("#"+t.Category)
		}
		line += " " + dimStyle.Render("Vence: "+t.Date)
		if id, editing := m.session.Editing(); editing && id == t.ID {
			line += " " + warningStyle.Render("(editando)")
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("      ")
		b.WriteString(dimStyle.Render(t.Description))
		b.WriteString("\n")
	}
}

func (m Model) renderForm() string {
	labels := []string{fieldTitle: "Título", fieldDescription: "Descripción", fieldCategory: "Categoría", fieldDate: "Fecha"}
	heading := "Añadir tarea"
	if _, editing := m.session.Editing(); editing {
		heading = "Actualizar tarea"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	for i, in := range m.inputs {
		prefix := " "
		if i == m.field {
			prefix = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-12s %s\n", prefix, labels[i], in.View()))
	}
	b.WriteString(dimStyle.Render("tab cambia de campo • enter en Fecha guarda • esc cancela"))
	return boxStyle.Render(b.String())
}

func renderNote(n notify.Notification) string {
	if n.IsZero() {
		return ""
	}
	text := n.Title + ": " + n.Message
	if n.Severity == notify.Warning {
		return warningStyle.Render(text)
	}
	return successStyle.Render(text)
}

var (
	weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	months   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// spanishDate formats t like "viernes, 10 de mayo de 2024".
func spanishDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}
