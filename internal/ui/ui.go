package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tareas/internal/app"
	"tareas/internal/config"
	"tareas/internal/notify"
	"tareas/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeWelcome
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldDate
	fieldCount
)

type clearNoteMsg struct{}

type Model struct {
	session    *app.Session
	cfg        config.Config
	mode       mode
	cursor     int
	inputs     []textinput.Model
	field      int
	nameInput  textinput.Model
	note       notify.Notification
	confirmDel bool
	pendingDel *task.Task
}

func Run(session *app.Session, cfg config.Config) error {
	program := tea.NewProgram(New(session, cfg))
	_, err := program.Run()
	return err
}

// New builds the initial model. Start-up reminders are shown in order, so
// the last one is what remains visible.
func New(session *app.Session, cfg config.Config) Model {
	m := Model{
		session:   session,
		cfg:       cfg,
		mode:      modeList,
		inputs:    newFormInputs(),
		nameInput: newInput("Tu nombre", 64),
	}
	for _, n := range session.Reminders() {
		m.note = n
	}
	if session.NeedsWelcome() {
		m.mode = modeWelcome
		m.nameInput.Focus()
	}
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func newFormInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	inputs[fieldTitle] = newInput("Título", 256)
	inputs[fieldDescription] = newInput("Descripción", 1024)
	inputs[fieldCategory] = newInput("Categoría", 64)
	inputs[fieldDate] = newInput("YYYY-MM-DD", 10)
	return inputs
}

func (m Model) Init() tea.Cmd {
	if m.note.IsZero() {
		return nil
	}
	return m.clearNoteAfter()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.mode == modeWelcome:
			return m.updateWelcome(msg)
		case m.mode == modeForm:
			return m.updateForm(msg)
		case m.confirmDel:
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateList(msg.String())
	case clearNoteMsg:
		m.note = notify.Notification{}
	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
		m.nameInput.Width = msg.Width - 20
	}
	return m, nil
}

// notify replaces the visible notification and schedules its reset. Earlier
// timers are not cancelled; whichever fires last clears the line.
func (m Model) notify(n notify.Notification) (Model, tea.Cmd) {
	if n.IsZero() {
		return m, nil
	}
	m.note = n
	return m, m.clearNoteAfter()
}

func (m Model) clearNoteAfter() tea.Cmd {
	return tea.Tick(m.cfg.NotificationDuration(), func(time.Time) tea.Msg {
		return clearNoteMsg{}
	})
}

func (m Model) updateWelcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != m.cfg.Keys.Confirm {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	n, err := m.session.SetUserName(m.nameInput.Value())
	if errors.Is(err, task.ErrValidation) {
		return m, nil
	}
	if err != nil {
		return m.notify(failed(err))
	}
	m.nameInput.Blur()
	m.mode = modeList
	return m.notify(n)
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case m.cfg.Keys.Add:
		m.session.CancelEdit()
		return m.openForm(task.Fields{})
	case m.cfg.Keys.FilterAll:
		return m.setFilter(task.FilterAll)
	case m.cfg.Keys.FilterInProgress:
		return m.setFilter(task.FilterInProgress)
	case m.cfg.Keys.FilterCompleted:
		return m.setFilter(task.FilterCompleted)
	case m.cfg.Keys.Toggle:
		if len(rows) == 0 {
			return m, nil
		}
		n, err := m.session.Toggle(rows[m.cursor].ID)
		if err != nil {
			return m.notify(failed(err))
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		return m.notify(n)
	case m.cfg.Keys.Delete:
		if len(rows) == 0 {
			return m, nil
		}
		t := rows[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
	case m.cfg.Keys.Edit:
		if len(rows) == 0 {
			return m, nil
		}
		fields, err := m.session.BeginEdit(rows[m.cursor].ID)
		if err != nil {
			return m.notify(failed(err))
		}
		return m.openForm(fields)
	}
	return m, nil
}

func (m Model) setFilter(f task.Filter) (tea.Model, tea.Cmd) {
	m.session.SetFilter(f)
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		id := m.pendingDel.ID
		m.confirmDel = false
		m.pendingDel = nil
		n, err := m.session.Delete(id)
		if err != nil {
			return m.notify(failed(err))
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		return m.notify(n)
	default:
		return m, nil
	}
}

func (m Model) openForm(f task.Fields) (tea.Model, tea.Cmd) {
	values := []string{fieldTitle: f.Title, fieldDescription: f.Description, fieldCategory: f.Category, fieldDate: f.Date}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.mode = modeForm
	m.field = fieldTitle
	return m, m.inputs[m.field].Focus()
}

func (m Model) closeForm() Model {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.mode = modeList
	return m
}

func (m Model) focusField(idx int) (tea.Model, tea.Cmd) {
	m.inputs[m.field].Blur()
	m.field = wrapIndex(idx, fieldCount)
	return m, m.inputs[m.field].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		m.session.CancelEdit()
		return m.closeForm(), nil
	case m.cfg.Keys.NextField, "down":
		return m.focusField(m.field + 1)
	case m.cfg.Keys.PrevField, "up":
		return m.focusField(m.field - 1)
	case m.cfg.Keys.Confirm:
		if m.field < fieldCount-1 {
			return m.focusField(m.field + 1)
		}
		return m.submit()
	default:
		var cmd tea.Cmd
		m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
		return m, cmd
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	n, err := m.session.Submit(app.Form{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Category:    m.inputs[fieldCategory].Value(),
		Date:        m.inputs[fieldDate].Value(),
	})
	if errors.Is(err, task.ErrValidation) {
		return m.notify(n)
	}
	m = m.closeForm()
	if err != nil {
		return m.notify(failed(err))
	}
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m.notify(n)
}

// rows is the selectable sequence: the in-progress list followed by the
// completed list, as rendered.
func (m Model) rows() []task.Task {
	inProgress, completed := m.session.Visible()
	return append(inProgress, completed...)
}

func failed(err error) notify.Notification {
	return notify.Notification{Title: "Error", Message: err.Error(), Severity: notify.Warning}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s mover • %s añadir • %s editar • %s completar • %s eliminar • %s/%s/%s filtro • %s salir",
		k.Up, k.Down, k.Add, k.Edit, keyLabel(k.Toggle), k.Delete, k.FilterAll, k.FilterInProgress, k.FilterCompleted, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "espacio"
	}
	return strings.TrimSpace(k)
}
