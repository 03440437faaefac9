package task

// EditState tracks whether the form edits an existing task or creates one.
// The zero value is idle.
type EditState struct {
	id      int64
	editing bool
}

// Begin enters editing(id), replacing any task already being edited.
func (e *EditState) Begin(id int64) {
	e.id = id
	e.editing = true
}

func (e *EditState) Cancel() {
	*e = EditState{}
}

// Finish returns to idle after a successful update.
func (e *EditState) Finish() {
	*e = EditState{}
}

func (e EditState) Target() (int64, bool) {
	return e.id, e.editing
}

func (e EditState) Editing() bool {
	return e.editing
}
