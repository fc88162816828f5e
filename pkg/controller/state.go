package controller

// FormMode is the state of the create/edit form.
type FormMode int

// Form modes.
const (
	Closed FormMode = iota
	CreateMode
	EditMode
)

func (m FormMode) String() string {
	switch m {
	case Closed:
		return "closed"
	case CreateMode:
		return "create"
	case EditMode:
		return "edit"
	default:
		return "unknown"
	}
}

// Open reports whether the form is visible.
func (m FormMode) Open() bool {
	return m == CreateMode || m == EditMode
}

// FormState mirrors the form fields.
type FormState struct {
	// EditingID is zero when the next submit creates a species.
	EditingID   int64
	Name        string
	Description string
}

// Editing reports whether the next submit updates an existing species.
func (s FormState) Editing() bool {
	return s.EditingID != 0
}
