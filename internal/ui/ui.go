// Package ui defines the typed contract between the request controller and
// whatever draws the page: named sections, each with an input field, a
// trigger and one result slot per outcome kind.
package ui

// Kind selects a result slot.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// Slot shows the outcome of the latest operation of a section.
type Slot interface {
	Show(message, link string)
	Clear()
}

// Field is an input with an attached inline validation error.
type Field interface {
	Value() string
	SetValue(value string)
	ShowError(message string)
	ClearError()
}

// Trigger starts an operation. A busy trigger is disabled and shows a progress label.
type Trigger interface {
	SetBusy(busy bool)
}

// Section groups an input with its trigger and result slots.
type Section struct {
	Name    string
	Input   Field
	Trigger Trigger
	Success Slot
	Error   Slot
}

// Slot returns the result slot for kind.
func (s *Section) Slot(kind Kind) Slot {
	if kind == Error {
		return s.Error
	}
	return s.Success
}

// ShowResult fills the slot of the given kind. An empty link shows the message alone.
func (s *Section) ShowResult(kind Kind, message, link string) {
	s.Slot(kind).Show(message, link)
}

// ClearResults hides and empties both result slots.
func (s *Section) ClearResults() {
	s.Success.Clear()
	s.Error.Clear()
}

// Layout is the whole page: one section per operation.
type Layout struct {
	Shorten *Section
	Expand  *Section
}
