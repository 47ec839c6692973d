package ui

import "sync"

const (
	// BusyLabel replaces a trigger's label while its operation runs.
	BusyLabel = "Processing..."
	// DefaultLabel is restored when a trigger had no label of its own.
	DefaultLabel = "Process"
)

// SlotState is an in-memory Slot.
type SlotState struct {
	mu      sync.RWMutex
	visible bool
	message string
	link    string
}

func (s *SlotState) Show(message, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = true
	s.message = message
	s.link = link
}

func (s *SlotState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	s.message = ""
	s.link = ""
}

func (s *SlotState) Visible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

func (s *SlotState) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

func (s *SlotState) Link() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.link
}

// FieldState is an in-memory Field.
type FieldState struct {
	mu        sync.RWMutex
	value     string
	inlineErr string
	invalid   bool
}

func (f *FieldState) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

func (f *FieldState) SetValue(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = value
}

func (f *FieldState) ShowError(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inlineErr = message
	f.invalid = true
}

func (f *FieldState) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inlineErr = ""
	f.invalid = false
}

// InlineError returns the validation message shown under the field.
func (f *FieldState) InlineError() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.inlineErr
}

// Invalid reports whether the field is marked invalid.
func (f *FieldState) Invalid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.invalid
}

// TriggerState is an in-memory Trigger that remembers its own label.
type TriggerState struct {
	mu       sync.RWMutex
	original string
	label    string
	busy     bool
}

// NewTriggerState creates an idle trigger labelled label.
func NewTriggerState(label string) *TriggerState {
	return &TriggerState{original: label, label: label}
}

func (t *TriggerState) SetBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy = busy
	switch {
	case busy:
		t.label = BusyLabel
	case t.original != "":
		t.label = t.original
	default:
		t.label = DefaultLabel
	}
}

func (t *TriggerState) Busy() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.busy
}

func (t *TriggerState) Label() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.label
}

// SectionState is a Section backed entirely by in-memory state.
type SectionState struct {
	Section
	Field         *FieldState
	Button        *TriggerState
	SuccessResult *SlotState
	ErrorResult   *SlotState
}

// NewSectionState creates a section whose trigger is labelled label.
func NewSectionState(name, label string) *SectionState {
	s := &SectionState{
		Field:         &FieldState{},
		Button:        NewTriggerState(label),
		SuccessResult: &SlotState{},
		ErrorResult:   &SlotState{},
	}
	s.Section = Section{
		Name:    name,
		Input:   s.Field,
		Trigger: s.Button,
		Success: s.SuccessResult,
		Error:   s.ErrorResult,
	}
	return s
}

// VisibleResults counts the result slots currently shown.
func (s *SectionState) VisibleResults() int {
	n := 0
	if s.SuccessResult.Visible() {
		n++
	}
	if s.ErrorResult.Visible() {
		n++
	}
	return n
}

// MemoryLayout is a Layout with inspectable state, used by tests and as the console model.
type MemoryLayout struct {
	Shorten *SectionState
	Expand  *SectionState
}

// NewMemoryLayout creates the shorten and expand sections.
func NewMemoryLayout() *MemoryLayout {
	return &MemoryLayout{
		Shorten: NewSectionState("shorten", "Shorten"),
		Expand:  NewSectionState("expand", "Expand"),
	}
}

// Layout exposes the sections through the ui contract.
func (m *MemoryLayout) Layout() Layout {
	return Layout{Shorten: &m.Shorten.Section, Expand: &m.Expand.Section}
}
