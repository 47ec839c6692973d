package ui

import (
	"fmt"
	"io"
	"sync"
)

// Console draws a MemoryLayout as lines of text.
// Only changes a user should notice are printed: results, inline errors
// and the busy state. Clearing is silent.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	state *MemoryLayout
}

// NewConsole creates a console that prints to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, state: NewMemoryLayout()}
}

// State returns the model behind the console.
func (c *Console) State() *MemoryLayout {
	return c.state
}

// Layout returns sections that update the model and print to the console.
func (c *Console) Layout() Layout {
	return Layout{
		Shorten: c.section(c.state.Shorten),
		Expand:  c.section(c.state.Expand),
	}
}

func (c *Console) section(s *SectionState) *Section {
	return &Section{
		Name:    s.Name,
		Input:   &consoleField{FieldState: s.Field, console: c, section: s.Name},
		Trigger: &consoleTrigger{TriggerState: s.Button, console: c, section: s.Name},
		Success: &consoleSlot{SlotState: s.SuccessResult, console: c, section: s.Name, kind: Success},
		Error:   &consoleSlot{SlotState: s.ErrorResult, console: c, section: s.Name, kind: Error},
	}
}

// Announce prints a line outside of any section, used for toasts.
func (c *Console) Announce(message string) {
	c.printf("* %s\n", message)
}

// Println prints free text such as help output.
func (c *Console) Println(text string) {
	c.printf("%s\n", text)
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

type consoleSlot struct {
	*SlotState
	console *Console
	section string
	kind    Kind
}

func (s *consoleSlot) Show(message, link string) {
	s.SlotState.Show(message, link)

	mark := "ok"
	if s.kind == Error {
		mark = "error"
	}
	if link == "" {
		s.console.printf("[%s] %s: %s\n", s.section, mark, message)
		return
	}
	s.console.printf("[%s] %s: %s\n    %s\n", s.section, mark, message, link)
}

type consoleField struct {
	*FieldState
	console *Console
	section string
}

func (f *consoleField) ShowError(message string) {
	f.FieldState.ShowError(message)
	f.console.printf("[%s] invalid input: %s\n", f.section, message)
}

type consoleTrigger struct {
	*TriggerState
	console *Console
	section string
}

func (t *consoleTrigger) SetBusy(busy bool) {
	t.TriggerState.SetBusy(busy)
	if busy {
		t.console.printf("[%s] %s\n", t.section, BusyLabel)
	}
}
