package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSection_ShowResult(t *testing.T) {
	s := NewSectionState("shorten", "Shorten")

	s.ShowResult(Success, "done", "https://s/1")

	assert.True(t, s.SuccessResult.Visible())
	assert.Equal(t, "done", s.SuccessResult.Message())
	assert.Equal(t, "https://s/1", s.SuccessResult.Link())
	assert.False(t, s.ErrorResult.Visible())

	s.ShowResult(Error, "failed", "")
	assert.True(t, s.ErrorResult.Visible())
	assert.Empty(t, s.ErrorResult.Link())
	assert.Equal(t, 2, s.VisibleResults())
}

func TestSection_ClearResults(t *testing.T) {
	s := NewSectionState("expand", "Expand")
	s.ShowResult(Success, "done", "https://o/1")
	s.ShowResult(Error, "failed", "")

	s.ClearResults()

	assert.Equal(t, 0, s.VisibleResults())
	assert.Empty(t, s.SuccessResult.Message())
	assert.Empty(t, s.SuccessResult.Link())
	assert.Empty(t, s.ErrorResult.Message())
}

func TestFieldState_InlineError(t *testing.T) {
	f := &FieldState{}

	f.ShowError("Please enter a valid URL.")
	assert.True(t, f.Invalid())
	assert.Equal(t, "Please enter a valid URL.", f.InlineError())

	f.ClearError()
	assert.False(t, f.Invalid())
	assert.Empty(t, f.InlineError())
}

func TestTriggerState_SetBusy(t *testing.T) {
	tr := NewTriggerState("Shorten")

	tr.SetBusy(true)
	assert.True(t, tr.Busy())
	assert.Equal(t, BusyLabel, tr.Label())

	tr.SetBusy(false)
	assert.False(t, tr.Busy())
	assert.Equal(t, "Shorten", tr.Label())
}

func TestTriggerState_DefaultLabel(t *testing.T) {
	tr := NewTriggerState("")

	tr.SetBusy(true)
	tr.SetBusy(false)

	assert.Equal(t, DefaultLabel, tr.Label())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	layout := c.Layout()

	layout.Shorten.Trigger.SetBusy(true)
	layout.Shorten.ShowResult(Success, "Short URL generated successfully!", "https://s/1")
	layout.Shorten.Trigger.SetBusy(false)
	layout.Expand.Input.ShowError("Please enter a short code or short URL.")
	layout.Expand.ShowResult(Error, "unknown code — this short URL does not exist", "")
	layout.Expand.ClearResults()
	c.Announce("URL copied to clipboard!")

	want := "[shorten] Processing...\n" +
		"[shorten] ok: Short URL generated successfully!\n" +
		"    https://s/1\n" +
		"[expand] invalid input: Please enter a short code or short URL.\n" +
		"[expand] error: unknown code — this short URL does not exist\n" +
		"* URL copied to clipboard!\n"
	assert.Equal(t, want, buf.String())

	state := c.State()
	assert.Equal(t, "https://s/1", state.Shorten.SuccessResult.Link())
	assert.False(t, state.Shorten.Button.Busy())
	assert.True(t, state.Expand.Field.Invalid())
	assert.Equal(t, 0, state.Expand.VisibleResults())
}
