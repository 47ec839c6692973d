// Package controller runs the request/response/feedback cycle of the
// shorten and expand sections: validate, mark busy, call the backend,
// interpret, render, restore.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/client"
	"github.com/MikhailRaia/url-shortener-client/internal/ui"
)

const (
	MsgEnterURL   = "Please enter a valid URL."
	MsgEnterCode  = "Please enter a short code or short URL."
	MsgShortened  = "Short URL generated successfully!"
	MsgFound      = "Original URL found!"
	MsgRetrieved  = "Original URL retrieved!"
	MsgUnexpected = "unexpected error"
)

var (
	ErrEmptyInput = errors.New("empty input")
	ErrNoCode     = errors.New("cannot extract short code")
)

// API is the backend as seen by the controller.
type API interface {
	Shorten(ctx context.Context, originalURL string) (string, error)
	Expand(ctx context.Context, code string) (client.Expansion, error)
}

// Copier puts a result on the clipboard.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// Target names a section of the page.
type Target int

const (
	TargetShorten Target = iota
	TargetExpand
)

func (t Target) String() string {
	if t == TargetExpand {
		return "expand"
	}
	return "shorten"
}

// Result is the outcome of one operation.
type Result struct {
	Kind    ui.Kind
	Message string
	Link    string
	Err     error
	// Rendered is false when the result never reached a result slot:
	// invalid input, or a newer operation of the same section took over.
	Rendered bool
}

// OK reports a successful operation.
func (r Result) OK() bool {
	return r.Kind == ui.Success && r.Err == nil
}

func success(message, link string) Result {
	return Result{Kind: ui.Success, Message: message, Link: link}
}

func failure(err error) Result {
	msg := err.Error()
	if strings.TrimSpace(msg) == "" {
		msg = MsgUnexpected
	}
	return Result{Kind: ui.Error, Message: msg, Err: err}
}

// flight tracks the operations of one section.
// Only the operation holding the latest token may render.
type flight struct {
	token  uint64
	active int
	cancel context.CancelFunc
}

type operation struct {
	ctx     context.Context
	cancel  context.CancelFunc
	target  Target
	section *ui.Section
	token   uint64
	id      string
}

// Controller owns both sections. All view mutations happen under its lock.
type Controller struct {
	mu      sync.Mutex
	api     API
	copier  Copier
	layout  ui.Layout
	flights map[Target]*flight
	newID   func() string
}

// New creates a controller drawing into layout. A nil copier disables copying.
func New(api API, copier Copier, layout ui.Layout) *Controller {
	return &Controller{
		api:    api,
		copier: copier,
		layout: layout,
		flights: map[Target]*flight{
			TargetShorten: {},
			TargetExpand:  {},
		},
		newID: uuid.NewString,
	}
}

func (c *Controller) section(t Target) *ui.Section {
	if t == TargetExpand {
		return c.layout.Expand
	}
	return c.layout.Shorten
}

// Edit replaces the input of a section and clears its results.
func (c *Controller) Edit(t Target, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	section := c.section(t)
	section.Input.SetValue(value)
	section.ClearResults()
}

// Trigger runs the operation of a section.
func (c *Controller) Trigger(ctx context.Context, t Target) Result {
	if t == TargetExpand {
		return c.Expand(ctx)
	}
	return c.Shorten(ctx)
}

// Shorten sends the shorten input to the backend and shows the short URL.
func (c *Controller) Shorten(ctx context.Context) Result {
	value, ok := c.validate(TargetShorten, MsgEnterURL)
	if !ok {
		return Result{Kind: ui.Error, Message: MsgEnterURL, Err: ErrEmptyInput}
	}

	op := c.begin(ctx, TargetShorten)
	defer op.cancel()

	link, err := c.api.Shorten(op.ctx, value)

	var res Result
	if err != nil {
		res = failure(err)
	} else {
		res = success(MsgShortened, link)
	}

	res = c.render(op, res)
	c.finish(op)

	// The trigger is idle again. A newer trigger cancels op.ctx, which stops this copy.
	if res.Rendered && res.OK() && c.copier != nil {
		if err := c.copier.Copy(op.ctx, link); err != nil {
			log.Debug().Err(err).Str("request_id", op.id).Msg("Clipboard copy failed")
		}
	}

	return res
}

// Expand resolves the expand input to the original URL and shows it.
func (c *Controller) Expand(ctx context.Context) Result {
	value, ok := c.validate(TargetExpand, MsgEnterCode)
	if !ok {
		return Result{Kind: ui.Error, Message: MsgEnterCode, Err: ErrEmptyInput}
	}

	op := c.begin(ctx, TargetExpand)
	defer op.cancel()
	defer c.finish(op)

	code := ExtractCode(value)
	if code == "" {
		return c.render(op, failure(ErrNoCode))
	}

	expansion, err := c.api.Expand(op.ctx, code)
	switch {
	case err != nil:
		return c.render(op, failure(err))
	case expansion.Redirected:
		return c.render(op, success(MsgFound, expansion.URL))
	default:
		return c.render(op, success(MsgRetrieved, expansion.URL))
	}
}

// validate trims the section input and reports an inline error when it is empty.
func (c *Controller) validate(t Target, message string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	input := c.section(t).Input
	value := strings.TrimSpace(input.Value())
	if value == "" {
		input.ClearError()
		input.ShowError(message)
		return "", false
	}

	input.ClearError()
	return value, true
}

// begin takes a new token for the section, cancels the operation it supersedes,
// marks the trigger busy and clears previous results.
func (c *Controller) begin(parent context.Context, t Target) *operation {
	id := c.newID()
	ctx, cancel := context.WithCancel(client.WithRequestID(parent, id))

	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.flights[t]
	if f.cancel != nil {
		f.cancel()
	}
	f.token++
	f.active++
	f.cancel = cancel

	section := c.section(t)
	section.Trigger.SetBusy(true)
	section.ClearResults()

	log.Debug().
		Str("section", t.String()).
		Str("request_id", id).
		Uint64("token", f.token).
		Msg("Operation started")

	return &operation{
		ctx:     ctx,
		cancel:  cancel,
		target:  t,
		section: section,
		token:   f.token,
		id:      id,
	}
}

// render shows res unless a newer operation of the same section has started.
func (c *Controller) render(op *operation, res Result) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if op.token != c.flights[op.target].token {
		log.Debug().
			Str("section", op.target.String()).
			Str("request_id", op.id).
			Msg("Discarding superseded result")
		return res
	}

	op.section.ShowResult(res.Kind, res.Message, res.Link)
	res.Rendered = true

	logResult(op, res)
	return res
}

// finish returns the trigger to idle once the section has nothing in flight.
// The flight keeps the cancel func of its latest operation so a newer trigger
// can still stop work that outlives finish, such as the clipboard copy.
func (c *Controller) finish(op *operation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.flights[op.target]
	f.active--
	if f.active == 0 {
		op.section.Trigger.SetBusy(false)
	}
}

func logResult(op *operation, res Result) {
	var (
		event     *zerolog.Event
		statusErr *client.StatusError
		serverErr *client.ServerError
	)
	switch {
	case res.Err == nil:
		event = log.Info().Str("link", res.Link)
	case errors.As(res.Err, &statusErr), errors.As(res.Err, &serverErr):
		event = log.Warn().Err(res.Err)
	case errors.Is(res.Err, context.Canceled):
		event = log.Debug().Err(res.Err)
	default:
		event = log.Info().Err(res.Err)
	}

	event.
		Str("section", op.target.String()).
		Str("request_id", op.id).
		Str("result", res.Kind.String()).
		Msg("Operation finished")
}

var _ zerolog.LogObjectMarshaler = Result{}

// MarshalZerologObject lets a Result be logged as a nested object.
func (r Result) MarshalZerologObject(e *zerolog.Event) {
	e.Str("kind", r.Kind.String()).
		Str("message", r.Message).
		Bool("rendered", r.Rendered)
	if r.Link != "" {
		e.Str("link", r.Link)
	}
}
