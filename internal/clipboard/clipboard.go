// Package clipboard copies results for the user: the system clipboard
// first, an OSC 52 escape sequence to the terminal when that fails.
package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/toast"
)

// CopiedMessage is the toast raised after a successful copy.
const CopiedMessage = "URL copied to clipboard!"

var (
	ErrUnsupported = errors.New("system clipboard is not available")
	ErrNotTerminal = errors.New("output is not a terminal")
)

// Writer puts text on some clipboard.
type Writer interface {
	WriteText(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) WriteText(text string) error {
	return f(text)
}

// System writes to the OS clipboard through xclip, xsel, pbcopy or the Windows API.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Terminal asks the terminal emulator to set its clipboard with an OSC 52 sequence.
type Terminal struct {
	out   io.Writer
	isTTY bool
}

// NewTerminal creates a Terminal writer. Writes fail unless out is a TTY.
func NewTerminal(out io.Writer) *Terminal {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Terminal{out: out, isTTY: tty}
}

func (t *Terminal) WriteText(text string) error {
	if !t.isTTY {
		return ErrNotTerminal
	}
	_, err := fmt.Fprintf(t.out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

// Notifier raises a toast.
type Notifier interface {
	Show(kind, message string) toast.Toast
}

// Copier copies with a fallback and raises a toast when either path succeeds.
type Copier struct {
	primary  Writer
	fallback Writer
	notifier Notifier
}

// NewCopier creates a Copier. A nil fallback means the primary path is the only one.
func NewCopier(primary, fallback Writer, notifier Notifier) *Copier {
	return &Copier{primary: primary, fallback: fallback, notifier: notifier}
}

// Copy puts text on the clipboard. The primary writer may block; ctx bounds the wait for it.
// Once ctx is done neither the fallback nor the toast runs.
func (c *Copier) Copy(ctx context.Context, text string) error {
	err := c.writePrimary(ctx, text)
	if err == nil {
		c.copied()
		return nil
	}

	// A cancelled copy was superseded by a newer one.
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return err
	}

	log.Debug().Err(err).Msg("Primary clipboard failed, using fallback")

	if c.fallback == nil {
		return err
	}
	if err := c.fallback.WriteText(text); err != nil {
		return fmt.Errorf("clipboard fallback: %w", err)
	}

	c.copied()
	return nil
}

func (c *Copier) writePrimary(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- c.primary.WriteText(text)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Copier) copied() {
	if c.notifier != nil {
		c.notifier.Show("success", CopiedMessage)
	}
}
