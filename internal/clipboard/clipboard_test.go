package clipboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikhailRaia/url-shortener-client/internal/toast"
)

type recordingWriter struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (w *recordingWriter) WriteText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.texts = append(w.texts, text)
	return w.err
}

func (w *recordingWriter) Texts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string{}, w.texts...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Show(kind, message string) toast.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, kind+":"+message)
	return toast.Toast{Kind: kind, Message: message}
}

func TestCopier_Primary(t *testing.T) {
	primary := &recordingWriter{}
	fallback := &recordingWriter{}
	notifier := &recordingNotifier{}

	err := NewCopier(primary, fallback, notifier).Copy(context.Background(), "https://s/1")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://s/1"}, primary.Texts())
	assert.Empty(t, fallback.Texts())
	assert.Equal(t, []string{"success:" + CopiedMessage}, notifier.messages)
}

func TestCopier_Fallback(t *testing.T) {
	primary := &recordingWriter{err: errors.New("permission denied")}
	fallback := &recordingWriter{}
	notifier := &recordingNotifier{}

	err := NewCopier(primary, fallback, notifier).Copy(context.Background(), "https://s/1")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://s/1"}, primary.Texts())
	assert.Equal(t, []string{"https://s/1"}, fallback.Texts())
	assert.Equal(t, []string{"success:" + CopiedMessage}, notifier.messages)
}

func TestCopier_FallbackFails(t *testing.T) {
	primary := &recordingWriter{err: errors.New("permission denied")}
	fallback := &recordingWriter{err: ErrNotTerminal}
	notifier := &recordingNotifier{}

	err := NewCopier(primary, fallback, notifier).Copy(context.Background(), "https://s/1")
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.Empty(t, notifier.messages)
}

func TestCopier_NoFallback(t *testing.T) {
	primary := &recordingWriter{err: ErrUnsupported}

	err := NewCopier(primary, nil, nil).Copy(context.Background(), "https://s/1")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCopier_CancelledWhilePrimaryBlocks(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	primary := WriterFunc(func(string) error {
		<-release
		return nil
	})
	fallback := &recordingWriter{}
	notifier := &recordingNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := NewCopier(primary, fallback, notifier).Copy(ctx, "https://s/stale")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fallback.Texts())
	assert.Empty(t, notifier.messages)
}

func TestCopier_AlreadyCancelled(t *testing.T) {
	primary := &recordingWriter{}
	fallback := &recordingWriter{}
	notifier := &recordingNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCopier(primary, fallback, notifier).Copy(ctx, "https://s/stale")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, primary.Texts())
	assert.Empty(t, fallback.Texts())
	assert.Empty(t, notifier.messages)
}

func TestTerminal_WriteText(t *testing.T) {
	var buf bytes.Buffer

	err := NewTerminal(&buf).WriteText("https://s/1")
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.Empty(t, buf.String())

	tty := &Terminal{out: &buf, isTTY: true}
	require.NoError(t, tty.WriteText("https://s/1"))
	assert.Equal(t, "\x1b]52;c;aHR0cHM6Ly9zLzE=\a", buf.String())
}
