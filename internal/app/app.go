package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/client"
	"github.com/MikhailRaia/url-shortener-client/internal/clipboard"
	"github.com/MikhailRaia/url-shortener-client/internal/config"
	"github.com/MikhailRaia/url-shortener-client/internal/controller"
	"github.com/MikhailRaia/url-shortener-client/internal/dispatch"
	"github.com/MikhailRaia/url-shortener-client/internal/toast"
	"github.com/MikhailRaia/url-shortener-client/internal/ui"
)

const shutdownTimeout = 5 * time.Second

const helpText = `Commands:
  shorten <url>          shorten a long URL (alias: s)
  expand <code|url>      look up the original URL of a short code or short URL (alias: e)
  shorten | expand       run again with the current input
  help                   show this help
  quit                   exit`

type App struct {
	config  *config.Config
	console *ui.Console
	toasts  *toast.Board
	ctrl    *controller.Controller
	loop    *dispatch.Loop

	startOnce sync.Once
}

// NewApp wires the backend client, the console and the event loop. Output goes to out.
func NewApp(cfg *config.Config, out io.Writer) *App {
	api := client.New(cfg.BaseURL, client.WithTimeout(cfg.RequestTimeout))

	console := ui.NewConsole(out)

	toasts := toast.NewBoard(cfg.ToastDwell, toast.DefaultFade, func(t toast.Toast) {
		if t.State == toast.Visible {
			console.Announce(t.Message)
		}
	})

	var copier controller.Copier
	if cfg.Clipboard {
		copier = clipboard.NewCopier(clipboard.System{}, clipboard.NewTerminal(out), toasts)
	}

	ctrl := controller.New(api, copier, console.Layout())

	return &App{
		config:  cfg,
		console: console,
		toasts:  toasts,
		ctrl:    ctrl,
		loop:    dispatch.NewLoop(ctrl, dispatch.DefaultConfig()),
	}
}

// ParseTarget maps a command name to the section it drives.
func ParseTarget(cmd string) (controller.Target, bool) {
	switch strings.ToLower(cmd) {
	case "shorten", "s":
		return controller.TargetShorten, true
	case "expand", "e":
		return controller.TargetExpand, true
	}
	return 0, false
}

func (a *App) start() {
	a.startOnce.Do(func() {
		log.Info().Str("backend", a.config.BaseURL).Msg("Starting shortener console")
		a.loop.Start()
	})
}

func (a *App) stop() {
	if err := a.loop.Shutdown(shutdownTimeout); err != nil {
		log.Warn().Err(err).Msg("Event loop did not stop in time")
	}
	a.toasts.Close()
}

// Run reads commands from in until quit, end of input or ctx cancellation.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.start()
	defer a.stop()

	a.console.Println(helpText)

	lines := make(chan string)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error().Err(err).Msg("Failed to read input")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := a.handleLine(line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (a *App) handleLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	if target, ok := ParseTarget(cmd); ok {
		return false, a.submit(target, arg, nil)
	}

	switch strings.ToLower(cmd) {
	case "help", "h", "?":
		a.console.Println(helpText)
	case "quit", "exit", "q":
		return true, nil
	default:
		a.console.Println(fmt.Sprintf("unknown command %q, type help", cmd))
	}

	return false, nil
}

// submit queues an input edit when arg is given, then the trigger.
func (a *App) submit(target controller.Target, arg string, done chan<- controller.Result) error {
	if arg != "" {
		if err := a.loop.Submit(dispatch.Event{Kind: dispatch.Edit, Target: target, Value: arg}); err != nil {
			return err
		}
	}
	return a.loop.Submit(dispatch.Event{Kind: dispatch.Trigger, Target: target, Done: done})
}

// Exec runs a single operation and returns its result.
func (a *App) Exec(ctx context.Context, target controller.Target, arg string) (controller.Result, error) {
	a.start()
	defer a.stop()

	done := make(chan controller.Result, 1)
	if err := a.submit(target, arg, done); err != nil {
		return controller.Result{}, err
	}

	select {
	case res := <-done:
		log.Debug().Object("result", res).Msg("Operation finished")
		return res, nil
	case <-ctx.Done():
		return controller.Result{}, ctx.Err()
	}
}
