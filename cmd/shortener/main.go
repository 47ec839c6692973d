package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/url-shortener-client/internal/app"
	"github.com/MikhailRaia/url-shortener-client/internal/config"
	"github.com/MikhailRaia/url-shortener-client/internal/logger"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}

	if err := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApp(cfg, os.Stdout)

	args := flag.Args()
	if len(args) == 0 {
		if err := application.Run(ctx, os.Stdin); err != nil {
			log.Fatal().Err(err).Msg("Console stopped")
		}
		return
	}

	target, ok := app.ParseTarget(args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: shortener [flags] [shorten <url> | expand <code>]\n")
		os.Exit(2)
	}

	res, err := application.Exec(ctx, target, strings.Join(args[1:], " "))
	if err != nil {
		log.Fatal().Err(err).Msg("Operation aborted")
	}
	if !res.OK() {
		stop()
		os.Exit(1)
	}
}
