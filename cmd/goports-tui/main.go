package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"goports/internal/app"
	"goports/internal/config"
	"goports/internal/tui"
)

var (
	newLogger = app.NewLogger
	runTUI    = tui.Run
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred cleanup, such as closing the
// log file, always happens.
func run(args []string) error {
	fs := flag.NewFlagSet("goports-tui", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to YAML or JSON config file")
	proto := fs.String("proto", "", "Comma separated protocols to scan (tcp, udp)")
	logFile := fs.String("log-file", "", "Write logs to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *proto != "" {
		cfg.Protocols = strings.Split(*proto, ",")
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()

	controller, err := app.New(app.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("init", "err", err)
		return fmt.Errorf("init: %w", err)
	}
	if err := runTUI(controller, tui.Options{Protocols: cfg.Protocols, ExeWidth: cfg.ExeWidth}); err != nil {
		logger.Error("tui exited with error", "err", err)
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
