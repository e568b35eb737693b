package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"goports/internal/app"
	"goports/internal/config"
	"goports/internal/netstat"
)

var (
	configPath string
	protocols  []string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "goports [command]",
	Short: "goports: which process owns that port",
	Long: `goports lists the TCP and UDP connections of this host together with the
process that owns each socket. Without a sub-command it prints the list once;
"goports tui" opens an interactive view that can kill the selected process.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runList,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	pf.StringSliceVarP(&protocols, "proto", "p", nil, "Protocols to scan: tcp, udp (default from config, else tcp)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	addListFlags(rootCmd)
}

// controllerAPI is the slice of app.App the commands use.
type controllerAPI interface {
	List(context.Context, app.ListParams) ([]netstat.Entry, error)
	Kill(context.Context, app.KillParams) (app.KillResult, error)
}

// environment is what every command needs before it can run.
type environment struct {
	cfg      config.Config
	logger   *log.Logger
	closeLog func() error
}

func (e environment) close() {
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

var controllerFactory = func(env environment) (controllerAPI, error) {
	controller, err := app.New(app.Options{Config: env.cfg, Logger: env.logger})
	if err != nil {
		return nil, err
	}
	return controller, nil
}

// loadEnvironment merges config, env and flags and builds the logger. Logs
// go to logOut unless a log file is configured.
func loadEnvironment(logOut io.Writer) (environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return environment{}, err
	}
	if len(protocols) > 0 {
		cfg.Protocols = protocols
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logger, closeLog, err := app.NewLogger(cfg, logOut)
	if err != nil {
		return environment{}, err
	}
	return environment{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

func controller(env environment) (controllerAPI, error) {
	ctrl, err := controllerFactory(env)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return ctrl, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
