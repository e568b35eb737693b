package app

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"goports/internal/config"
	"goports/internal/killer"
	"goports/internal/netstat"
)

// Terminator is the process termination primitive used by Kill.
type Terminator interface {
	Kill(pid uint32) (killer.Outcome, error)
}

// Options configures the top-level controller.
type Options struct {
	Config config.Config
	// Logger defaults to a discarding logger.
	Logger *log.Logger
	// NetStat overrides the provider picked for runtime.GOOS.
	NetStat netstat.NetStat
	// Killer overrides the signal based terminator built from Config.
	Killer Terminator
}

// App exposes high-level operations that the CLI/TUI can reuse.
type App struct {
	cfg    config.Config
	log    *log.Logger
	ports  netstat.NetStat
	killer Terminator
}

// New constructs the shared controller facade.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ports := opts.NetStat
	if ports == nil {
		ports = netstat.New(runtime.GOOS, netstat.Options{
			ProcRoot: opts.Config.ProcRoot,
			Logger:   logger.WithPrefix("netstat"),
		})
	}

	term := opts.Killer
	if term == nil {
		k, err := killer.New(killer.Options{
			Signal:  opts.Config.KillSignal,
			Timeout: opts.Config.KillTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("killer ready", "signal", k.Signal(), "timeout", opts.Config.KillTimeout)
		term = k
	}

	return &App{
		cfg:    opts.Config,
		log:    logger,
		ports:  ports,
		killer: term,
	}, nil
}
