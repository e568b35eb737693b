package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"goports/internal/tui"
)

var runTUI = func(ctrl tui.Controller, opts tui.Options) error {
	return tui.Run(ctrl, opts)
}

func init() {
	rootCmd.AddCommand(cmdTUI)
}

var cmdTUI = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long:  `Shows the connection list in a refreshable table. Press enter on a row, then y or enter again, to kill its process.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Logging to the terminal would corrupt the alt screen.
		env, err := loadEnvironment(io.Discard)
		if err != nil {
			return err
		}
		defer env.close()

		ctrl, err := controller(env)
		if err != nil {
			return err
		}
		if err := runTUI(ctrl, tui.Options{Protocols: env.cfg.Protocols, ExeWidth: env.cfg.ExeWidth}); err != nil {
			return fmt.Errorf("tui exited with error: %w", err)
		}
		return nil
	},
}
