package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"goports/internal/app"
)

func init() {
	rootCmd.AddCommand(cmdKill)
}

var cmdKill = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a process and wait for it to exit",
	Long:  "Sends the configured signal (SIGKILL by default) to the process and waits up to kill_timeout for it to go away.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", app.ErrInvalidPID, args[0])
		}

		env, err := loadEnvironment(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer env.close()

		ctrl, err := controller(env)
		if err != nil {
			return err
		}

		res, err := ctrl.Kill(commandContext(cmd), app.KillParams{PID: pid})
		if res.Message != "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		}
		return err
	},
}
