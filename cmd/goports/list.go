package main

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"goports/internal/app"
	"goports/internal/output"
)

var (
	listNoHeader bool
	listJSON     bool
)

func init() {
	rootCmd.AddCommand(cmdList)
	addListFlags(cmdList)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&listNoHeader, "no-header", false, "Omit the table header")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Print connections as JSON")
}

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "List connections and the processes that own them",
	Long:  `Scans /proc once and prints every connection of the requested protocols with its owning process.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	ctrl, err := controller(env)
	if err != nil {
		return err
	}

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	spin.Suffix = " Scanning ports..."
	spin.Start()
	entries, err := ctrl.List(commandContext(cmd), app.ListParams{Protocols: protocols})
	spin.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return output.WriteJSON(out, entries)
	}
	return output.WriteTable(out, entries, output.TableOptions{
		NoHeader: listNoHeader,
		ExeWidth: env.cfg.ExeWidth,
	})
}
