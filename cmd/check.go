// kiln check [path]
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiln-build/kiln/internal/builder"
	"github.com/kiln-build/kiln/internal/msg"
)

func doCheck(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	b, err := builder.NewBuilderInDirectory(target)
	if err != nil {
		fail(err)
	}

	cfg, problems, err := b.Check()
	if err != nil {
		fail(err)
	}

	failed := false
	for _, p := range problems {
		if p.Warning {
			msg.Warn("%s", p.Message)
		} else {
			msg.Error("%s", p.Message)
			failed = true
		}
	}
	if failed {
		os.Exit(ExitConfigError)
	}

	fmt.Printf("%s %s\n", color.HiGreenString("Checked"), cfg.Program.Name)
}

var checkCmd = &cobra.Command{
	Use:   "check [target path]",
	Short: "Validate the descriptor and probe its declared paths",
	Long: `Validate the project descriptor, then verify that the program source,
include directories and shared objects it declares exist on disk.
Does not require an active virtual environment and never compiles.`,
	Args: cobra.MaximumNArgs(1),
	Run:  doCheck,
}

func init() {
	// kiln check subcommand
	rootCmd.AddCommand(checkCmd)
}
