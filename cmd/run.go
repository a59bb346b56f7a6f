// kiln run [path] [args...]
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiln-build/kiln/internal/builder"
)

func doRun(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
		args = args[1:] // other arguments will be passed to the program
	}
	b, err := builder.NewBuilderInDirectory(target)
	if err != nil {
		fail(err)
	}
	b.SetVerbose(flagVerbose)
	plan, err := b.Build(buildMode())
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s %s\n", color.HiGreenString("Finished"), plan.Artifact)

	if err := b.RunArtifact(plan, args); err != nil {
		// propagate the program's own exit code
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fail(err)
	}
}

var runCmd = &cobra.Command{
	Use:   "run [target path] [program args...]",
	Short: "Build and run the program",
	Long:  `Build and run the program. If no target path is given, uses "."`,
	Args:  cobra.ArbitraryArgs,
	Run:   doRun,
}

func init() {
	// kiln run subcommand
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().VarP(&flagMode, "mode", "m", "Build with the given mode, one of "+flagMode.HelpString())
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Echo the compiler command line and its output")
	runCmd.RegisterFlagCompletionFunc("mode", flagMode.CompletionFunc())
}
