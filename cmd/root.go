// kiln [path], kiln build [path]
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiln-build/kiln/internal/builder"
	"github.com/kiln-build/kiln/internal/compiler"
	"github.com/kiln-build/kiln/internal/config"
	"github.com/kiln-build/kiln/internal/env"
	"github.com/kiln-build/kiln/internal/msg"
)

var (
	flagVerbose bool
	flagMode    EnumValue = NewEnumValue("development", map[string]string{
		"development": "Debug symbols and sanitizers, no optimization (default)",
		"release":     "Optimized, no debug symbols",
	})
)

func buildMode() compiler.Mode {
	return compiler.Mode(flagMode.Value())
}

// fail prints err as a single-line diagnostic and exits with the code
// matching its failure class.
func fail(err error) {
	msg.Error("%v", err)
	os.Exit(classify(err))
}

func classify(err error) int {
	var notReady *env.NotReadyError
	switch {
	case errors.As(err, &notReady):
		return ExitEnvError
	case config.IsError(err):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

func doBuild(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
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
}

var rootCmd = &cobra.Command{
	Use:   "kiln [target path]",
	Short: "A small builder for single-file C projects",
	Long:  `A small builder for single-file C projects`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doBuild,
}

var buildCmd = &cobra.Command{
	Use:   "build [target path]",
	Short: "Build the project",
	Long:  `Build the project. If no target path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doBuild,
}

func init() {
	addBuildFlags(rootCmd)

	// kiln build subcommand
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(&flagMode, "mode", "m", "Build with the given mode, one of "+flagMode.HelpString())
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Echo the compiler command line and its output")
	cmd.RegisterFlagCompletionFunc("mode", flagMode.CompletionFunc())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra reports flag and usage errors here; commands exit on
		// their own
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitConfigError)
	}
}
