// kiln plan [path]
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kiln-build/kiln/internal/builder"
)

var flagFormat EnumValue = NewEnumValue("table", map[string]string{
	"table": "Human-readable listing (default)",
	"json":  "JSON object",
	"yaml":  "YAML document",
})

func doPlan(cmd *cobra.Command, args []string) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	b, err := builder.NewBuilderInDirectory(target)
	if err != nil {
		fail(err)
	}
	plan, err := b.Plan(buildMode())
	if err != nil {
		fail(err)
	}
	if err := renderPlan(os.Stdout, plan, flagFormat.Value()); err != nil {
		fail(err)
	}
}

func renderPlan(w io.Writer, plan *builder.Plan, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
	case "yaml":
		out, err := yaml.Marshal(plan)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(out))
	default:
		fmt.Fprintf(w, "compiler: %s\n", plan.Compiler)
		fmt.Fprintf(w, "mode:     %s\n", plan.Mode)
		fmt.Fprintf(w, "artifact: %s\n", plan.Artifact)
		fmt.Fprintf(w, "command:  %s %s\n", plan.Compiler, strings.Join(plan.Args, " "))
	}
	return nil
}

var planCmd = &cobra.Command{
	Use:   "plan [target path]",
	Short: "Resolve and print the build plan without compiling",
	Long:  `Resolve and print the build plan without invoking the compiler. If no target path is given, uses "."`,
	Args:  cobra.MaximumNArgs(1),
	Run:   doPlan,
}

func init() {
	// kiln plan subcommand
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().VarP(&flagMode, "mode", "m", "Plan for the given mode, one of "+flagMode.HelpString())
	planCmd.Flags().VarP(&flagFormat, "format", "f", "Output format, one of "+flagFormat.HelpString())
	planCmd.RegisterFlagCompletionFunc("mode", flagMode.CompletionFunc())
	planCmd.RegisterFlagCompletionFunc("format", flagFormat.CompletionFunc())
}
