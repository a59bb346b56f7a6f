// kiln init [name], kiln new [path]
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiln-build/kiln/internal/config"
	"github.com/kiln-build/kiln/internal/msg"
)

func writefile(content string, elem ...string) {
	path := filepath.Join(elem...)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.WriteFile(path, []byte(content), 0o644); err != nil {
			msg.Error("create file %s: %v", path, err)
			os.Exit(ExitFailure)
		}
		fmt.Printf("%s file: %s\n", color.HiGreenString("Created"), filepath.ToSlash(path))
	}
}

func mkdir(elem ...string) {
	path := filepath.Join(elem...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		msg.Error("mkdir %s: %v", path, err)
		os.Exit(ExitFailure)
	}
}

func getProgramName() string {
	if len(os.Args) == 0 {
		return "kiln"
	}
	basename := filepath.Base(os.Args[0])
	return strings.TrimSuffix(basename, filepath.Ext(basename))
}

// initIn scaffolds a project in an existing directory
func initIn(dir, name string) {
	if !config.IsIdentifier(name) {
		msg.Error("program name %q is not a valid identifier (lowercase letters and underscores only)", name)
		os.Exit(ExitConfigError)
	}

	writefile(`[program]
name = "`+name+`"
description = "This is where I make a project."

[dependencies]
include_dirs = []
include_shared = []

[build]
additional_flags = []
`, dir, config.FileName)

	writefile(`#include <stdio.h>

int main(void) {
    puts("Hello, World!");
    return 0;
}
`, dir, name+".c")

	writefile(`*.o
`, dir, ".gitignore")

	programName := getProgramName()
	fmt.Printf("You can now do %s to build, or %s to build and run.\n",
		color.HiCyanString(programName+" "+dir), color.HiCyanString(programName+" run "+dir))
	msg.Hint("an active virtual environment (VIRTUAL_ENV) is required to build")
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new project in the current directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initIn(".", args[0])
	},
}

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Create a new project in a new directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mkdir(args[0])
		initIn(args[0], filepath.Base(args[0]))
	},
}

func init() {
	// kiln init subcommand
	rootCmd.AddCommand(initCmd)

	// kiln new subcommand
	rootCmd.AddCommand(newCmd)
}
