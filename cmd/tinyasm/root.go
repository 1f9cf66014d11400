package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	memSize int
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tinyasm",
	Short: "A translator and virtual machine for the tinyasm assembly language",
	Long: `tinyasm turns ".asm" source into a binary object image and runs it on a
tick-accurate virtual machine.

Examples:
  tinyasm translate hello.asm -o hello.obj
  tinyasm exec hello.obj
  tinyasm run hello.asm
  tinyasm scan ./programs`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log = slog.New(newCLIHandler(os.Stderr, level))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().IntVarP(&memSize, "mem", "m", 0, "machine memory size in cells (0 = default)")
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
