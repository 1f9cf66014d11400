package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tinyasm/internal/diagnostic"
	"tinyasm/internal/parser"
	"tinyasm/internal/preprocess"
	"tinyasm/internal/stream"
	"tinyasm/internal/vm"
)

var traceFlag string

var runCmd = &cobra.Command{
	Use:   "run <source.asm>",
	Short: "Translate and execute tinyasm source in one step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseTraceMode(traceFlag)
		if err != nil {
			return err
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}

		result, err := parser.Parse(preprocess.Minify(string(src)))
		if err != nil {
			diagnostic.Print(os.Stderr, err)
			return fmt.Errorf("translate %s failed", args[0])
		}
		for _, w := range result.Warnings {
			diagnostic.PrintWarning(os.Stderr, w)
		}

		streams := stream.New(os.Stdin, os.Stdout, os.Stderr)
		comp := vm.New(memSize, streams)
		if err := comp.Load(result.Program); err != nil {
			return fmt.Errorf("load program: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		var runErr error
		for ev := range comp.Run(ctx, result.Program, mode) {
			if ev.Err != nil {
				runErr = ev.Err
				break
			}
			log.Debug("trace", "tick", ev.Snapshot.Tick, "inst", ev.Snapshot.Inst, "registers", ev.Snapshot.Registers)
		}
		if runErr != nil {
			diagnostic.Print(os.Stderr, runErr)
			return fmt.Errorf("execution of %s failed", args[0])
		}
		return nil
	},
}

func parseTraceMode(s string) (vm.TraceMode, error) {
	switch s {
	case "", "none":
		return vm.TraceNone, nil
	case "inst":
		return vm.TraceInst, nil
	case "tick":
		return vm.TraceTick, nil
	default:
		return vm.TraceNone, fmt.Errorf("unknown trace mode %q (want none, inst, or tick)", s)
	}
}

func init() {
	runCmd.Flags().StringVar(&traceFlag, "trace", "none", "trace granularity: none, inst, or tick")
	rootCmd.AddCommand(runCmd)
}
