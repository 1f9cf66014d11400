package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tinyasm/internal/diagnostic"
	"tinyasm/internal/object"
	"tinyasm/internal/stream"
	"tinyasm/internal/vm"
)

var execCmd = &cobra.Command{
	Use:   "exec <object.obj>",
	Short: "Execute a translated object image to completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		program, err := object.Decode(f)
		if err != nil {
			return fmt.Errorf("decode object image: %w", err)
		}

		streams := stream.New(os.Stdin, os.Stdout, os.Stderr)
		comp := vm.New(memSize, streams)
		if err := comp.Load(program); err != nil {
			return fmt.Errorf("load program: %w", err)
		}

		for {
			halted, err := comp.Step(program)
			if err != nil {
				diagnostic.Print(os.Stderr, err)
				return fmt.Errorf("execution of %s failed", args[0])
			}
			if halted {
				break
			}
		}

		log.Debug("execution finished", "ticks", comp.Clock.Ticks(), "instructions", comp.Clock.Insts())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
