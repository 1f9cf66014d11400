package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tinyasm/internal/diagnostic"
	"tinyasm/internal/object"
	"tinyasm/internal/parser"
	"tinyasm/internal/preprocess"
)

var translateOut string

var translateCmd = &cobra.Command{
	Use:   "translate <source.asm>",
	Short: "Translate tinyasm source into a binary object image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		out := translateOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".asm") + ".obj"
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		if err := object.Encode(f, result.Program); err != nil {
			return fmt.Errorf("encode object image: %w", err)
		}

		log.Info("translated", "source", args[0], "output", out, "instructions", len(result.Program.Text.Lines))
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateOut, "output", "o", "", "output object file path (default: <source without .asm>.obj)")
	rootCmd.AddCommand(translateCmd)
}
