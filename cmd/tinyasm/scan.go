package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tinyasm/internal/parser"
	"tinyasm/internal/preprocess"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Recursively scan a directory for tinyasm source and report which files translate cleanly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		err := filepath.Walk(args[0], func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.HasSuffix(path, ".asm") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", args[0], err)
		}

		if len(files) == 0 {
			fmt.Println("No .asm files found.")
			return nil
		}

		fmt.Printf("Found %d .asm file(s):\n\n", len(files))

		var ok, bad int
		for i, path := range files {
			src, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("%d. %s - unreadable: %v\n", i+1, path, err)
				bad++
				continue
			}
			res, err := parser.Parse(preprocess.Minify(string(src)))
			switch {
			case err != nil:
				fmt.Printf("%d. %s - FAILS: %v\n", i+1, path, err)
				bad++
			default:
				fmt.Printf("%d. %s - ok (%d instructions, %d warnings)\n", i+1, path, len(res.Program.Text.Lines), len(res.Warnings))
				ok++
			}
		}

		fmt.Println()
		fmt.Println("=== Summary ===")
		fmt.Printf("%d ok, %d failed, %d total\n", ok, bad, len(files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
