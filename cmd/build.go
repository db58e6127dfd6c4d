package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/hier"
)

var buildCmd = &cobra.Command{
	Use:   "build [input.json] [output.db]",
	Short: "Build a SQLite hierarchy store from a JSON document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := args[1]

		root, err := hier.LoadDocumentFile(input)
		if err != nil {
			return fmt.Errorf("loading %s: %w", input, err)
		}

		_ = os.Remove(output) // Overwrite
		store, err := hier.OpenStore(output)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		start := time.Now()
		fmt.Printf("Building %s from %s...\n", output, input)
		if err := store.Import(root); err != nil {
			return err
		}
		fmt.Printf("Done in %v.\n", time.Since(start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
