package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/config"
	"github.com/agentic-research/treeslice/internal/hier"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "treeslice",
	Short:        "Query and mount named hierarchies with path-slice patterns",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (HCL)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// openHierarchy opens either a SQLite store (*.db) or a JSON document
// and returns its root plus a close func.
func openHierarchy(path string) (hier.Node, func() error, error) {
	if strings.HasSuffix(path, ".json") {
		root, err := hier.LoadDocumentFile(path)
		if err != nil {
			return nil, nil, err
		}
		return root, func() error { return nil }, nil
	}

	store, err := hier.OpenStore(path)
	if err != nil {
		return nil, nil, err
	}
	return store.Root(), store.Close, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
