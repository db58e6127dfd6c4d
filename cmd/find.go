package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/hier"
)

var (
	findFirst        bool
	findGroupsOnly   bool
	findDatasetsOnly bool
)

var findCmd = &cobra.Command{
	Use:   "find [store] [name]",
	Short: "Find nodes by name or family prefix using the name index",
	Long: `Find locates every node whose name equals the given token, or whose
name belongs to the ordered family the token names (so "trial" also
finds trial.0, trial.1, ...).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, closeFn, err := openHierarchy(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		filter := hier.EverythingFilter
		if findGroupsOnly {
			filter = hier.FindFilter{IncludeGroups: true}
		}
		if findDatasetsOnly {
			filter = hier.FindFilter{IncludeDatasets: true}
		}

		ix := hier.BuildNameIndex(root)
		if findFirst {
			path, ok := ix.FindFirst(args[1], filter)
			if !ok {
				return fmt.Errorf("no node named %q", args[1])
			}
			fmt.Println(path)
			return nil
		}

		for _, path := range ix.FindAll(args[1], filter) {
			fmt.Println(path)
		}
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findFirst, "first", false, "Print only the first match in traversal order")
	findCmd.Flags().BoolVar(&findGroupsOnly, "groups", false, "Restrict to groups")
	findCmd.Flags().BoolVar(&findDatasetsOnly, "datasets", false, "Restrict to datasets")
	rootCmd.AddCommand(findCmd)
}
