package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/hier"
)

var treeCmd = &cobra.Command{
	Use:   "tree [store] [path]",
	Short: "Print a hierarchy as an indented tree",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, closeFn, err := openHierarchy(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		start := root
		label := "/"
		if len(args) == 2 {
			node, ok := hier.Lookup(root, args[1])
			if !ok {
				return fmt.Errorf("no node at %q", args[1])
			}
			start = node
			label = args[1]
		}

		fmt.Println(label)
		renderTree(os.Stdout, start, 1)
		return nil
	},
}

// renderTree writes the subtree below n, one node per line, indented
// by depth. Datasets carry a shape/dtype summary.
func renderTree(w io.Writer, n hier.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range hier.SortedChildNames(n) {
		child := n.Children()[name]
		if child.IsGroup() {
			fmt.Fprintf(w, "%s%s/\n", indent, name)
			renderTree(w, child, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, name, datasetSummary(child))
	}
}

func datasetSummary(n hier.Node) string {
	info, ok := n.(hier.DatasetInfo)
	if !ok {
		return ""
	}
	var parts []string
	if shape := info.Shape(); len(shape) > 0 {
		dims := make([]string, len(shape))
		for i, d := range shape {
			dims[i] = fmt.Sprintf("%d", d)
		}
		parts = append(parts, "("+strings.Join(dims, ", ")+")")
	}
	if dtype := info.Dtype(); dtype != "" {
		parts = append(parts, dtype)
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
