package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/treeslice/internal/hier"
	"github.com/agentic-research/treeslice/internal/pathslice"
)

var (
	queryBudget int
	queryAttrs  string
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query [store] [pattern]",
	Short: "Match a path-slice pattern against a hierarchy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pattern, err := pathslice.Parse(args[1])
		if err != nil {
			return err
		}

		root, closeFn, err := openHierarchy(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		budget := cfg.VisitBudget
		if cmd.Flags().Changed("budget") {
			budget = queryBudget
		}
		var opts []pathslice.MatchOption
		if budget > 0 {
			opts = append(opts, pathslice.WithVisitBudget(budget))
		}

		paths, err := pathslice.Match(pattern, root, opts...)
		if err != nil {
			return err
		}

		var attrsExpr jp.Expr
		if queryAttrs != "" {
			attrsExpr, err = jp.ParseString(queryAttrs)
			if err != nil {
				return fmt.Errorf("parsing attrs path %q: %w", queryAttrs, err)
			}
		}

		if queryJSON {
			return printJSON(root, paths, attrsExpr)
		}
		for _, p := range paths {
			if attrsExpr == nil {
				fmt.Println(p)
				continue
			}
			fmt.Printf("%s\t%s\n", p, oj.JSON(extractAttrs(root, p, attrsExpr)))
		}
		return nil
	},
}

// extractAttrs applies a JSONPath expression to a node's attributes.
func extractAttrs(root hier.Node, path string, expr jp.Expr) any {
	node, ok := hier.Lookup(root, path)
	if !ok {
		return nil
	}
	a, ok := node.(hier.Attributed)
	if !ok || a.Attrs().IsNull() {
		return nil
	}
	got := expr.Get(a.Attrs().ToAny())
	switch len(got) {
	case 0:
		return nil
	case 1:
		return got[0]
	default:
		return got
	}
}

func printJSON(root hier.Node, paths []string, expr jp.Expr) error {
	out := make([]any, 0, len(paths))
	for _, p := range paths {
		entry := map[string]any{"path": p}
		if expr != nil {
			entry["attrs"] = extractAttrs(root, p, expr)
		}
		out = append(out, entry)
	}
	data, err := oj.Marshal(out, 2)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	queryCmd.Flags().IntVar(&queryBudget, "budget", 0, "Max nodes a match may visit (0 = unlimited)")
	queryCmd.Flags().StringVar(&queryAttrs, "attrs", "", "JSONPath applied to each match's attributes")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Emit matches as JSON")
	rootCmd.AddCommand(queryCmd)
}
