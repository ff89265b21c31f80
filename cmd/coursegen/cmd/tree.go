package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/coursegen/internal/output"
)

var (
	treeIgnored   bool
	treeLocations bool
	treeJSON      bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the content tree",
	Long: `Print the sorted content tree. Nodes without their own document are
marked with "+". Ignored nodes are hidden unless --ignored is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSite(cmd.Context(), cliLogger())
		if err != nil {
			return err
		}
		tree := s.Navigator().Tree()

		out := cmd.OutOrStdout()
		if treeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tree.Root)
		}

		fmt.Fprint(out, output.RenderTree(tree.Root, output.TreeOptions{
			ShowIgnored:   treeIgnored,
			ShowLocations: treeLocations,
		}))
		for _, c := range tree.Collisions {
			fmt.Fprintf(out, "collision at %q: %v (using %s)\n", c.Path, c.Locations, c.Winner())
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeIgnored, "ignored", false, "include ignored nodes")
	treeCmd.Flags().BoolVarP(&treeLocations, "locations", "l", false, "show source locations")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "print the tree as JSON")
	rootCmd.AddCommand(treeCmd)
}
