package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/coursegen/internal/output"
)

var pathsIndent bool

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List every page path in navigation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSite(cmd.Context(), cliLogger())
		if err != nil {
			return err
		}
		paths := s.Navigator().AllPaths()
		if pathsIndent {
			fmt.Fprint(cmd.OutOrStdout(), output.RenderPaths(paths))
			return nil
		}
		if len(paths) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(paths, "\n"))
		}
		return nil
	},
}

func init() {
	pathsCmd.Flags().BoolVarP(&pathsIndent, "indent", "i", false, "indent paths by depth")
	rootCmd.AddCommand(pathsCmd)
}
