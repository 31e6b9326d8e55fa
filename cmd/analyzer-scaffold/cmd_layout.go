package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/layout"
)

var layoutFormat string

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the files and directories the scaffold creates",
	Long: `Print the built-in layout without touching the filesystem.

Formats:
  tree  - tree(1) style listing (default)
  yaml  - files and directories as YAML lists`,
	Args: cobra.NoArgs,
	RunE: printLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutFormat, "format", "o", "tree", "Output format (tree|yaml)")
	rootCmd.AddCommand(layoutCmd)
}

func printLayout(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch layoutFormat {
	case "tree":
		fmt.Fprint(out, layout.Tree())
	case "yaml":
		data, err := layout.NewManifest().YAML()
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		return fmt.Errorf("unknown format: %s (want tree or yaml)", layoutFormat)
	}

	return nil
}
