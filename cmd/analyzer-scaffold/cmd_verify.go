package main

import (
	"github.com/spf13/cobra"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/cli"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the project skeleton exists",
	Long: `Check every file and directory of the layout under the project root.

Files that already have content are reported with their size, since running
the scaffold again would truncate them. Exits non-zero if any entry is missing.`,
	Args: cobra.NoArgs,
	RunE: verifyLayout,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyLayout(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}

	return cli.RunVerify(ctx, targetDir)
}
