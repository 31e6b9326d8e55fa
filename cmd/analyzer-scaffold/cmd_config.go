package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change scaffold settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file.

Keys:
  SCAFFOLD_DIR_PERM   - octal mode for created directories (default 0755)
  SCAFFOLD_FILE_PERM  - octal mode for newly created files (default 0644)

Directory modes must grant the owner rwx (0700); file modes must grant the
owner write (0200) so a later run can truncate them.`,
	Args: cobra.ExactArgs(2),
	RunE: setConfig,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func showConfig(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}

	exists, err := ctx.FS.FileExists(ctx.Config.FilePath())
	if err != nil {
		return err
	}
	if exists {
		ctx.UI.Infof("Configuration file: %s", ctx.Config.FilePath())
	} else {
		ctx.UI.Infof("Configuration file: %s (not present, using defaults)", ctx.Config.FilePath())
	}

	out := cmd.OutOrStdout()
	for _, kv := range ctx.Config.Effective() {
		fmt.Fprintf(out, "%s=%s\n", kv[0], kv[1])
	}
	return nil
}

func setConfig(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := ctx.Config.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	ctx.UI.Successf("%s=%s saved to %s", key, value, ctx.Config.FilePath())
	return nil
}
