package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/cli"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/ui"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/pkg/version"
)

var (
	targetDir  string
	configPath string
	confirm    bool
)

var rootCmd = &cobra.Command{
	Use:   "analyzer-scaffold",
	Short: "Create the code analyzer project skeleton",
	Long: `Create the skeleton of the code analyzer service in the current directory.

Every file in the layout is created empty; a file that already exists is
truncated to zero length. The tests/unit and tests/integration directories are
created empty. One line is printed per created file and directory.

Run "analyzer-scaffold layout" to see the files that will be created.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	RunE:          runScaffold,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.analyzer-scaffold.conf)")
	rootCmd.PersistentFlags().StringVarP(&targetDir, "dir", "C", ".", "Project root to scaffold into")
	rootCmd.Flags().BoolVar(&confirm, "confirm", false, "Ask before truncating files that have content")

	rootCmd.AddCommand(versionCmd)
}

// newContext builds a Context whose UI writes to the command's stdout and stderr
func newContext(cmd *cobra.Command) (*cli.Context, error) {
	ctx, err := cli.NewContext(cli.Options{
		ConfigPath: configPath,
		UI:         ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize context: %w", err)
	}
	return ctx, nil
}

func runScaffold(cmd *cobra.Command, args []string) error {
	ctx, err := newContext(cmd)
	if err != nil {
		return err
	}

	return cli.RunScaffold(ctx, targetDir, confirm)
}

// execute runs the command line and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
