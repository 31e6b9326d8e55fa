// Package cli provides the command layer for analyzer-scaffold. It wires
// configuration, console output and the filesystem into the Scaffolder and
// implements the operations behind each command.
package cli

import (
	"fmt"

	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/config"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/scaffold"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/system"
	"github.com/zoro11031/homelab-coreos-minipc/analyzer-scaffold/internal/ui"
)

// Context holds all dependencies needed for scaffolding operations
type Context struct {
	Config *config.Config
	UI     *ui.UI
	FS     *system.FileSystem
}

// Options controls how a Context is built
type Options struct {
	ConfigPath     string // empty selects ~/.analyzer-scaffold.conf
	NonInteractive bool
	UI             *ui.UI // nil selects the console UI
}

// NewContext creates a new Context with all dependencies initialized
func NewContext(opts Options) (*Context, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	uiInstance := opts.UI
	if uiInstance == nil {
		uiInstance = ui.New()
	}
	uiInstance.SetNonInteractive(opts.NonInteractive)

	return &Context{
		Config: cfg,
		UI:     uiInstance,
		FS:     system.NewFileSystem(),
	}, nil
}

// NewScaffolder builds a Scaffolder for root using the configured permissions
func (ctx *Context) NewScaffolder(root string) (*scaffold.Scaffolder, error) {
	absRoot, err := system.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	dirPerm, err := ctx.Config.GetPerm(config.KeyDirPerm)
	if err != nil {
		return nil, err
	}
	filePerm, err := ctx.Config.GetPerm(config.KeyFilePerm)
	if err != nil {
		return nil, err
	}

	return scaffold.NewScaffolder(ctx.FS, ctx.UI, absRoot, dirPerm, filePerm), nil
}

// RunScaffold creates the project skeleton under root.
// With confirm set, the user is asked before any non-empty file is truncated.
func RunScaffold(ctx *Context, root string, confirm bool) error {
	s, err := ctx.NewScaffolder(root)
	if err != nil {
		return err
	}

	if confirm {
		proceed, err := confirmTruncation(ctx, s)
		if err != nil {
			return err
		}
		if !proceed {
			ctx.UI.Info("Scaffolding cancelled")
			return nil
		}
	}

	return s.CreateFileStructure()
}

func confirmTruncation(ctx *Context, s *scaffold.Scaffolder) (bool, error) {
	pending, err := s.PendingTruncations()
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		return true, nil
	}

	ctx.UI.Warningf("%d existing file(s) under %s will be truncated:", len(pending), s.Root())
	for _, p := range pending {
		ctx.UI.Warningf("  %s", p)
	}

	proceed, err := ctx.UI.PromptYesNo("Discard their content and continue?", false)
	if err != nil {
		return false, fmt.Errorf("failed to prompt for confirmation: %w", err)
	}
	return proceed, nil
}

// RunVerify prints a verification report for the skeleton under root
func RunVerify(ctx *Context, root string) error {
	s, err := ctx.NewScaffolder(root)
	if err != nil {
		return err
	}

	ctx.UI.Header("Verify Layout")
	ctx.UI.Infof("Root: %s", s.Root())
	ctx.UI.Print("")

	checks, verifyErr := s.Verify()
	nonEmpty := 0
	for _, c := range checks {
		name := c.Path
		if c.Dir {
			name += "/"
		}
		switch {
		case !c.OK:
			ctx.UI.Errorf("✗ %s (%s)", name, c.Reason)
		case !c.Dir && c.Size > 0:
			nonEmpty++
			ctx.UI.Successf("✓ %s (%d bytes)", name, c.Size)
		default:
			ctx.UI.Successf("✓ %s", name)
		}
	}

	ctx.UI.Print("")
	ctx.UI.Separator()
	if verifyErr != nil {
		return verifyErr
	}

	ctx.UI.Successf("All %d layout entries present", len(checks))
	if nonEmpty > 0 {
		ctx.UI.Warningf("%d file(s) have content; running the scaffold again would truncate them", nonEmpty)
	}
	return nil
}
