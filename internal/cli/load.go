package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/sheetload/internal/config"
	"github.com/vvka-141/sheetload/internal/db"
	"github.com/vvka-141/sheetload/internal/loader"
	"github.com/vvka-141/sheetload/internal/services"
	"github.com/vvka-141/sheetload/internal/source"
	"github.com/vvka-141/sheetload/internal/tui"
	"github.com/vvka-141/sheetload/internal/ui"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if settings.StayOpen {
		defer pause(cmd)
	}

	return load(cmd, args, settings, verbose)
}

func load(cmd *cobra.Command, args []string, settings *config.FileConfig, verbose bool) error {
	runID := uuid.NewString()
	logger, err := newLogger(settings.Logging, verbose, runID, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := withInterrupt(commandContext(cmd))
	defer stop()

	opener := source.NewOpener(logger)
	workbook, err := resolveWorkbook(ctx, cmd, args, opener)
	if err != nil {
		return err
	}

	env := db.LoadFromEnvironment()
	cfg, err := buildLoadConfig(settings, workbook, runID, env, verbose)
	if err != nil {
		return err
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if cfg.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	}
	defer cancel()

	var approver sheetload.Approver
	if cfg.SQL.Force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}

	importer := services.NewImportService(
		func(c *sheetload.ConnectionConfig) (sheetload.Connector, error) {
			return db.NewConnector(c, logger)
		},
		opener,
		loader.NewLoader(approver, logger),
		logger,
		env,
	)

	if _, err := importer.Import(runCtx, cfg); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

// resolveWorkbook returns the workbook argument, or asks for one.
// A prompted path must exist before it is accepted.
func resolveWorkbook(ctx context.Context, cmd *cobra.Command, args []string, opener *source.Opener) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	validate := func(path string) error {
		loc, err := source.Parse(path)
		if err != nil {
			return err
		}
		return opener.Check(ctx, loc)
	}

	path, err := tui.PromptWorkbookPath(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), validate)
	if errors.Is(err, tui.ErrPromptCancelled) {
		return "", fmt.Errorf("no workbook given: %w", sheetload.ErrInvalidConfig)
	}
	return path, err
}

func pause(cmd *cobra.Command) {
	if err := ui.WaitForKey(context.Background(), cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withInterrupt cancels the returned context on Ctrl+C or SIGTERM.
func withInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling import...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
