package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"e2mcheck/internal/cli"
	"e2mcheck/internal/config"
	"e2mcheck/internal/store"
	"e2mcheck/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
// Test runners rely on them to tell a failed check apart from a broken setup.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCheckFailed indicates a verification ran and returned false.
	ExitCodeCheckFailed = 2
	// ExitCodeStoreUnreachable indicates the store could not be reached.
	ExitCodeStoreUnreachable = 3
)

// rootOptions holds the persistent flags and the configuration loaded from them.
type rootOptions struct {
	configPath string
	logLevel   string
	quiet      bool
	config     config.E2MCheckConfig
}

// rootCmd represents the base command for the e2mcheck application.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "e2mcheck",
		Short: "End-to-end test helpers for the E2 Manager",
		Long: `e2mcheck verifies E2 Manager log output, seeds and inspects the Redis
store the E2 Manager persists its state in, records store notifications and
resolves the runtime addresses of the RIC platform services.

Checks exit with 0 when they hold, 2 when they do not and 3 when the store
cannot be reached.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	cmd.SetVersionTemplate(`{{printf "e2mcheck version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration directory (default ~/.config/e2mcheck)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress indicators")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newLogsCmd(opts))
	cmd.AddCommand(newDBCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newMonitorCmd(opts))
	return cmd
}

// load initializes logging and reads the configuration.
func (o *rootOptions) load(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	if o.configPath == "" {
		o.configPath, err = config.GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.config = cfg
	return nil
}

// openStore returns a store for the configured Redis instance.
func (o *rootOptions) openStore() *store.Store {
	return store.New(o.config.Store)
}

// storeError classifies reachability failures of the configured store.
func (o *rootOptions) storeError(err error) error {
	return cli.WrapConnectionError(err, o.config.Store.Addr())
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var checkFailed *cli.CheckFailedError
	if errors.As(err, &checkFailed) {
		return ExitCodeCheckFailed
	}

	var connErr *cli.ConnectionError
	if errors.As(err, &connErr) {
		return ExitCodeStoreUnreachable
	}

	// Default to general error
	return ExitCodeError
}
