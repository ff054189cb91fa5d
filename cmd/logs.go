package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"e2mcheck/internal/cli"
	"e2mcheck/internal/logscan"
	"e2mcheck/internal/store"

	"github.com/spf13/cobra"
)

// logsOptions holds the flags shared by the logs subcommands.
type logsOptions struct {
	*rootOptions
	wait time.Duration
}

func newLogsCmd(root *rootOptions) *cobra.Command {
	opts := &logsOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Verify E2 Manager and store monitor log contents",
	}
	cmd.PersistentFlags().DurationVar(&opts.wait, "wait", 0, "Keep rescanning the file until the messages appear or the duration elapses")

	cmd.AddCommand(opts.newVerifyCmd())
	cmd.AddCommand(opts.newPublishCmd())
	cmd.AddCommand(opts.newResetRanToRicCmd())
	cmd.AddCommand(opts.newConfigUpdateCmd())
	return cmd
}

// logPath resolves name against the configured log directory.
func (o *rootOptions) logPath(name string) string {
	if filepath.IsAbs(name) || o.config.Logs.Directory == "" {
		return name
	}
	return filepath.Join(o.config.Logs.Directory, name)
}

// match scans path once. With --wait it keeps rescanning until the messages
// appear, showing a spinner on progress.
func (o *logsOptions) match(ctx context.Context, progress io.Writer, path string, matchers ...logscan.LineMatcher) (bool, error) {
	if o.wait <= 0 {
		return logscan.MatchFile(path, matchers...)
	}

	ctx, cancel := context.WithTimeout(ctx, o.wait)
	defer cancel()
	stop := cli.StartProgress(progress, o.quiet, "Waiting for messages in "+path)
	err := logscan.Wait(ctx, path, matchers...)
	stop()
	if errors.Is(err, logscan.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (o *logsOptions) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file> <message> [message...]",
		Short: "Check that every message appears on some line of a log file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.logPath(args[0])
			matchers := make([]logscan.LineMatcher, 0, len(args)-1)
			for _, m := range args[1:] {
				matchers = append(matchers, logscan.LineMatcher{m})
			}
			return runCheck(cmd, "log-verify", path, func(ctx context.Context) (bool, error) {
				return o.match(ctx, cmd.ErrOrStderr(), path, matchers...)
			})
		},
	}
}

func (o *logsOptions) newPublishCmd() *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "publish <ran> <event>",
		Short: "Check that the store monitor log shows a RAN event being published",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch channel {
			case "manipulation":
				name = store.RanManipulationChannel
			case "connection-status":
				name = store.RanConnectionStatusChangeChannel
			default:
				return fmt.Errorf("unknown channel %q (valid: manipulation, connection-status)", channel)
			}

			path := o.logPath(o.config.Logs.MonitorLog)
			message := logscan.PublishMessage(name, args[0], args[1])
			return runCheck(cmd, "log-publish", args[0]+"_"+args[1], func(ctx context.Context) (bool, error) {
				return o.match(ctx, cmd.ErrOrStderr(), path, logscan.LineMatcher{message})
			})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "manipulation", "Channel: manipulation or connection-status")
	return cmd
}

func (o *logsOptions) newResetRanToRicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-ran-to-ric <ran>",
		Short: "Check that the E2 Manager log shows a reset request and response for a RAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.logPath(o.config.Logs.E2MgrLog)
			return runCheck(cmd, "log-reset-ran-to-ric", args[0], func(ctx context.Context) (bool, error) {
				return o.match(ctx, cmd.ErrOrStderr(), path,
					logscan.MessageTypeMatcher(logscan.MTypeResetRequest, args[0]),
					logscan.MessageTypeMatcher(logscan.MTypeResetResponse, args[0]),
				)
			})
		},
	}
}

func (o *logsOptions) newConfigUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-update <ran>",
		Short: "Check that the E2 Manager log shows a configuration update and its acknowledgement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.logPath(o.config.Logs.E2MgrLog)
			return runCheck(cmd, "log-config-update", args[0], func(ctx context.Context) (bool, error) {
				return o.match(ctx, cmd.ErrOrStderr(), path,
					logscan.MessageTypeMatcher(logscan.MTypeConfigurationUpdate, args[0]),
					logscan.MessageTypeMatcher(logscan.MTypeConfigurationUpdateResponse, args[0]),
				)
			})
		},
	}
}
