package cmd

import (
	"context"
	"fmt"
	"time"

	"e2mcheck/internal/cli"
	"e2mcheck/internal/monitor"

	"github.com/spf13/cobra"
)

func newMonitorCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Record store notifications for later log verification",
	}
	cmd.AddCommand(root.newMonitorRecordCmd())
	cmd.AddCommand(newMonitorStopCmd())
	return cmd
}

func (o *rootOptions) newMonitorRecordCmd() *cobra.Command {
	var file string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Append RAN notifications published to the store to the monitor log",
		Long: `Record subscribes to the RAN manipulation and connection status change
channels and appends one line per notification, in redis-cli MONITOR format,
to the monitor log. It runs until interrupted or until --duration elapses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			path := file
			if path == "" {
				path = o.logPath(o.config.Logs.MonitorLog)
			}

			st := o.openStore()
			defer st.Close()
			if err := monitor.NewRecorder(st, nil).RecordToFile(ctx, path); err != nil {
				return o.storeError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Output file (default: configured monitor log)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop recording after this long (0 records until interrupted)")
	return cmd
}

func newMonitorStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Kill running redis-cli monitor processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := monitor.StopRedisCliMonitors(cmd.Context())
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("redis-cli monitors stopped"))
			return nil
		},
	}
}
