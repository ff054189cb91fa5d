package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"e2mcheck/internal/cli"
	"e2mcheck/internal/inspect"
	"e2mcheck/internal/seed"
	"e2mcheck/internal/store"
	pkgstrings "e2mcheck/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// inspectOptions holds the flags shared by the inspect subcommands.
type inspectOptions struct {
	*rootOptions
	address string
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	opts := &inspectOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Check records in the E2 Manager store",
		Long: `Inspect reads records from the store and checks them against expected
literal values. A missing record makes a check fail rather than error.`,
	}
	cmd.PersistentFlags().StringVar(&opts.address, "address", seed.DefaultE2TAddress, "E2T instance address")

	cmd.AddCommand(opts.newE2TCheckCmd("e2t-empty", "Check that the E2T instance has no associated RANs",
		(*inspect.Inspector).E2TInstanceHasNoAssociatedRans))
	cmd.AddCommand(opts.newE2TCheckCmd("e2t-in-addresses", "Check that the E2T address is in the addresses list",
		(*inspect.Inspector).E2TInstanceExistsInAddresses))
	cmd.AddCommand(opts.newE2TCheckCmd("e2t-exists", "Check that the E2T instance record exists",
		(*inspect.Inspector).E2TInstanceKeyExists))
	cmd.AddCommand(opts.newE2TCheckCmd("e2t-initialized", "Check that the E2T instance is active with no associated RANs",
		(*inspect.Inspector).E2TInstanceInitialized))
	cmd.AddCommand(opts.newE2TAssociatedCmd())
	cmd.AddCommand(opts.newE2TStaleCmd())
	cmd.AddCommand(opts.newE2TAddressesCmd())
	cmd.AddCommand(opts.newE2TListCmd())
	cmd.AddCommand(opts.newRsmRanCmd())
	cmd.AddCommand(opts.newRicEnabledCmd())
	cmd.AddCommand(opts.newLoadInformationCmd())
	cmd.AddCommand(opts.newFieldCmd())
	return cmd
}

// withInspector opens the store for the duration of fn.
func (o *inspectOptions) withInspector(ctx context.Context, fn func(ctx context.Context, i *inspect.Inspector) (bool, error)) (bool, error) {
	st := o.openStore()
	defer st.Close()
	return fn(ctx, inspect.New(st, nil))
}

func (o *inspectOptions) check(cmd *cobra.Command, name, subject string, fn func(ctx context.Context, i *inspect.Inspector) (bool, error)) error {
	return o.runStoreCheck(cmd, name, subject, func(ctx context.Context) (bool, error) {
		return o.withInspector(ctx, fn)
	})
}

func (o *inspectOptions) newE2TCheckCmd(use, short string, fn func(*inspect.Inspector, context.Context, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, use, o.address, func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return fn(i, ctx, o.address)
			})
		},
	}
}

func (o *inspectOptions) newE2TAssociatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "e2t-associated <ran>",
		Short: "Check that a RAN is associated with the E2T instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, "e2t-associated", args[0]+"@"+o.address, func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return i.RanIsAssociatedWithE2TInstance(ctx, args[0], o.address)
			})
		},
	}
}

func (o *inspectOptions) newE2TStaleCmd() *cobra.Command {
	var threshold time.Duration

	cmd := &cobra.Command{
		Use:   "e2t-stale",
		Short: "Check that the E2T keep-alive is older than the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, "e2t-stale", o.address, func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return i.E2TInstanceIsStale(ctx, o.address, threshold)
			})
		},
	}
	cmd.Flags().DurationVar(&threshold, "threshold", 10*time.Second, "Keep-alive age after which the instance is stale")
	return cmd
}

func (o *inspectOptions) newE2TAddressesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "e2t-addresses <address>...",
		Short: "Check that the E2T addresses list is exactly the given addresses, in order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, "e2t-addresses", fmt.Sprint(args), func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return i.E2TAddressesEqual(ctx, args...)
			})
		},
	}
}

func (o *inspectOptions) newE2TListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "e2t-list",
		Short: "List the registered E2T instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(format); err != nil {
				return err
			}

			st := o.openStore()
			defer st.Close()
			instances, err := inspect.New(st, nil).ListE2TInstances(cmd.Context())
			if err != nil {
				return o.storeError(err)
			}
			if instances == nil {
				instances = []*store.E2TInstance{}
			}

			printer := cli.NewPrinter(cli.OutputFormat(format), cmd.OutOrStdout())
			return printer.Print(instances, func(t table.Writer) {
				t.AppendHeader(table.Row{"ADDRESS", "STATE", "RANS", "KEEP-ALIVE"})
				for _, inst := range instances {
					t.AppendRow(table.Row{
						inst.Address,
						inst.State,
						pkgstrings.JoinTruncated(inst.AssociatedRanList, pkgstrings.DefaultMaxLen),
						inst.KeepAlive().UTC().Format(time.RFC3339Nano),
					})
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")
	return cmd
}

func (o *inspectOptions) newRsmRanCmd() *cobra.Command {
	var enb1, enb2 int64
	var action string
	var actionStatus bool

	cmd := &cobra.Command{
		Use:   "rsm-ran <ran>",
		Short: "Check the resource status manager record of a RAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected := inspect.DefaultRsmRanInfo(args[0])
			flags := cmd.Flags()
			if flags.Changed("enb1-measurement-id") {
				expected.Enb1MeasurementID = enb1
			}
			if flags.Changed("enb2-measurement-id") {
				expected.Enb2MeasurementID = enb2
			}
			if flags.Changed("action") {
				expected.Action = action
			}
			if flags.Changed("action-status") {
				expected.ActionStatus = actionStatus
			}
			return o.check(cmd, "rsm-ran", args[0], func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return i.RsmRanInfoMatches(ctx, expected)
			})
		},
	}
	cmd.Flags().Int64Var(&enb1, "enb1-measurement-id", 1, "Expected eNB1 measurement ID")
	cmd.Flags().Int64Var(&enb2, "enb2-measurement-id", 0, "Expected eNB2 measurement ID")
	cmd.Flags().StringVar(&action, "action", "start", "Expected action")
	cmd.Flags().BoolVar(&actionStatus, "action-status", false, "Expected action status")
	return cmd
}

func (o *inspectOptions) newRicEnabledCmd() *cobra.Command {
	var expected bool

	cmd := &cobra.Command{
		Use:   "ric-enabled",
		Short: "Check the enableRic flag of the general configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, "ric-enabled", strconv.FormatBool(expected), func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				return i.RicEnabledIs(ctx, expected)
			})
		},
	}
	cmd.Flags().BoolVar(&expected, "expected", true, "Expected value of enableRic")
	return cmd
}

func (o *inspectOptions) newLoadInformationCmd() *cobra.Command {
	var match bool

	cmd := &cobra.Command{
		Use:   "load-information <ran>",
		Short: "Check that the load information record of a RAN exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.check(cmd, "load-information", args[0], func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				if match {
					return i.LoadInformationMatches(ctx, args[0], seed.LoadInformationValue)
				}
				return i.LoadInformationExists(ctx, args[0])
			})
		},
	}
	cmd.Flags().BoolVar(&match, "match", false, "Also require the record to equal the seeded value")
	return cmd
}

func (o *inspectOptions) newFieldCmd() *cobra.Command {
	var contains bool

	cmd := &cobra.Command{
		Use:   "field <key> <path> <expected>",
		Short: "Check a field of a JSON record",
		Long: `Field parses the JSON record at key and compares the value at path with
expected. Path elements are separated by dots and are object keys or array
indices, e.g. "associatedRanList.0". String values are compared unquoted,
other values by their JSON text.

With --contains, path must name an array holding expected as an element.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, path, expected := args[0], splitPath(args[1]), args[2]
			return o.check(cmd, "field", key+" "+args[1], func(ctx context.Context, i *inspect.Inspector) (bool, error) {
				if contains {
					return i.FieldContains(ctx, key, path, expected)
				}
				return i.FieldEquals(ctx, key, path, expected)
			})
		},
	}
	cmd.Flags().BoolVar(&contains, "contains", false, "Check array membership instead of equality")
	return cmd
}
