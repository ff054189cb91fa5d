package cmd

import (
	"context"
	"fmt"
	"time"

	"e2mcheck/internal/cli"
	"e2mcheck/internal/seed"

	"github.com/spf13/cobra"
)

func newDBCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Seed and clean up the E2 Manager store",
	}

	cmd.AddCommand(root.newFlushCmd())
	cmd.AddCommand(root.newSeedCmd("populate-e2t",
		"Write the E2T instance fixture associated with test1, test2 and test3",
		(*seed.Seeder).PopulateE2TInstancesForGetE2TInstances))
	cmd.AddCommand(root.newSeedCmd("disable-ric",
		"Set enableRic to false in the E2 Manager general configuration",
		(*seed.Seeder).SetEnableRicFalse))
	cmd.AddCommand(root.newLoadInformationCmd())
	cmd.AddCommand(root.newGetCmd())
	cmd.AddCommand(root.newPingCmd())
	return cmd
}

// withSeeder opens the store for the duration of fn.
func (o *rootOptions) withSeeder(ctx context.Context, fn func(ctx context.Context, s *seed.Seeder) error) error {
	st := o.openStore()
	defer st.Close()
	if err := fn(ctx, seed.New(st, nil)); err != nil {
		return o.storeError(err)
	}
	return nil
}

func (o *rootOptions) newFlushCmd() *cobra.Command {
	var baseline seed.Baseline

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Remove all keys and restore the baseline records",
		Long: `Flush removes every key from the store, then writes the RSM general
configuration and, unless --without-e2t is given, the E2T addresses list and
an initialized E2T instance.

A positive --keepalive-offset makes the instance look fresh, a negative one
makes it look stale.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				if err := s.Reset(ctx, baseline); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("store flushed"))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&baseline.E2TAddress, "e2t-address", seed.DefaultE2TAddress, "Address of the restored E2T instance")
	cmd.Flags().DurationVar(&baseline.KeepAliveOffset, "keepalive-offset", 0, "Shift of the E2T keep-alive timestamp relative to now")
	cmd.Flags().BoolVar(&baseline.WithoutE2TKeys, "without-e2t", false, "Do not restore the E2T addresses and instance records")
	return cmd
}

func (o *rootOptions) newSeedCmd(use, short string, fn func(*seed.Seeder, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				if err := fn(s, ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(use))
				return nil
			})
		},
	}
}

func (o *rootOptions) newLoadInformationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-load-information <ran>",
		Short: "Write the load information record for a RAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var exists bool
			err := o.withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				var err error
				exists, err = s.AddLoadInformation(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}
			return runCheck(cmd, "load-information-added", args[0], func(context.Context) (bool, error) {
				return exists, nil
			})
		},
	}
}

func (o *rootOptions) newGetCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the raw value stored at a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			st := o.openStore()
			defer st.Close()
			value, err := st.Get(ctx, args[0])
			if err != nil {
				return o.storeError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Maximum time to wait for the store")
	return cmd
}

func (o *rootOptions) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := o.openStore()
			defer st.Close()
			if err := st.Ping(cmd.Context()); err != nil {
				return o.storeError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("store reachable at "+st.Addr()))
			return nil
		},
	}
}
