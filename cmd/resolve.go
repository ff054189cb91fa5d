package cmd

import (
	"e2mcheck/internal/cli"
	"e2mcheck/internal/resolver"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newResolveCmd(root *rootOptions) *cobra.Command {
	var format string
	var backend string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the E2 Manager URL, the E2T alpha address and the E2 adapter pod",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(format); err != nil {
				return err
			}

			cluster := root.config.Cluster
			if backend != "" {
				cluster.Resolver = backend
			}
			r, err := resolver.New(cluster)
			if err != nil {
				return err
			}
			stop := cli.StartProgress(cmd.ErrOrStderr(), root.quiet, "Resolving addresses in "+cluster.Namespace)
			addrs, err := resolver.ResolveAddresses(cmd.Context(), r, cluster)
			stop()
			if err != nil {
				return err
			}

			printer := cli.NewPrinter(cli.OutputFormat(format), cmd.OutOrStdout())
			return printer.Print(addrs, func(t table.Writer) {
				t.AppendHeader(table.Row{"NAME", "VALUE"})
				t.AppendRows([]table.Row{
					{"e2mgr", addrs.E2MgrURL},
					{"e2t-alpha", addrs.E2TAlphaAddress},
					{"e2adapter", addrs.E2AdapterPod},
				})
			})
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&backend, "resolver", "", "Override the configured resolver (kubectl, api)")
	return cmd
}
