package cmd

import (
	"context"
	"fmt"
	"strings"

	"e2mcheck/internal/cli"

	"github.com/spf13/cobra"
)

// checkFunc is a verification returning whether it holds.
type checkFunc func(ctx context.Context) (bool, error)

// runCheck runs fn, prints its outcome and turns a false result into a
// *cli.CheckFailedError.
func runCheck(cmd *cobra.Command, check, subject string, fn checkFunc) error {
	ok, err := fn(cmd.Context())
	if err != nil {
		return err
	}

	line := check
	if subject != "" {
		line += " " + subject
	}
	if ok {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(line))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatFailure(line))
	}
	return cli.CheckResult(check, subject, ok, nil)
}

// runStoreCheck is runCheck for checks reading the store; reachability
// failures become a *cli.ConnectionError.
func (o *rootOptions) runStoreCheck(cmd *cobra.Command, check, subject string, fn checkFunc) error {
	return runCheck(cmd, check, subject, func(ctx context.Context) (bool, error) {
		ok, err := fn(ctx)
		if err != nil {
			return false, o.storeError(err)
		}
		return ok, nil
	})
}

// splitPath turns "a.b.0" into a JSON field path.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
