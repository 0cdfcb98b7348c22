package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dablenparty/dablenutil"
	"github.com/spf13/cobra"
)

func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <dir>...",
		Short: "Create directories and their parents, ignoring ones that exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]<-chan error, len(args))
			for i, dir := range args {
				results[i] = dablenutil.EnsureDirAsync(dir)
			}

			var errs []error
			for i, done := range results {
				if err := <-done; err != nil {
					errs = append(errs, err)
					continue
				}
				slog.Debug("directory ready", "dir", args[i])
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), args[i]); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}
