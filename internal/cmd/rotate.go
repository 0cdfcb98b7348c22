package cmd

import (
	"fmt"
	"log/slog"

	"github.com/dablenparty/dablenutil/internal/config"
	"github.com/dablenparty/dablenutil/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRotateCmd() *cobra.Command {
	rotateCmd := &cobra.Command{
		Use:   "rotate",
		Short: "Archive the previous session's log",
		Long: `Compress {dir}/{file} into {dir}/{package_}{YYYY-MM-DD_HH-MM-SS}.log.gz and
remove it, then print the path the next session should log to.

Nothing happens when the log file does not exist.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noLogAnnotation: ""},
		RunE:        runRotate,
	}

	rotateCmd.Flags().StringP("file", "f", "", "active log file name (default from logging.file)")
	_ = viper.BindPFlag("logging.file", rotateCmd.Flags().Lookup("file"))
	return rotateCmd
}

func runRotate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := cfg.Logging.ToLogging()
	path, err := logging.Rotate(logCfg)
	if err != nil {
		return err
	}

	slog.Debug("rotated logs", "folder", logCfg.Folder, "package", logCfg.PackageName)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
