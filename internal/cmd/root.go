package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dablenparty/dablenutil/internal/config"
	"github.com/dablenparty/dablenutil/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// noLogAnnotation marks commands that cannot run while the library logger
// owns the log file.
const noLogAnnotation = "dablenutil/no-log"

// closeLog closes the file sink installed by --log, if any.
var closeLog func() error

// NewRootCmd builds the dablenutil command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dablenutil",
		Short: "Log rotation and small build helpers",
		Long: `dablenutil exposes the helpers of the dablenutil library on the command line:
platform-specific executable names, idempotent directory creation, and
rotation of session logs into timestamped gzip archives.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: startLogging,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/dablenutil/config.yaml)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "log folder (default from logging.dir)")
	rootCmd.PersistentFlags().StringP("package", "p", "", "package name prefix for archives (default from logging.package_name)")
	rootCmd.PersistentFlags().Bool("log", false, "log this run to the console and the log folder")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("logging.package_name", rootCmd.PersistentFlags().Lookup("package"))
	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))

	rootCmd.AddCommand(
		newExeNameCmd(),
		newMkdirCmd(),
		newRotateCmd(),
		newArchivesCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	err := NewRootCmd().Execute()
	if cerr := stopLogging(); err == nil {
		err = cerr
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DABLENUTIL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DABLENUTIL_LOGGING_PACKAGE_NAME for logging.package_name
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// startLogging installs the library logger for this run when --log is set.
func startLogging(cmd *cobra.Command, args []string) error {
	if !viper.GetBool("log") {
		return nil
	}
	if _, ok := cmd.Annotations[noLogAnnotation]; ok {
		return fmt.Errorf("%s cannot be combined with --log: the log it works on would be in use", cmd.Name())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := cfg.Logging.ToLogging()
	if cfg.Logging.RotateOnStart {
		closeLog, err = logging.InitWithRotation(logCfg)
	} else {
		closeLog, err = logging.Init(logCfg)
	}
	if err != nil {
		return err
	}

	slog.Debug("logging started", "command", cmd.CommandPath(), "file", logCfg.LogPath())
	return nil
}

// stopLogging closes the file sink opened by startLogging.
func stopLogging() error {
	if closeLog == nil {
		return nil
	}
	err := closeLog()
	closeLog = nil
	return err
}
