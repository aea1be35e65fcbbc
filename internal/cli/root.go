// internal/cli/root.go
package agon

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	successMark = color.New(color.FgGreen).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:           "benchchart",
	Short:         "benchchart turns Google Benchmark JSON results into Google Charts HTML",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults) into a fresh viper instance.
		v := viper.New()
		setDefaults(v, appconfig.Default())
		used, err := readConfig(cmd, v)
		if err != nil {
			return err
		}

		// 2) Flags override the config file; unset flags fall back to it.
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults).
		var cfg appconfig.Config
		if err := v.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = used
		cfg.XMin = optionalFloat(cmd, v, "xMin")
		cfg.XMax = optionalFloat(cmd, v, "xMax")
		cfg.YMin = optionalFloat(cmd, v, "yMin")
		cfg.YMax = optionalFloat(cmd, v, "yMax")
		currentConfig = &cfg

		var console io.Writer
		if cfg.Debug {
			console = cmd.ErrOrStderr()
		}
		if err := logging.Init(cfg.LogFilePath(), console); err != nil {
			return fmt.Errorf("unable to initialise logging: %w", err)
		}
		if used != "" {
			logging.LogEvent("Config file: %s", used)
		} else {
			logging.LogEvent("No config file loaded (using defaults)")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Close()
	},
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := run(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// run executes the root command. A failed command skips PersistentPostRunE,
// so the failure is logged and the log closed here.
func run() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.LogEvent("Command failed: %v", err)
		_ = logging.Close()
	}
	return err
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel("Error:"), err)
}

func init() {
	// --config (defaults to your existing path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/benchchart.json)")

	// Persistent flags available to all commands
	def := appconfig.Default()
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and dumps")
	rootCmd.PersistentFlags().String("logFile", "", "append log output to this file")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Google Benchmark JSON results file")
	rootCmd.PersistentFlags().StringP("filter", "f", "", "benchmark name filter, '/'-separated with * wildcards")
	rootCmd.PersistentFlags().StringSliceP("selectors", "s", def.Selectors, "key selector followed by value selectors, e.g. name/1,cpu_time")
	rootCmd.PersistentFlags().Bool("sortKeys", false, "order rows by key instead of first appearance")
}

// setDefaults registers every key of def so that config files only need to
// name the settings they change.
func setDefaults(v *viper.Viper, def appconfig.Config) {
	v.SetDefault("type", def.Type)
	v.SetDefault("legend", def.Legend)
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("selectors", def.Selectors)
	v.SetDefault("indent", def.Indent)
	v.SetDefault("dataOpacity", def.DataOpacity)
	v.SetDefault("debug", def.Debug)
}

// readConfig reads the config file and returns its path, or "" when no file
// was read. A missing file is only an error when the path was given
// explicitly.
func readConfig(cmd *cobra.Command, v *viper.Viper) (string, error) {
	if cfgFile == "" {
		return "", nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if !cmd.Flags().Changed("config") {
				// No file: fine, we'll use defaults/flags
				return "", nil
			}
			return "", fmt.Errorf("no configuration file found at %q", cfgFile)
		}
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// optionalFloat returns the value of key when set by flag or config file,
// or nil when it was left unset.
func optionalFloat(cmd *cobra.Command, v *viper.Viper, key string) *float64 {
	f := cmd.Flags().Lookup(key)
	if f != nil && f.Changed {
		val, err := cmd.Flags().GetFloat64(key)
		if err == nil {
			return &val
		}
	}
	if v.InConfig(key) {
		val := v.GetFloat64(key)
		return &val
	}
	return nil
}

// getConfig returns the loaded application configuration for other commands.
func getConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo enables the --version flag.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
