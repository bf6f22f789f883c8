package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/runcontext"
	"github.com/hiveden/sysmetrics/internal/sysmetrics"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sysmetrics",
		Short:         "Inspect the host facts attached to tracked runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				viper.SetConfigFile(configFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file: %w", err)
				}
			}
			return setupLogging(viper.GetString("log_level"))
		},
	}

	viper.SetEnvPrefix("SYSMETRICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml)")
	flags.String("disk-path", "", "path whose filesystem is measured for free space (default is the working directory)")
	flags.Duration("probe-timeout", defaults.ProbeTimeout, "timeout for each GPU inspection command")
	flags.String("provider", "", "run context providers to enable, comma separated (default is $"+runcontext.EnvProvider+", then "+sysmetrics.Name+")")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	viper.BindPFlag("disk_path", flags.Lookup("disk-path"))
	viper.BindPFlag("probe_timeout", flags.Lookup("probe-timeout"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("provider", flags.Lookup("provider"))

	rootCmd.AddCommand(buildTagsCommand())
	rootCmd.AddCommand(buildGPUCommand())
	rootCmd.AddCommand(buildHardwareCommand())
	rootCmd.AddCommand(buildSystemCommand())

	return rootCmd
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func newProvider() *sysmetrics.Provider {
	return sysmetrics.NewProvider(
		sysmetrics.WithDiskPath(viper.GetString("disk_path")),
		sysmetrics.WithProbeTimeout(viper.GetDuration("probe_timeout")),
	)
}
