package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/gpu"
	"github.com/hiveden/sysmetrics/internal/hw"
	"github.com/hiveden/sysmetrics/internal/runcontext"
	"github.com/hiveden/sysmetrics/internal/sysmetrics"
)

func buildTagsCommand(providers ...func() runcontext.Provider) *cobra.Command {
	var output string
	var all bool

	if len(providers) == 0 {
		providers = []func() runcontext.Provider{
			func() runcontext.Provider { return newProvider() },
		}
	}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Resolve the run tags the enabled providers would attach",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := runcontext.NewRegistry(nil)
			if selection := providerSelection(viper.GetString("provider")); selection != "" {
				registry.Select(selection)
			}
			for _, factory := range providers {
				if err := registry.Register(factory()); err != nil {
					return err
				}
			}

			tags, err := registry.Resolve(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if !all {
				tags = systemTags(tags)
			}
			return writeTags(cmd.OutOrStdout(), tags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&all, "all", false, "show tags from every provider, not only sys.* tags")

	return cmd
}

// providerSelection picks the providers to enable: the --provider flag, then
// the environment variable, then sysmetrics alone. An empty result means the
// registry reads the environment itself.
func providerSelection(flag string) string {
	switch {
	case flag != "":
		return flag
	case os.Getenv(runcontext.EnvProvider) != "":
		return ""
	default:
		return sysmetrics.Name
	}
}

func buildGPUCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gpu",
		Short: "Run the GPU probe for this platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := hw.GetSystemInfo(cmd.Context())
			if err != nil {
				return err
			}

			platform := gpu.ParsePlatform(sys.OS)
			name := gpu.Name(cmd.Context(), platform, gpu.ExecRunner(viper.GetDuration("probe_timeout")))

			fmt.Fprintf(cmd.OutOrStdout(), "Platform: %s\nGPU:      %s\n", platform, name)
			return nil
		},
	}
}

func buildHardwareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hw",
		Short: "Print a detailed hardware inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := hw.GetHardwareInfo()
			if err != nil {
				return err
			}

			report := map[string]interface{}{
				"cpu":           info.CPU.String(),
				"memory":        info.Memory.String(),
				"block_storage": info.BlockStorage.String(),
				"graphics":      info.GraphicsCardNames(),
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(report)
		},
	}
}

func buildSystemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Print the host system summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaults.CollectTimeout)
			defer cancel()

			sys, err := hw.GetSystemInfo(ctx)
			if err != nil {
				return err
			}

			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				hw.SystemInfo `yaml:",inline"`
				Descriptor    string `yaml:"descriptor"`
			}{*sys, sys.Descriptor()})
		},
	}
}

func systemTags(tags map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range tags {
		if strings.HasPrefix(k, "sys.") || k == sysmetrics.TagError {
			out[k] = v
		}
	}
	return out
}

func writeTags(w io.Writer, tags map[string]string, format string) error {
	switch format {
	case "yaml":
		return yaml.NewEncoder(w).Encode(tags)
	case "text", "":
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, tags[k])
		}
		fmt.Fprintln(w, strings.Repeat("-", 40))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
