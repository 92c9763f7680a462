package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"uims/internal/platform/config"
)

// main wires the CLI. Business logic lives in the internal packages; the
// commands only assemble them.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "uims",
		Short:         "Learning space component inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML, JSON or TOML config file")

	load := func() (config.Config, error) {
		return config.Load(v)
	}
	root.AddCommand(newServeCmd(load), newMigrateCmd(load))
	return root
}
