package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd assembles the command tree around a fresh viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	setDefaults(v)

	var cfgFile, envFile string
	root := &cobra.Command{
		Use:          "gridpath",
		Short:        "Shortest paths on 4-connected grids with BFS and A*",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(v, envFile, cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading GRIDPATH_* variables")
	pf.String(keyLogLevel, "info", "log level: debug, info, warn or error")
	_ = v.BindPFlag(keyLogLevel, pf.Lookup(keyLogLevel))

	root.AddCommand(newSolveCmd(v), newServeCmd(v))
	return root
}
