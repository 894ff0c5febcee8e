package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benz9527/xrbt/lib/infra"
)

const envPrefix = "XRBT"

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "xrbt",
		Short: "sentinel red-black tree engine",
		Long:  "Insert and delete keys on a red-black tree and print its traversals.",

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newRunCmd(v), newVersionCmd())
	return root
}

// Flags > env (XRBT_*) > config file > flag defaults.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	// Enable environment variable binding, the env vars are not overloaded yet.
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return infra.WrapErrorStackWithMessage(err, "failed to bind persistent flags")
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return infra.WrapErrorStackWithMessage(err, "failed to bind local flags")
	}

	if cfgFile := v.GetString("config"); len(cfgFile) > 0 {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return infra.WrapErrorStackWithMessage(err, "failed to load config file "+cfgFile)
		}
	}
	return nil
}
