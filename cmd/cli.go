package cmd

import (
	"github.com/cvelens/cvelens/internal/config"
)

var cliOpts = config.CliOnlyOptions{}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cliOpts.ConfigPath, "config", "c", "", "application config file")
	rootCmd.PersistentFlags().CountVarP(&cliOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress all logging output")

	bindPersistentFlag("quiet")
}
