package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/cvelens/cvelens/cvelens/db"
	"github.com/cvelens/cvelens/cvelens/db/store"
	"github.com/cvelens/cvelens/cvelens/source"
	"github.com/cvelens/cvelens/cvelens/source/jira"
)

func stderrPrintLnf(message string, args ...interface{}) error {
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	_, err := fmt.Fprintf(os.Stderr, message, args...)
	return err
}

func bindPersistentFlag(flag string) {
	if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}
}

// openStore opens (creating if needed) the entity store configured for the
// application.
func openStore() (db.Store, error) {
	return store.New(appConfig.DB.Path(), false)
}

// newSourceRegistry builds the registry of all source adapters available with
// the current application config.
func newSourceRegistry() (*source.Registry, error) {
	registry := source.NewRegistry()

	err := registry.Register(jira.SourceType, func() (source.Source, error) {
		return jira.New(jira.Config{
			Server:   appConfig.Source.Jira.Server,
			Token:    appConfig.Source.Jira.Token,
			Labels:   appConfig.Source.Jira.Labels,
			PageSize: appConfig.Source.Jira.PageSize,
		})
	})
	if err != nil {
		return nil, err
	}

	return registry, nil
}
