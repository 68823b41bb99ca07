package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/internal/log"
)

var sourceProjectsOpts struct {
	sourceType string
}

var sourceProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "list all projects visible in the source",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runSourceProjectsCmd(cmd, args))
	},
}

func init() {
	sourceProjectsCmd.Flags().StringVar(&sourceProjectsOpts.sourceType, "source", "", "source adapter to list from (default from config)")

	sourceCmd.AddCommand(sourceProjectsCmd)
}

func runSourceProjectsCmd(_ *cobra.Command, _ []string) int {
	sourceType := sourceProjectsOpts.sourceType
	if sourceType == "" {
		sourceType = appConfig.Source.Type
	}

	registry, err := newSourceRegistry()
	if err != nil {
		log.Errorf("unable to build source registry: %+v", err)
		return 1
	}

	src, err := registry.Get(sourceType)
	if err != nil {
		log.Errorf("unable to construct source: %+v", err)
		return 1
	}

	refs, err := src.FetchProjects()
	if err != nil {
		log.Errorf("unable to list projects: %+v", err)
		return 1
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Name"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, ref := range refs {
		table.Append([]string{ref.Key, ref.Name})
	}
	table.Render()

	return 0
}
