package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/cvelens/teamconfig"
	"github.com/cvelens/cvelens/internal/log"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "team and project ownership operations",
}

var teamsApplyOpts struct {
	file string
}

var teamsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "reconcile teams, projects, and dependencies from the config file",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runTeamsApplyCmd(cmd, args))
	},
}

func init() {
	teamsApplyCmd.Flags().StringVarP(&teamsApplyOpts.file, "file", "f", "", "teams config file (default from application config)")

	teamsCmd.AddCommand(teamsApplyCmd)
	rootCmd.AddCommand(teamsCmd)
}

func runTeamsApplyCmd(_ *cobra.Command, _ []string) int {
	file := teamsApplyOpts.file
	if file == "" {
		file = appConfig.Teams.File
	}

	cfg, err := teamconfig.LoadFile(file)
	if err != nil {
		log.Errorf("unable to load teams config: %+v", err)
		return 1
	}

	s, err := openStore()
	if err != nil {
		log.Errorf("unable to open database: %+v", err)
		return 1
	}
	defer s.Close()

	stats, err := teamconfig.Apply(s, cfg)
	if err != nil {
		log.Errorf("unable to apply teams config: %+v", err)
		return 1
	}

	fmt.Printf("Teams created:      %d\n", stats.TeamsCreated)
	fmt.Printf("Teams updated:      %d\n", stats.TeamsUpdated)
	fmt.Printf("Projects created:   %d\n", stats.ProjectsCreated)
	fmt.Printf("Dependencies added: %d\n", stats.DependenciesAdded)

	return 0
}
