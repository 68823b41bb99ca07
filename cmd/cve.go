package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/cvelens/severity"
	"github.com/cvelens/cvelens/internal/log"
)

var cveCmd = &cobra.Command{
	Use:   "cve",
	Short: "vulnerability lookups",
}

var cveAffectedCmd = &cobra.Command{
	Use:   "affected CVE-YYYY-NNNN",
	Short: "show the teams, projects, and trackers affected by a CVE",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCveAffectedCmd(cmd, args))
	},
}

func init() {
	cveCmd.AddCommand(cveAffectedCmd)
	rootCmd.AddCommand(cveCmd)
}

func runCveAffectedCmd(_ *cobra.Command, args []string) int {
	cveID := strings.ToUpper(args[0])

	s, err := openStore()
	if err != nil {
		log.Errorf("unable to open database: %+v", err)
		return 1
	}
	defer s.Close()

	cve, err := s.GetCVE(cveID)
	if err != nil {
		log.Errorf("unable to look up %s: %+v", cveID, err)
		return 1
	}
	if cve == nil {
		fmt.Printf("%s is not known to any synced tracker\n", cveID)
		return 1
	}

	effective, err := s.EffectiveSeverity(cveID)
	if err != nil {
		log.Errorf("unable to derive severity: %+v", err)
		return 1
	}

	teams, err := s.AffectedTeams(cveID)
	if err != nil {
		log.Errorf("unable to derive affected teams: %+v", err)
		return 1
	}

	projects, err := s.AffectedProjects(cveID)
	if err != nil {
		log.Errorf("unable to derive affected projects: %+v", err)
		return 1
	}

	trackers, err := s.TrackersForCVE(cveID)
	if err != nil {
		log.Errorf("unable to list trackers: %+v", err)
		return 1
	}

	fmt.Println("CVE:      ", cveID)
	if effective != severity.Unknown {
		fmt.Println("Severity: ", effective.String())
	}

	teamNames := make([]string, len(teams))
	for idx, team := range teams {
		teamNames[idx] = team.Name
	}
	fmt.Println("Teams:    ", strings.Join(teamNames, ", "))

	projectKeys := make([]string, len(projects))
	for idx, project := range projects {
		projectKeys[idx] = project.Key
	}
	fmt.Println("Projects: ", strings.Join(projectKeys, ", "))
	fmt.Println()

	now := time.Now().UTC()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tracker", "Status", "Severity", "Assignee", "Days Open"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, tracker := range trackers {
		daysOpen := ""
		if days, ok := tracker.DaysOpen(now); ok {
			daysOpen = fmt.Sprintf("%d", days)
		}
		table.Append([]string{
			tracker.ExternalKey,
			tracker.Status,
			tracker.Severity,
			tracker.Assignee,
			daysOpen,
		})
	}
	table.Render()

	return 0
}
