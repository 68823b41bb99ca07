package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/internal"
	"github.com/cvelens/cvelens/internal/format"
)

var rootCmd = &cobra.Command{
	Use:   internal.ApplicationName,
	Short: "Track CVE remediation work across teams and projects",
	Long: format.Tprintf(`Pulls CVE remediation trackers from external issue sources into a local
database and reports which teams and projects are affected.

    {{.appName}} sync -p ACME          incrementally sync trackers for one project
    {{.appName}} teams apply           reconcile team/project ownership from config
    {{.appName}} cve affected CVE-...  show the blast radius of a CVE
`, map[string]interface{}{
		"appName": internal.ApplicationName,
	}),
}
