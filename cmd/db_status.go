package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/internal/log"
)

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "display database status",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runDbStatusCmd(cmd, args))
	},
}

func init() {
	dbCmd.AddCommand(dbStatusCmd)
}

func runDbStatusCmd(_ *cobra.Command, _ []string) int {
	dbPath := appConfig.DB.Path()
	fs := afero.NewOsFs()

	exists, err := afero.Exists(fs, dbPath)
	if err != nil {
		log.Errorf("unable to check database: %+v", err)
		return 1
	}

	fmt.Println("Location: ", dbPath)
	if !exists {
		fmt.Println("Status:    no database (run 'cvelens sync' to create one)")
		return 0
	}

	info, err := fs.Stat(dbPath)
	if err != nil {
		log.Errorf("unable to stat database: %+v", err)
		return 1
	}
	fmt.Println("Size:     ", humanize.Bytes(uint64(info.Size())))

	s, err := openStore()
	if err != nil {
		log.Errorf("unable to open database: %+v", err)
		return 1
	}
	defer s.Close()

	counts, err := s.Counts()
	if err != nil {
		log.Errorf("unable to read database: %+v", err)
		return 1
	}
	fmt.Println("Teams:    ", counts.Teams)
	fmt.Println("Projects: ", counts.Projects)
	fmt.Println("CVEs:     ", counts.CVEs)
	fmt.Println("Trackers: ", counts.Trackers)

	lastSync, err := s.GetLastSync()
	if err != nil {
		log.Errorf("unable to read last sync time: %+v", err)
		return 1
	}
	if lastSync == nil {
		fmt.Println("Last sync: never")
	} else {
		fmt.Printf("Last sync: %s (%s)\n", lastSync.Format(time.RFC3339), humanize.Time(*lastSync))
	}

	return 0
}
