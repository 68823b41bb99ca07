package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvelens/cvelens/internal/log"
)

var sourceCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "verify connectivity to all configured sources",
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runSourceCheckCmd(cmd, args))
	},
}

func init() {
	sourceCmd.AddCommand(sourceCheckCmd)
}

func runSourceCheckCmd(_ *cobra.Command, _ []string) int {
	registry, err := newSourceRegistry()
	if err != nil {
		log.Errorf("unable to build source registry: %+v", err)
		return 1
	}

	failed := false
	for _, sourceType := range registry.Types() {
		src, err := registry.Get(sourceType)
		if err != nil {
			fmt.Printf("%s: FAILED (%v)\n", sourceType, err)
			failed = true
			continue
		}

		ok, detail := src.Check()
		if !ok {
			fmt.Printf("%s: FAILED (%s)\n", src.DisplayName(), detail)
			failed = true
			continue
		}
		fmt.Printf("%s: OK (%s)\n", src.DisplayName(), detail)
	}

	if failed {
		return 1
	}
	return 0
}
