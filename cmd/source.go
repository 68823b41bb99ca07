package cmd

import (
	"github.com/spf13/cobra"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "external tracker source operations",
}

func init() {
	rootCmd.AddCommand(sourceCmd)
}
