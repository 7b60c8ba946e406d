package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxflow CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxflow version %s\n", version)
		fmt.Println("FX cashflow projection and forward points P&L")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
