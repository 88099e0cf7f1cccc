package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sse-journal/model"
)

const (
	Version = "dev"
)

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("version: ", Version)
		fmt.Println("file format: ", model.Current)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
