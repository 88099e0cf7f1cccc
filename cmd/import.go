package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import notes written by other mods",
	Long:  "Import notes written by other mods",
}

var importFISSCmd = &cobra.Command{
	Use:   "fiss",
	Short: "Import a FISS xml file as a new book",
	Long:  "Import a FISS xml file as a new book",
	RunE:  runImportFISS,
}

type importArgs struct {
	input  string
	output string
}

var iArgs importArgs

func init() {
	importFISSCmd.Flags().StringVarP(&iArgs.input, "input", "i", "", "FISS xml file")
	importFISSCmd.Flags().StringVarP(&iArgs.output, "output", "o", "book.json", "book file to write")

	importCmd.AddCommand(importFISSCmd)
	RootCmd.AddCommand(importCmd)
}

func runImportFISS(cmd *cobra.Command, args []string) error {
	if iArgs.input == "" {
		return fmt.Errorf("input is required")
	}
	if err := check(session.ImportLegacy(iArgs.input)); err != nil {
		return err
	}
	return check(session.SaveBook(iArgs.output))
}
