package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Create, inspect and repair book files",
	Long:  "Create, inspect and repair book files",
}

var bookNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Write an empty book",
	Long:  "Write an empty book",
	RunE:  runBookNew,
}

var bookShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the pages of a book",
	Long:  "Print the pages of a book",
	RunE:  runBookShow,
}

var bookRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Load a book and write it back in canonical form",
	Long:  "Load a book, pad it to the page floor, fix the current page and write it back",
	RunE:  runBookRepair,
}

type bookArgs struct {
	path string
}

var bArgs bookArgs

func init() {
	bookCmd.PersistentFlags().StringVarP(&bArgs.path, "book", "b", "book.json", "book file")

	bookCmd.AddCommand(bookNewCmd)
	bookCmd.AddCommand(bookShowCmd)
	bookCmd.AddCommand(bookRepairCmd)
	RootCmd.AddCommand(bookCmd)
}

func runBookNew(cmd *cobra.Command, args []string) error {
	session.NewBook()
	return check(session.SaveBook(bArgs.path))
}

func runBookShow(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadBook(bArgs.path)); err != nil {
		return err
	}
	b := session.Book
	fmt.Printf("%d pages, current %d, version %s\n", len(b.Pages), b.Current, b.Version)
	for i, p := range b.Pages {
		first, _, _ := strings.Cut(p.Content, "\n")
		image := ""
		if p.Image != nil {
			if path, ok := session.Images.Path(p.Image.Handle); ok {
				image = " [" + path + "]"
			}
		}
		fmt.Printf("%3d  %-24s %s%s\n", i, p.Title, first, image)
	}
	return nil
}

func runBookRepair(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadBook(bArgs.path)); err != nil {
		return err
	}
	return check(session.SaveBook(bArgs.path))
}
