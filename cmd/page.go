package cmd

import (
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Edit the pages of a book",
	Long:  "Edit the pages of a book. Every edit loads the book, applies the change and saves it back",
}

var pageInsertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a blank page before the index",
	Long:  "Insert a blank page before the index",
	RunE:  editPage(func() bool { return session.InsertPage(pArgs.index) }),
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the page at the index",
	Long:  "Delete the page at the index",
	RunE:  editPage(func() bool { return session.DeletePage(pArgs.index) }),
}

var pageAppendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append the value of a variable to a page",
	Long:  "Append the value of a variable to a page",
	RunE:  editPage(func() bool { return session.AppendVariable(pArgs.index, pArgs.variable) }),
}

var pageImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Set or remove the image of a page",
	Long:  "Set the image of a page from a file or http(s) url; an empty --file removes it",
	RunE:  editPage(func() bool { return session.SetImage(pArgs.index, pArgs.file, pArgs.background) }),
}

var pageGotoCmd = &cobra.Command{
	Use:   "goto",
	Short: "Make the page at the index the current one",
	Long:  "Make the page at the index the current one",
	RunE:  editPage(func() bool { return session.SetPage(pArgs.index) }),
}

type pageArgs struct {
	book       string
	index      int
	variable   int
	file       string
	background bool
}

var pArgs pageArgs

func init() {
	pageCmd.PersistentFlags().StringVarP(&pArgs.book, "book", "b", "book.json", "book file")
	pageCmd.PersistentFlags().IntVarP(&pArgs.index, "index", "i", 0, "page index")
	pageAppendCmd.Flags().IntVarP(&pArgs.variable, "variable", "v", 1, "variable id")
	pageImageCmd.Flags().StringVarP(&pArgs.file, "file", "f", "", "image file or url")
	pageImageCmd.Flags().BoolVar(&pArgs.background, "background", false, "stretch the image behind the text")

	pageCmd.AddCommand(pageInsertCmd)
	pageCmd.AddCommand(pageDeleteCmd)
	pageCmd.AddCommand(pageAppendCmd)
	pageCmd.AddCommand(pageImageCmd)
	pageCmd.AddCommand(pageGotoCmd)
	RootCmd.AddCommand(pageCmd)
}

func editPage(edit func() bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(session.LoadBook(pArgs.book)); err != nil {
			return err
		}
		if err := check(edit()); err != nil {
			return err
		}
		return check(session.SaveBook(pArgs.book))
	}
}
