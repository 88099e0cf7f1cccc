package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sse-journal/export"
	"sse-journal/utils"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a book as text, epub or pdf",
	Long:  "Export a book as text, epub or pdf",
}

var exportTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Export a book as plain text",
	Long:  "Export a book as plain text",
	RunE:  runExportText,
}

var exportEpubCmd = &cobra.Command{
	Use:   "epub",
	Short: "Export a book as an epub",
	Long:  "Export a book as an epub, one chapter per page",
	RunE:  runExportEpub,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export a book as a pdf using headless Chrome",
	Long:  "Export a book as a pdf using headless Chrome",
	RunE:  runExportPDF,
}

type exportArgs struct {
	book     string
	output   string
	title    string
	author   string
	language string
	chrome   string
	timeout  time.Duration
}

var eArgs exportArgs

func init() {
	exportCmd.PersistentFlags().StringVarP(&eArgs.book, "book", "b", "book.json", "book file")
	exportCmd.PersistentFlags().StringVarP(&eArgs.output, "output", "o", "", "output file (defaults to the title)")
	exportCmd.PersistentFlags().StringVarP(&eArgs.title, "title", "t", "Journal", "book title")
	exportEpubCmd.Flags().StringVar(&eArgs.author, "author", "", "book author")
	exportEpubCmd.Flags().StringVar(&eArgs.language, "language", "en", "book language")
	exportPDFCmd.Flags().StringVar(&eArgs.chrome, "chrome", "", "path to the Chrome binary")
	exportPDFCmd.Flags().DurationVar(&eArgs.timeout, "timeout", time.Minute, "printing timeout")

	exportCmd.AddCommand(exportTextCmd)
	exportCmd.AddCommand(exportEpubCmd)
	exportCmd.AddCommand(exportPDFCmd)
	RootCmd.AddCommand(exportCmd)
}

func outputPath(ext string) string {
	if eArgs.output != "" {
		return eArgs.output
	}
	name := utils.CleanFileName(eArgs.title)
	if !strings.HasSuffix(name, ext) {
		name += ext
	}
	return filepath.Join(".", name)
}

func runExportText(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadBook(eArgs.book)); err != nil {
		return err
	}
	return check(session.ExportText(outputPath(".txt")))
}

func runExportEpub(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadBook(eArgs.book)); err != nil {
		return err
	}
	err := export.EpubFile(outputPath(".epub"), session.Book, session.Images, export.EpubOptions{
		Title:    eArgs.title,
		Author:   eArgs.author,
		Language: eArgs.language,
	})
	if err != nil {
		return fmt.Errorf("failed to export epub: %w", err)
	}
	return nil
}

func runExportPDF(cmd *cobra.Command, args []string) error {
	if err := check(session.LoadBook(eArgs.book)); err != nil {
		return err
	}
	err := export.PDFFile(cmd.Context(), outputPath(".pdf"), session.Book, session.Images, export.PDFOptions{
		Title:    eArgs.title,
		ExecPath: eArgs.chrome,
		Timeout:  eArgs.timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to export pdf: %w", err)
	}
	return nil
}
