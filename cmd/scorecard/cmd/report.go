package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/avenirlabs/scorecard-ai/internal/clip"
	"github.com/avenirlabs/scorecard-ai/internal/fsutil"
	"github.com/avenirlabs/scorecard-ai/internal/report"
)

var (
	reportCopy   bool
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with stored assessment reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	RunE:  runReportList,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Render a report in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportExportCmd = &cobra.Command{
	Use:   "export <report-id>",
	Short: "Export a report to markdown or HTML",
	Long: `Export a report document. The output format follows the file
extension: .html produces the printable page, anything else raw markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportExport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportExportCmd)

	reportShowCmd.Flags().BoolVar(&reportCopy, "copy", false,
		"copy the report markdown to the clipboard")
	reportExportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"output file (required; .md or .html)")
	_ = reportExportCmd.MarkFlagRequired("output")
}

func runReportList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	reports, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("No reports stored yet. Run 'scorecard assess' first.")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-20s  %s\n", "ID", "TIER", "COMPANY", "CREATED")
	for _, rep := range reports {
		company := rep.Lead.Company
		if company == "" {
			company = "-"
		}
		fmt.Printf("%-36s  %-8s  %-20s  %s\n",
			rep.ID, rep.Tier, company, rep.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReportShow(_ *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(rep.Markdown)
	if err != nil {
		return err
	}
	fmt.Print(out)

	if reportCopy {
		// Clipboard failure is never fatal; worst case the text landed in a
		// temp file.
		res, err := clip.WriteAll(rep.Markdown)
		switch {
		case err != nil:
			logger.Warn("could not copy report", "error", err)
		case res.Method == clip.MethodFile:
			fmt.Printf("\nClipboard unavailable; report written to %s\n", res.FilePath)
		default:
			fmt.Printf("\nReport copied to clipboard (%s).\n", res.Method)
		}
	}
	return nil
}

func runReportExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rep, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	var data []byte
	if strings.HasSuffix(strings.ToLower(reportOutput), ".html") {
		data, err = report.RenderHTML(rep)
		if err != nil {
			return err
		}
	} else {
		data = []byte(rep.Markdown)
	}

	if err := fsutil.WriteFileAtomic(reportOutput, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", rep.ID, reportOutput)
	return nil
}
