package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/texsnip/texsnip/internal/config"
	"github.com/texsnip/texsnip/internal/logging"
)

var (
	logsLevel     string
	logsComponent string
	logsContains  string
	logsSince     string
	logsTail      int

	logsExportFormat string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect texsnip debug logs",
	Long: `Inspect texsnip debug logs.

Reads the log file from the configured log directory and displays or
exports its entries. Filters combine with AND logic.`,
}

var logsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show log entries",
	Long: `Show log entries, newest last.

Examples:
  texsnip logs show
  texsnip logs show --level error
  texsnip logs show --contains pdflatex --since 1h
  texsnip logs show --tail 50`,
	RunE: runLogsShow,
}

var logsExportCmd = &cobra.Command{
	Use:   "export <output-file>",
	Short: "Export log entries to a file",
	Long: `Export log entries to a file in json, text, or csv format.

The format is chosen with --format; filters apply before export.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogsExport,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsShowCmd)
	logsCmd.AddCommand(logsExportCmd)

	for _, c := range []*cobra.Command{logsShowCmd, logsExportCmd} {
		c.Flags().StringVar(&logsLevel, "level", "", "minimum level (debug/info/warn/error)")
		c.Flags().StringVar(&logsComponent, "component", "", "only entries from this component")
		c.Flags().StringVar(&logsContains, "contains", "", "only entries whose message contains this substring")
		c.Flags().StringVar(&logsSince, "since", "", "only entries newer than this duration (e.g. 30m, 2h)")
	}
	logsShowCmd.Flags().IntVar(&logsTail, "tail", 0, "show only the last N entries")
	logsExportCmd.Flags().StringVar(&logsExportFormat, "format", "json", "export format (json/text/csv)")
}

func runLogsShow(cmd *cobra.Command, args []string) error {
	entries, err := loadFilteredEntries()
	if err != nil {
		return err
	}

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if len(entries) == 0 {
		fmt.Println("No log entries found.")
		return nil
	}

	for _, entry := range entries {
		ts := entry.Timestamp.Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("%s %-5s %s", ts, entry.Level, entry.Message)
		if entry.Component != "" {
			line += fmt.Sprintf(" [%s]", entry.Component)
		}
		fmt.Println(line)
	}

	return nil
}

func runLogsExport(cmd *cobra.Command, args []string) error {
	entries, err := loadFilteredEntries()
	if err != nil {
		return err
	}

	outputPath := args[0]
	if err := logging.ExportLogEntries(entries, outputPath, logsExportFormat); err != nil {
		return err
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), outputPath)
	return nil
}

func loadFilteredEntries() ([]logging.LogEntry, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	entries, err := logging.AggregateLogs(cfg.Paths.ResolveLogDir())
	if err != nil {
		return nil, err
	}

	filter := logging.LogFilter{
		Level:           logsLevel,
		Component:       logsComponent,
		MessageContains: logsContains,
	}

	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return nil, fmt.Errorf("invalid --since duration: %w", err)
		}
		filter.StartTime = time.Now().Add(-d)
	}

	return logging.FilterLogs(entries, filter), nil
}
