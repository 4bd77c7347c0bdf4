package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	cfgpkg "github.com/KaramelBytes/tabdash/internal/config"
	"github.com/KaramelBytes/tabdash/internal/table"
	"github.com/KaramelBytes/tabdash/internal/utils"
)

var (
	anaOutputPath string
	anaDelimiter  string
	anaSheetName  string
	anaHead       int
	anaFormat     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Summarize a CSV/XLSX file in the terminal",
	Long: `Loads a CSV or XLSX file with the same rules as the dashboard and prints its
shape, column types, missing and unique counts, summary statistics, column
classes and the first rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := table.Options{Sheet: anaSheetName}
		delim := anaDelimiter
		if delim == "" && cfg != nil {
			delim = cfg.CSVDelimiter
		}
		d, err := cfgpkg.ParseDelimiter(delim)
		if err != nil {
			return fmt.Errorf("unsupported --delimiter: %w", err)
		}
		opt.Delimiter = d

		head := anaHead
		if !cmd.Flags().Changed("head") && cfg != nil && cfg.PreviewRows > 0 {
			head = cfg.PreviewRows
		}

		t, err := table.LoadFile(path, opt)
		if err != nil {
			return err
		}
		rep := analysis.NewReport(t, head)

		out, err := renderReport(rep, anaFormat)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			successf(cmd.OutOrStdout(), "Wrote analysis to %s", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the summary to a file instead of stdout")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',', ';', '|', tab (default from config)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet", "", "XLSX sheet name (default first sheet)")
	analyzeCmd.Flags().IntVar(&anaHead, "head", 5, "number of preview rows")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "table", "output format: table, markdown or json")
}
