package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tangle/internal/ensemble"
	"tangle/internal/logging"
	"tangle/internal/modality"
)

func newSubjectCommand(ctx *commandContext) *cobra.Command {
	var outputsDir string
	var threshold float64
	var locale string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "subject <id>",
		Short: "Build the ensemble verdict for one subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID := strings.TrimSpace(args[0])
			if subjectID == "" {
				return fmt.Errorf("subject id must not be blank")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Run.Threshold
			}
			if strings.TrimSpace(locale) == "" {
				locale = cfg.Run.Locale
			}

			st, err := ctx.openStore(outputsDir)
			if err != nil {
				return err
			}
			results, err := st.LoadResults()
			if err != nil {
				return fmt.Errorf("load pipeline results: %w", err)
			}

			agg := ensemble.NewAggregator(st, logging.NewNop(), locale)
			report, err := agg.Aggregate(subjectID, results, threshold)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Subject %s\n\n", report.SubjectID)
			fmt.Fprintln(out, renderSubjectTable(report))
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.FinalText)
			fmt.Fprintln(out, report.Disclaimer)
			fmt.Fprintf(out, "\nReport written to %s\n", st.SubjectReportPath(report.SubjectID))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputsDir, "outputs", "", "Read pipeline outputs from this directory instead of the configured store")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Probability at or above which the ensemble label is AD")
	cmd.Flags().StringVar(&locale, "locale", "", "Verdict language (en or fa)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the subject report as JSON")
	return cmd
}

func renderSubjectTable(report ensemble.Report) string {
	rows := make([][]string, 0, len(report.PerModule))
	for _, name := range modality.Order() {
		finding, ok := report.PerModule[name]
		if !ok {
			continue
		}
		probability := ""
		if finding.Probability != nil {
			probability = strconv.FormatFloat(*finding.Probability, 'f', 3, 64)
		}
		rows = append(rows, []string{
			name,
			finding.Status,
			probability,
			finding.Label,
		})
	}
	ensembleProbability := ""
	if report.Ensemble.Probability != nil {
		ensembleProbability = strconv.FormatFloat(*report.Ensemble.Probability, 'f', 3, 64)
	}
	rows = append(rows, []string{"ensemble", "", ensembleProbability, report.FinalLabel})
	return renderTable(
		[]string{"Module", "Status", "Probability", "Label"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}
