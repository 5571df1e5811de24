package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tangle/internal/config"
	"tangle/internal/ensemble"
	"tangle/internal/logging"
	"tangle/internal/modality"
	"tangle/internal/orchestrator"
	"tangle/internal/runlog"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dataRoot string
	var simulate bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute all modality pipelines and write the aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("simulate") {
				cfg.Run.SimulateIfMissing = simulate
			}
			root := strings.TrimSpace(dataRoot)
			if root == "" {
				root = cfg.Paths.DataRoot
			} else if root, err = config.ExpandPath(root); err != nil {
				return fmt.Errorf("resolve data root: %w", err)
			}

			logger, closer, err := logging.NewFileLogger(cfg.Paths.LogDir, "tangle.log", cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer closer.Close()

			st, err := ctx.openStore("")
			if err != nil {
				return err
			}
			ledger, err := runlog.Open(cfg.Paths.LogDir)
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer ledger.Close()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			progress := func(module, phase string, _ float64, message string) {
				if jsonOutput {
					return
				}
				kind := statusInfo
				switch phase {
				case string(modality.StatusSuccess):
					kind = statusOK
				case string(modality.StatusError):
					kind = statusError
				default:
					return
				}
				fmt.Fprintln(out, renderStatusLine(module, kind, message, colorize))
			}

			o := orchestrator.New(cfg, st, ledger, logger)
			results, err := o.RunAll(cmd.Context(), root, progress)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderRunTable(results))
			fmt.Fprintln(out)
			fmt.Fprintln(out, ensemble.BuildRunSummary(results))
			fmt.Fprintf(out, "\nOutputs written to %s\n", st.Dir())
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "Directory containing the modality input folders")
	cmd.Flags().BoolVar(&simulate, "simulate", false, "Synthesize results instead of invoking external tools")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result mapping as JSON")
	return cmd
}

func renderRunTable(results map[string]modality.Result) string {
	rows := make([][]string, 0, len(results))
	for _, name := range modality.Order() {
		result, ok := results[name]
		if !ok {
			continue
		}
		auc := ""
		if result.AUC > 0 {
			auc = strconv.FormatFloat(result.AUC, 'f', 3, 64)
		}
		rows = append(rows, []string{
			name,
			string(result.Status),
			auc,
			result.Interpretation,
		})
	}
	return renderTable(
		[]string{"Module", "Status", "AUC", "Interpretation"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}
