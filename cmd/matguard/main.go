package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matguard/adapters/excel"
	"matguard/app"
	"matguard/domain/fdr"
	"matguard/internal/config"
	"matguard/internal/report"
	"matguard/internal/rules"
	"matguard/internal/surgery"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matguard",
		Short: "Static validation, FDR correction, and cleanup for MATLAB analysis scripts",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newStripCmd(),
		newFDRCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "validate [script.m]",
		Short: "Run the static quality checks against a MATLAB script",
		Long: `Run the full static validation suite: delimiter balance, control-structure
census, helper and constant presence, error handling, documentation density,
statistical methodology, and data quality controls.

The script path falls back to MATGUARD_SCRIPT when omitted.

Example: matguard validate clinical_associations.m --export checks.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			scriptPath := cfg.ScriptPath
			if len(args) > 0 {
				scriptPath = args[0]
			}
			if scriptPath == "" {
				return fmt.Errorf("no script given (pass a path or set MATGUARD_SCRIPT)")
			}
			if exportPath == "" {
				exportPath = cfg.ExportPath
			}

			return runValidate(cmd.Context(), scriptPath, exportPath)
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "Write the check table to this .xlsx or .csv file")

	return cmd
}

func runValidate(ctx context.Context, scriptPath, exportPath string) error {
	svc := app.NewValidationService(rules.NewEngine(rules.DefaultConcurrency), rules.ClinicalRuleSet())

	res, err := svc.Run(ctx, scriptPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	svc.Report(os.Stdout, res)

	if exportPath != "" {
		if err := excel.NewWriter(exportPath).WriteChecks(res.Checks); err != nil {
			return err
		}
		fmt.Printf("\nCheck table written to %s\n", exportPath)
	}

	if !res.Clean() {
		return fmt.Errorf("%d of %d checks failed", res.Total-res.Passed, res.Total)
	}
	return nil
}

func newStripCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "strip [script.m]",
		Short: "Remove Transition-27 decision score references from a script",
		Long: `Apply the Transition-27 removal plan: merge sections, data assignments,
progress messages, variable initializations, and correlation blocks that
reference the superseded OOCV-27 model.

Dry-run by default; nothing touches the disk without --write.

Example: matguard strip clinical_associations.m --write`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			scriptPath := cfg.ScriptPath
			if len(args) > 0 {
				scriptPath = args[0]
			}
			if scriptPath == "" {
				return fmt.Errorf("no script given (pass a path or set MATGUARD_SCRIPT)")
			}

			return runStrip(cmd.Context(), scriptPath, write)
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the transformed script back in place")

	return cmd
}

func runStrip(ctx context.Context, scriptPath string, write bool) error {
	svc := app.NewSurgeryService(surgery.Transition27Plan())

	res, err := svc.Run(ctx, scriptPath, write)
	if err != nil {
		return fmt.Errorf("strip failed: %w", err)
	}
	svc.Report(os.Stdout, res)
	return nil
}

func newFDRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fdr",
		Short: "Benjamini-Hochberg false discovery rate correction",
	}
	cmd.AddCommand(newFDRRunCmd(), newFDRSelfcheckCmd())
	return cmd
}

func newFDRRunCmd() *cobra.Command {
	var q float64
	var exportPath string

	cmd := &cobra.Command{
		Use:   "run [p-values...]",
		Short: "Correct a list of p-values at level q",
		Long: `Apply the Benjamini-Hochberg procedure to the given p-values. Missing
entries are written as NaN and keep their positions in the output.

The level falls back to MATGUARD_FDR_LEVEL (default 0.05) when --q is not set.

Example: matguard fdr run 0.001 0.008 NaN 0.041 --q 0.05 --export fdr.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("q") {
				q = cfg.FDRLevel
			}
			if exportPath == "" {
				exportPath = cfg.ExportPath
			}

			pvals, err := parsePValues(args)
			if err != nil {
				return err
			}
			return runFDR(pvals, q, exportPath)
		},
	}

	cmd.Flags().Float64Var(&q, "q", 0.05, "FDR level")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the result table to this .xlsx or .csv file")

	return cmd
}

func runFDR(pvals []float64, q float64, exportPath string) error {
	res := fdr.Correct(pvals, q)
	report.RenderFDR(os.Stdout, report.FDRReport{
		Title:   "BENJAMINI-HOCHBERG FDR CORRECTION",
		PValues: pvals,
		Q:       q,
		Result:  res,
	})

	if exportPath != "" {
		if err := excel.NewWriter(exportPath).WriteFDR(pvals, res); err != nil {
			return err
		}
		fmt.Printf("\nResult table written to %s\n", exportPath)
	}
	return nil
}

func newFDRSelfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Replay the correction scenarios with known outcomes",
		Long: `Run the built-in correction scenarios (classic worked example, nothing
survives, everything survives, realistic symptom panel) and verify the
implementation reproduces each expected outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.NewFDRHarness().Run(os.Stdout) {
				return fmt.Errorf("correction self-check failed")
			}
			return nil
		},
	}
}

// parsePValues accepts decimal p-values plus the literal NaN (case
// insensitive) for missing entries
func parsePValues(args []string) ([]float64, error) {
	pvals := make([]float64, len(args))
	for i, raw := range args {
		if strings.EqualFold(raw, "nan") {
			pvals[i] = math.NaN()
			continue
		}
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid p-value %q", raw)
		}
		pvals[i] = p
	}
	return pvals, nil
}
