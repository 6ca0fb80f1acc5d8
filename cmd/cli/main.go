package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"camcheck/adapters/excel"
	"camcheck/internal/engine"
	"camcheck/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "camcheck",
		Short: "Workbook validation from the command line",
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newRulesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var validatorType string
	var csvPath string
	var annotatedPath string

	cmd := &cobra.Command{
		Use:   "validate [workbook.xlsx]",
		Short: "Validate a workbook against a rule catalog",
		Long: `Validate a workbook against a rule catalog and print the results.

Example: camcheck validate quotes.xlsx --type QUOTE_WIN --csv report.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], validatorType, csvPath, annotatedPath)
		},
	}

	cmd.Flags().StringVar(&validatorType, "type", "BOM", "Validator type (QUOTE_WIN or BOM)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write a CSV report to this path")
	cmd.Flags().StringVar(&annotatedPath, "output", "", "Write an annotated copy of the workbook to this path")

	return cmd
}

func runValidate(path, validatorType, csvPath, annotatedPath string) error {
	vt := engine.ValidatorType(strings.ToUpper(validatorType))

	loader := excel.NewLoader()
	wb, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	results, err := engine.Validate(wb, vt)
	if err != nil {
		return err
	}

	printResults(results)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, results); err != nil {
			return err
		}
		fmt.Printf("\nCSV report written to %s\n", csvPath)
	}

	if annotatedPath != "" {
		plan := engine.PlanAnnotations(results)
		annotator := excel.NewAnnotator()
		if err := annotator.Annotate(path, annotatedPath, plan); err != nil {
			return err
		}
		fmt.Printf("Annotated workbook written to %s\n", annotatedPath)
	}

	summary := engine.Summarize(results)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d checks failed", summary.Failed, summary.Total)
	}
	return nil
}

func printResults(results []engine.Result) {
	for _, r := range results {
		marker := "PASS"
		if !r.Passed() {
			marker = "FAIL"
		}
		fmt.Printf("[%s] %s (%s)\n", marker, r.RuleName, r.SheetName)
		if !r.Passed() {
			fmt.Printf("       expected: %s\n", r.Expected)
			fmt.Printf("       actual:   %s\n", r.Actual)
			if r.Location != "" {
				fmt.Printf("       location: %s\n", r.Location)
			}
		}
	}

	summary := engine.Summarize(results)
	fmt.Printf("\n%d checks: %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [validator-type]",
		Short: "List the rules in a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vt := engine.ValidatorType(strings.ToUpper(args[0]))
			infos, err := engine.ListRules(vt)
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Printf("%s: %s\n    %s\n", info.RuleNum, info.Title, info.Description)
			}
			return nil
		},
	}
}
