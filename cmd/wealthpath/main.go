package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/finsim/wealthpath/internal/calculation"
	"github.com/finsim/wealthpath/internal/config"
	"github.com/finsim/wealthpath/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "wealthpath %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "wealthpath",
	Short: "Household net worth simulator",
	Long:  "Monte Carlo net worth simulation and deterministic cash flow projection for household finances",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run the Monte Carlo net worth simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		if paths, _ := cmd.Flags().GetInt("paths"); paths > 0 {
			cfg.Paths = paths
		}
		if years, _ := cmd.Flags().GetInt("years"); years > 0 {
			cfg.Years = years
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		}

		engine := calculation.NewMonteCarloEngine()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			engine.SetLogger(simpleCLILogger{})
		}

		res, err := engine.Run(context.Background(), cfg)
		if err != nil {
			return err
		}
		summary := calculation.Summarize(res, cfg)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "console":
			fmt.Fprintln(os.Stdout, output.RenderSummary(summary, res, output.FormatCurrency))
		case "json":
			return output.WriteJSONReport(os.Stdout, summary, res)
		case "csv":
			bands := output.PercentileBandsCSV{
				Percentiles: []int{10, 25, 50, 75, 90},
				Percentile:  calculation.Percentile,
			}
			data, err := bands.Format(res)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		return nil
	},
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow [input-file]",
	Short: "Project the deterministic yearly cash flow table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		maxYears, _ := cmd.Flags().GetInt("max-years")
		table, err := calculation.BuildCashflowTable(cfg, maxYears)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "console":
			fmt.Fprintln(os.Stdout, output.RenderCashflowTable(table, output.FormatCurrency))
		case "json":
			return output.WriteCashflowJSON(os.Stdout, table)
		case "csv":
			data, err := output.CashflowCSV{}.Format(table)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("paths", 0, "Override the number of simulation paths")
	simulateCmd.Flags().Int("years", 0, "Override the projection horizon in years")
	simulateCmd.Flags().Int64("seed", 0, "Override the random seed")
	simulateCmd.Flags().String("format", "console", "Output format (console, json, csv)")
	simulateCmd.Flags().Bool("verbose", false, "Log engine progress to stderr")

	cashflowCmd.Flags().Int("max-years", calculation.DefaultCashflowYears, "Number of years to project")
	cashflowCmd.Flags().String("format", "console", "Output format (console, json, csv)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(cashflowCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
