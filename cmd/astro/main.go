package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/logging"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/profiler"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()

	birth  models.ReportRequest
	asJSON bool
)

// cliSession is the only session a one-shot CLI run ever uses.
const cliSession = "cli"

var rootCmd = &cobra.Command{
	Use:   "astro",
	Short: "Sun-sign astrology reports from the command line",
	Long: `astro builds a deterministic sun-sign report from birth details and
answers questions about it with the same rules as the HTTP agent.

Example:
  astro report --name Asha --dob 1995-08-01 --tob 09:30 --place "Mumbai, India"
  astro ask --name Asha --dob 1995-08-01 "Will I get a promotion?"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the astrology report for the given birth details",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Build the report, then answer a question about it",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{reportCmd, askCmd} {
		cmd.Flags().StringVar(&birth.Name, "name", "", "Name for the report (required)")
		cmd.Flags().StringVar(&birth.DOB, "dob", "", "Date of birth, e.g. 1998-06-15 or \"15 Jun 1998\" (required)")
		cmd.Flags().StringVar(&birth.TOB, "tob", "", "Time of birth, e.g. 14:30")
		cmd.Flags().StringVar(&birth.Place, "place", "", "Place of birth")
		_ = cmd.MarkFlagRequired("name")
		_ = cmd.MarkFlagRequired("dob")
	}
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(reportCmd, askCmd)
}

func newService() *profiler.Service {
	return profiler.NewService(astro.NewBuilder(), session.NewMemoryStore(0), nil, logger)
}

func runReport(cmd *cobra.Command, args []string) error {
	profile, err := newService().GenerateReport(cmd.Context(), cliSession, birth)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}
	_, err = fmt.Fprint(out, profiler.FormatReport(profile))
	return err
}

func runAsk(cmd *cobra.Command, args []string) error {
	service := newService()
	if _, err := service.GenerateReport(cmd.Context(), cliSession, birth); err != nil {
		return err
	}

	answer, err := service.AnswerQuestion(cmd.Context(), cliSession, strings.Join(args, " "))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
