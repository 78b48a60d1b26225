package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/procsched"
	"github.com/viant/procsched/internal/ui"
	"github.com/viant/procsched/policy"
	"github.com/viant/procsched/progress"
	"github.com/viant/procsched/service/report"
)

var (
	flagBaseURL  string
	flagPolicy   string
	flagQuantum  int
	flagMaxSteps int
	flagReport   string
	flagTrace    string
	flagHistory  string
	flagJSON     bool
	flagQuiet    bool
	flagLive     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "procsched",
		Short: "Replay process scheduling scenarios step by step",
		Long: `procsched loads a YAML scenario (configuration, processes and scripted
operations), drives a single-CPU scheduling engine through it and prints
the resulting event log, listing and counters.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Base URL relative scenario locations resolve against")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Do not print the event log")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(policiesCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRuntime() *procsched.Runtime {
	return procsched.NewRuntime(procsched.WithMetaBaseURL(flagBaseURL))
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print its event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runtime := newRuntime()
			scenario, err := runtime.LoadScenario(ctx, args[0])
			if err != nil {
				return err
			}
			if flagPolicy != "" {
				scenario.Config.Scheduler.Name = flagPolicy
			}
			if cmd.Flags().Changed("quantum") {
				scenario.Config.Scheduler.Quantum = flagQuantum
			}
			if flagMaxSteps > 0 {
				scenario.MaxSteps = flagMaxSteps
			}
			if flagHistory != "" {
				scenario.Config.History.URL = flagHistory
			}

			var options []procsched.Option
			if flagTrace != "" {
				options = append(options, procsched.WithTracing("procsched", "dev", flagTrace))
			}
			if flagLive {
				options = append(options, procsched.WithProgressListener(liveProgress()))
			}
			srv, err := runtime.Run(ctx, scenario, options...)
			if err != nil {
				return err
			}
			defer srv.Close()
			r, err := srv.Report(ctx)
			if err != nil {
				return err
			}
			if flagReport != "" {
				if err = report.Upload(ctx, afs.New(), flagReport, r); err != nil {
					return err
				}
			}
			if flagJSON {
				return outputJSON(r)
			}
			if !flagQuiet {
				ui.PrintEvents(os.Stdout, r.Events)
			}
			ui.PrintReport(os.Stdout, r)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "Override the scenario policy (FCFS, SJF, Priority, RoundRobin)")
	cmd.Flags().IntVar(&flagQuantum, "quantum", policy.DefaultQuantum, "Override the RoundRobin quantum")
	cmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Override the scenario step limit")
	cmd.Flags().StringVar(&flagReport, "report", "", "Write the JSON report to this URL")
	cmd.Flags().StringVar(&flagTrace, "trace", "", "Write OpenTelemetry spans to this file")
	cmd.Flags().StringVar(&flagHistory, "history", "", "Store terminated process snapshots under this URL")
	cmd.Flags().BoolVar(&flagLive, "live", false, "Print counters to stderr after every step")
	return cmd
}

// liveProgress returns a progress handler printing one line per step
func liveProgress() func(progress.Progress) {
	lastStep := -1
	return func(p progress.Progress) {
		if p.Steps == lastStep {
			return
		}
		lastStep = p.Steps
		fmt.Fprintf(os.Stderr, "%s step %d | elapsed %d | live %d | completed %d | terminated %d\n",
			ui.Dim("progress"), p.Steps, p.Elapsed, p.Live(), p.Completed, p.Terminated)
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <report.json>",
		Short: "Print a report previously written by run --report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := report.Load(cmd.Context(), afs.New(), args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return outputJSON(r)
			}
			if !flagQuiet {
				ui.PrintEvents(os.Stdout, r.Events)
			}
			ui.PrintReport(os.Stdout, r)
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Load and validate a scenario without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := newRuntime().LoadScenario(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, ui.BoldRed("invalid: ")+err.Error())
				return err
			}
			fmt.Fprintf(os.Stdout, "%s %s: %d processes, %d actions, policy %s\n", ui.BoldGreen("valid"),
				scenario.Name, len(scenario.Processes), len(scenario.Actions), scenario.Config.Scheduler.Name)
			return nil
		},
	}
}

func policiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List supported scheduling policies",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range policy.Kinds() {
				fmt.Fprintln(os.Stdout, kind)
			}
		},
	}
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
