package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	"github.com/opsaudit/eipaudit/internal/audit"
	"github.com/opsaudit/eipaudit/internal/exclusion"
	"github.com/opsaudit/eipaudit/internal/models"
	"github.com/opsaudit/eipaudit/internal/providers/aws/common"
	"github.com/opsaudit/eipaudit/internal/providers/aws/eip"
	"github.com/opsaudit/eipaudit/internal/version"
)

// defaultExclusionFile is the conventional location of the optional
// exclusion list, relative to the working directory of the pipeline step.
const defaultExclusionFile = "eipaudit-exclusions.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "eipaudit",
		Short: "Audit an AWS account for unassociated Elastic IPs",
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// checkOptions carries the resolved check command flags.
type checkOptions struct {
	profile       string
	regions       []string
	exclusionFile string
	unitCost      float64
	concurrency   int
	reportFmt     string
	output        string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:           "check",
		Short:         "Scan every region and fail when unassociated Elastic IPs are found",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log15.New("app", "eipaudit")
			provider := common.NewDefaultAWSClientProvider()
			collector := eip.NewDefaultCollector()
			return runCheck(cmd.Context(), opts, provider, collector, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.profile, "profile", "", "AWS profile name (default: uses environment / default profile)")
	cmd.Flags().StringSliceVar(&opts.regions, "regions", nil, "AWS region(s) to audit (default: all active regions)")
	cmd.Flags().StringVar(&opts.exclusionFile, "exclusion-file", defaultExclusionFile,
		"Optional YAML file with an excludeFromCheck list of EIPs to ignore")
	cmd.Flags().Float64Var(&opts.unitCost, "unit-cost", audit.DefaultDailyCostPerEIP,
		"Assumed cost in USD of one unassociated EIP per day")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", audit.DefaultConcurrency,
		"Maximum number of regions scanned in parallel")
	cmd.Flags().StringVar(&opts.reportFmt, "report", "table", "Output format: json or table")
	cmd.Flags().StringVar(&opts.output, "output", "", "Write the full JSON report to this file path (in addition to stdout output)")

	return cmd
}

// runCheck wires the audit together: exclusion list → profile → regions →
// scan → report → pass/fail. It returns a *audit.FindingsError when
// unassociated addresses exist, which main maps to its own exit code.
func runCheck(
	ctx context.Context,
	opts checkOptions,
	provider common.AWSClientProvider,
	collector eip.Collector,
	logger log15.Logger,
	w io.Writer,
) error {
	exclusions := exclusion.Load(opts.exclusionFile, logger)

	profile, err := provider.LoadProfile(ctx, opts.profile)
	if err != nil {
		return err
	}

	regions := opts.regions
	if len(regions) == 0 {
		regions, err = provider.GetActiveRegions(ctx, profile)
		if err != nil {
			return err
		}
	}

	logger.Info("running unassociated EIP check",
		"account", profile.AccountID, "profile", profile.ProfileName, "regions", len(regions))

	auditor := audit.New(provider, collector, exclusions, logger)
	outcome, err := auditor.Run(ctx, profile, regions, audit.Options{
		UnitDailyCostUSD: opts.unitCost,
		Concurrency:      opts.concurrency,
	})
	if err != nil {
		return err
	}

	report := audit.BuildReport(profile, regions, outcome, opts.unitCost)

	if opts.output != "" {
		if err := writeReportToFile(opts.output, report); err != nil {
			return err
		}
	}

	switch opts.reportFmt {
	case "json":
		if err := printJSON(w, report); err != nil {
			return err
		}
	default:
		printTable(w, report)
	}

	if outcome.TotalUnassociated > 0 {
		return &audit.FindingsError{
			Count:                 outcome.TotalUnassociated,
			EstimatedDailyCostUSD: outcome.EstimatedDailyCostUSD,
		}
	}
	return nil
}

// printJSON writes the report as indented JSON to w.
func printJSON(w io.Writer, report *models.AuditReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeReportToFile serialises report as indented JSON and writes it to path,
// creating or overwriting the file. It does not affect stdout output.
func writeReportToFile(path string, report *models.AuditReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

// printTable renders a human-readable summary followed by a findings table.
func printTable(w io.Writer, report *models.AuditReport) {
	s := report.Summary
	fmt.Fprintf(
		w,
		"Profile: %-20s  Account: %-14s  Regions: %d scanned / %d skipped  Unassociated EIPs: %d  Est. Daily Cost: $%s\n",
		report.Profile,
		report.AccountID,
		s.RegionsScanned,
		s.RegionsSkipped,
		s.TotalUnassociated,
		humanize.CommafWithDigits(s.EstimatedDailyCostUSD, 2),
	)

	if len(report.SkippedRegions) > 0 {
		fmt.Fprintf(w, "Skipped regions (query failed): %s\n", strings.Join(report.SkippedRegions, ", "))
	}

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "No unassociated Elastic IPs found.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-18s  %-28s  %-15s  %s\n", "PUBLIC IP", "ALLOCATION ID", "REGION", "COST/DAY")
	fmt.Fprintln(w, strings.Repeat("-", 76))
	for _, f := range report.Findings {
		allocation := f.AllocationID
		if allocation == "" {
			allocation = "(not present)"
		}
		fmt.Fprintf(w, "%-18s  %-28s  %-15s  $%s\n",
			f.PublicIP,
			allocation,
			f.Region,
			humanize.CommafWithDigits(f.EstimatedDailyCostUSD, 2),
		)
	}
}
