// Package audit orchestrates the account-wide unassociated Elastic IP check:
// it scans every region once, classifies each address, aggregates the totals,
// and decides pass/fail for the calling pipeline step.
package audit

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"

	"github.com/opsaudit/eipaudit/internal/classify"
	"github.com/opsaudit/eipaudit/internal/exclusion"
	"github.com/opsaudit/eipaudit/internal/models"
	"github.com/opsaudit/eipaudit/internal/providers/aws/common"
	"github.com/opsaudit/eipaudit/internal/providers/aws/eip"
)

const (
	// DefaultDailyCostPerEIP is the assumed cost in USD of holding one
	// unassociated Elastic IP for a day. AWS pricing varies by account tier
	// and changes over time; override it with Options.UnitDailyCostUSD (the
	// --unit-cost flag) to match your bill.
	DefaultDailyCostPerEIP = 0.12

	// DefaultConcurrency is the maximum number of regions scanned in parallel.
	DefaultConcurrency = 5
)

// Options carries per-run audit parameters.
type Options struct {
	// UnitDailyCostUSD is the cost of one unassociated address per day.
	// Defaults to DefaultDailyCostPerEIP when zero or negative.
	UnitDailyCostUSD float64

	// Concurrency bounds the number of in-flight region scans.
	// Defaults to DefaultConcurrency when zero or negative.
	Concurrency int
}

// FindingsError signals that the audit ran to completion and found
// unassociated addresses. It is the expected pipeline-failure condition,
// distinct from an execution error (audit could not run at all). Callers map
// it to its own exit code.
type FindingsError struct {
	Count                 int
	EstimatedDailyCostUSD float64
}

func (e *FindingsError) Error() string {
	return fmt.Sprintf("%d unassociated EIP(s) found across all regions (estimated USD$%.2f per day)",
		e.Count, e.EstimatedDailyCostUSD)
}

// Auditor runs the unassociated-EIP check. It owns no AWS clients itself;
// per-region configs come from the provider and address data from the
// collector, so every dependency can be mocked in tests.
type Auditor struct {
	provider   common.AWSClientProvider
	collector  eip.Collector
	exclusions exclusion.Set
	log        log15.Logger
}

// New constructs an Auditor wired to the supplied provider, collector,
// exclusion set, and logger.
func New(provider common.AWSClientProvider, collector eip.Collector, exclusions exclusion.Set, logger log15.Logger) *Auditor {
	return &Auditor{
		provider:   provider,
		collector:  collector,
		exclusions: exclusions,
		log:        logger,
	}
}

// regionOutcome is the explicit success/failure variant for one region scan.
// Exactly one field is set.
type regionOutcome struct {
	result *models.RegionResult
	err    *models.RegionScanError
}

// Run visits every region exactly once and returns the account-wide outcome.
//
// Regions are scanned in parallel up to opts.Concurrency. Each scan gets its
// own region-scoped aws.Config, a failed region is skipped (never retried,
// never aborts the run), and per-region results are reduced into the outcome
// only after all scans have joined, in the order the regions were given.
//
// The returned error covers execution failures only: it is non-nil when not
// a single region could be scanned, meaning the audit did not actually run.
// Findings never produce an error here; callers inspect
// AuditOutcome.TotalUnassociated.
func (a *Auditor) Run(ctx context.Context, profile *common.ProfileConfig, regions []string, opts Options) (*models.AuditOutcome, error) {
	unitCost := opts.UnitDailyCostUSD
	if unitCost <= 0 {
		unitCost = DefaultDailyCostPerEIP
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	outcomes := make([]regionOutcome, len(regions))
	sem := make(chan struct{}, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		i, region := i, region // per-iteration copies for the closure (pre-Go 1.22 loop semantics)
		sem <- struct{}{}      // acquire slot; blocks when at capacity

		cfg := a.provider.ConfigForRegion(profile, region)

		g.Go(func() error {
			defer func() { <-sem }()
			outcomes[i] = a.scanRegion(gctx, cfg, region, unitCost)
			return nil // scan failures are outcomes, not group errors
		})
	}
	// Goroutines never return errors; Wait is just the join point.
	_ = g.Wait()

	// Post-join reduce over the explicit per-region outcomes, in input order.
	outcome := &models.AuditOutcome{}
	for _, oc := range outcomes {
		if oc.err != nil {
			outcome.SkippedRegions = append(outcome.SkippedRegions, oc.err.Region)
			continue
		}
		outcome.Regions = append(outcome.Regions, *oc.result)
		outcome.TotalUnassociated += oc.result.Count()
		outcome.EstimatedDailyCostUSD += oc.result.EstimatedDailyCostUSD
	}

	if len(regions) > 0 && len(outcome.SkippedRegions) == len(regions) {
		return nil, fmt.Errorf("audit could not run: all %d region queries failed", len(regions))
	}

	if outcome.TotalUnassociated > 0 {
		a.log.Warn("unassociated EIPs found across all regions",
			"account", profile.AccountID,
			"total", outcome.TotalUnassociated,
			"estimated_daily_cost_usd", fmt.Sprintf("%.2f", outcome.EstimatedDailyCostUSD))
	}
	return outcome, nil
}

// scanRegion fetches and classifies every address in one region, emitting the
// per-address and per-region warnings that make up the audit report.
func (a *Auditor) scanRegion(ctx context.Context, cfg aws.Config, region string, unitCost float64) regionOutcome {
	a.log.Info("checking for unassociated EIPs", "region", region)

	addrs, err := a.collector.CollectRegion(ctx, cfg, region)
	if err != nil {
		a.log.Warn("region query failed, skipping region; verify ec2:DescribeAddresses permission and region opt-in",
			"region", region, "error", err)
		return regionOutcome{err: &models.RegionScanError{Region: region, Err: err}}
	}

	if len(addrs) == 0 {
		a.log.Info("no EIPs in this region", "region", region)
	}

	var unassociated []models.ElasticIP
	for _, addr := range addrs {
		if !classify.IsUnassociated(addr, a.exclusions) {
			continue
		}
		unassociated = append(unassociated, addr)
		a.log.Warn("unassociated EIP found",
			"region", region,
			"public_ip", addr.PublicIP,
			"allocation_id", allocationDisplay(addr.AllocationID))
	}

	result := &models.RegionResult{
		Region:                region,
		Unassociated:          unassociated,
		EstimatedDailyCostUSD: float64(len(unassociated)) * unitCost,
	}

	if result.Count() > 0 {
		a.log.Warn("releasing the unassociated EIPs in this region would cut daily spend",
			"region", region,
			"count", result.Count(),
			"estimated_daily_cost_usd", fmt.Sprintf("%.2f", result.EstimatedDailyCostUSD))
	}
	return regionOutcome{result: result}
}

// allocationDisplay renders the allocation ID for log output. Legacy
// addresses carry no allocation ID, which the report must state explicitly.
func allocationDisplay(allocationID string) string {
	if allocationID == "" {
		return "not present (legacy address)"
	}
	return allocationID
}
