package models

import "time"

// ---------------------------------------------------------------------------
// AWS raw resource models (collected by provider, consumed by the auditor)
// ---------------------------------------------------------------------------

// ElasticIP is an immutable snapshot of one allocated Elastic IP address in a
// specific region, as returned by EC2 DescribeAddresses. The auditor never
// mutates or releases addresses; it only classifies them.
type ElasticIP struct {
	PublicIP string `json:"public_ip"`

	// AllocationID is empty for legacy (EC2-Classic scope) addresses, which
	// have no allocation identifier.
	AllocationID string `json:"allocation_id,omitempty"`

	// AssociationID is set when the address is bound to any resource.
	AssociationID string `json:"association_id,omitempty"`

	// InstanceID is set when the address is bound to an EC2 instance.
	InstanceID string `json:"instance_id,omitempty"`

	// NetworkInterfaceID is set when the address is bound to an ENI,
	// including ENIs detached from any instance.
	NetworkInterfaceID string `json:"network_interface_id,omitempty"`

	Region string `json:"region"`
}

// ---------------------------------------------------------------------------
// Audit result models
// ---------------------------------------------------------------------------

// RegionResult is the tally for one successfully scanned region.
type RegionResult struct {
	Region string `json:"region"`

	// Unassociated lists every address in this region classified as
	// unassociated, in the order DescribeAddresses returned them.
	Unassociated []ElasticIP `json:"unassociated,omitempty"`

	// EstimatedDailyCostUSD is len(Unassociated) × the configured unit cost.
	EstimatedDailyCostUSD float64 `json:"estimated_daily_cost_usd"`
}

// Count returns the number of unassociated addresses found in the region.
func (r RegionResult) Count() int { return len(r.Unassociated) }

// RegionScanError marks a region whose address query failed. The auditor
// skips such regions: they contribute nothing to the account total and are
// reported as skipped rather than silently counted as clean.
type RegionScanError struct {
	Region string
	Err    error
}

func (e *RegionScanError) Error() string {
	return "scan region " + e.Region + ": " + e.Err.Error()
}

func (e *RegionScanError) Unwrap() error { return e.Err }

// AuditOutcome is the account-wide aggregate of one audit run.
//
// TotalUnassociated always equals the sum of the per-region counts in
// Regions; skipped regions are excluded from the total.
type AuditOutcome struct {
	// Regions holds one entry per successfully scanned region, in the order
	// the regions were given to the auditor.
	Regions []RegionResult `json:"regions"`

	// SkippedRegions names the regions whose query failed and were excluded
	// from the total.
	SkippedRegions []string `json:"skipped_regions,omitempty"`

	TotalUnassociated     int     `json:"total_unassociated"`
	EstimatedDailyCostUSD float64 `json:"estimated_daily_cost_usd"`
}

// ---------------------------------------------------------------------------
// Report models (CLI output)
// ---------------------------------------------------------------------------

// EIPFinding is one reportable unassociated address.
type EIPFinding struct {
	PublicIP              string  `json:"public_ip"`
	AllocationID          string  `json:"allocation_id,omitempty"`
	Region                string  `json:"region"`
	EstimatedDailyCostUSD float64 `json:"estimated_daily_cost_usd"`
}

// AuditSummary aggregates counts and totals across all scanned regions.
type AuditSummary struct {
	TotalUnassociated     int     `json:"total_unassociated"`
	EstimatedDailyCostUSD float64 `json:"estimated_daily_cost_usd"`
	RegionsScanned        int     `json:"regions_scanned"`
	RegionsSkipped        int     `json:"regions_skipped"`
}

// AuditReport is the top-level, serialisable output of one audit run.
type AuditReport struct {
	ReportID         string       `json:"report_id"`
	GeneratedAt      time.Time    `json:"generated_at"`
	Profile          string       `json:"profile"`
	AccountID        string       `json:"account_id"`
	Regions          []string     `json:"regions"`
	SkippedRegions   []string     `json:"skipped_regions,omitempty"`
	UnitDailyCostUSD float64      `json:"unit_daily_cost_usd"`
	Summary          AuditSummary `json:"summary"`
	Findings         []EIPFinding `json:"findings"`
}
