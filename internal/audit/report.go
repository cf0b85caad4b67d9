package audit

import (
	"fmt"
	"time"

	"github.com/opsaudit/eipaudit/internal/models"
	"github.com/opsaudit/eipaudit/internal/providers/aws/common"
)

// BuildReport assembles the serialisable AuditReport from one run's outcome.
// Findings keep region order, which follows the input region list.
func BuildReport(profile *common.ProfileConfig, regions []string, outcome *models.AuditOutcome, unitCost float64) *models.AuditReport {
	if unitCost <= 0 {
		unitCost = DefaultDailyCostPerEIP
	}

	var findings []models.EIPFinding
	for _, rr := range outcome.Regions {
		for _, addr := range rr.Unassociated {
			findings = append(findings, models.EIPFinding{
				PublicIP:              addr.PublicIP,
				AllocationID:          addr.AllocationID,
				Region:                rr.Region,
				EstimatedDailyCostUSD: unitCost,
			})
		}
	}

	return &models.AuditReport{
		ReportID:         fmt.Sprintf("eipaudit-%d", time.Now().UnixNano()),
		GeneratedAt:      time.Now().UTC(),
		Profile:          profile.ProfileName,
		AccountID:        profile.AccountID,
		Regions:          regions,
		SkippedRegions:   outcome.SkippedRegions,
		UnitDailyCostUSD: unitCost,
		Summary: models.AuditSummary{
			TotalUnassociated:     outcome.TotalUnassociated,
			EstimatedDailyCostUSD: outcome.EstimatedDailyCostUSD,
			RegionsScanned:        len(outcome.Regions),
			RegionsSkipped:        len(outcome.SkippedRegions),
		},
		Findings: findings,
	}
}
