package capability

import (
	"context"
	"math"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/dataset"
)

// Compliance reports annual-limit utilization and a derived risk tier for
// a doctor.
type Compliance struct {
	data *dataset.Dataset
}

var _ Capability = (*Compliance)(nil)

func NewCompliance(data *dataset.Dataset) *Compliance { return &Compliance{data: data} }

func (c *Compliance) Name() string { return "compliance.check" }

func (c *Compliance) Description() string {
	return "Check a doctor's spend against the annual compliance limit and the resulting risk level."
}

func (c *Compliance) Params() map[string]any { return doctorParam() }

// TierFor maps limit utilization (percent) to a risk tier. The mapping is
// total over all float inputs, including negatives and values above 100.
func TierFor(pctUsed float64) domain.RiskTier {
	switch {
	case pctUsed >= 80:
		return domain.RiskHigh
	case pctUsed >= 65:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func recommendationsFor(tier domain.RiskTier) []string {
	switch tier {
	case domain.RiskHigh:
		return []string{
			"Exercise caution with additional spend this period",
			"Consult the compliance team before new engagements",
		}
	case domain.RiskMedium:
		return []string{
			"Monitor remaining budget before scheduling engagements",
		}
	default:
		return []string{
			"Spend is well within the annual limit",
		}
	}
}

func (c *Compliance) Invoke(_ context.Context, args map[string]any) (domain.Payload, error) {
	doctor := stringArg(args, "doctor_name")
	if doctor == "" {
		return nil, domain.ErrValidation
	}

	record, ok := c.data.ComplianceFor(doctor)
	if !ok {
		return domain.ComplianceStatus{Doctor: doctor, NoData: true}, nil
	}

	pct := 0.0
	if record.AnnualLimit > 0 {
		pct = math.Round(record.CurrentSpent/record.AnnualLimit*1000) / 10
	}
	tier := TierFor(pct)

	return domain.ComplianceStatus{
		Doctor:          record.Doctor,
		AnnualLimit:     record.AnnualLimit,
		CurrentSpent:    record.CurrentSpent,
		Remaining:       record.AnnualLimit - record.CurrentSpent,
		PercentageUsed:  pct,
		Risk:            tier,
		Recommendations: recommendationsFor(tier),
		LastUpdated:     record.LastUpdated,
	}, nil
}
