package capability

import (
	"context"
	"fmt"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/dataset"
)

// Analytics serves the three sales reports: product trends, regional
// performance, and derived insights.
type Analytics struct {
	data *dataset.Dataset
}

var _ Capability = (*Analytics)(nil)

func NewAnalytics(data *dataset.Dataset) *Analytics { return &Analytics{data: data} }

func (a *Analytics) Name() string { return "analytics.report" }

func (a *Analytics) Description() string {
	return "Produce a sales report: product trends, regional performance, or key insights."
}

func (a *Analytics) Params() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type":        "string",
				"enum":        []string{"trends", "regional", "insights"},
				"description": "Report type; defaults to trends",
			},
		},
	}
}

func (a *Analytics) Invoke(_ context.Context, args map[string]any) (domain.Payload, error) {
	mode := domain.AnalyticsMode(stringArg(args, "mode"))
	switch mode {
	case "", domain.AnalyticsTrends:
		return domain.AnalyticsReport{Mode: domain.AnalyticsTrends, Trends: a.data.Trends()}, nil
	case domain.AnalyticsRegional:
		return domain.AnalyticsReport{Mode: domain.AnalyticsRegional, Regions: a.data.Regions()}, nil
	case domain.AnalyticsInsights:
		return domain.AnalyticsReport{Mode: domain.AnalyticsInsights, Insights: a.insights()}, nil
	default:
		return nil, fmt.Errorf("%w: unknown analytics mode %q", domain.ErrValidation, mode)
	}
}

// insights reduces the trend and region rows to headline facts. Ties keep
// the earliest row, matching the stable order of the underlying data.
func (a *Analytics) insights() []string {
	trends := a.data.Trends()
	regions := a.data.Regions()
	if len(trends) == 0 || len(regions) == 0 {
		return []string{"Not enough data to derive insights"}
	}

	fastest := trends[0]
	mostOrdered := trends[0]
	for _, t := range trends[1:] {
		if t.GrowthPct > fastest.GrowthPct {
			fastest = t
		}
		if t.Orders > mostOrdered.Orders {
			mostOrdered = t
		}
	}

	topRegion := regions[0]
	for _, r := range regions[1:] {
		if r.Revenue > topRegion.Revenue {
			topRegion = r
		}
	}

	return []string{
		fmt.Sprintf("%s is the fastest growing product at %.1f%% month over month",
			fastest.Product, fastest.GrowthPct),
		fmt.Sprintf("%s leads order volume with %d orders this month",
			mostOrdered.Product, mostOrdered.Orders),
		fmt.Sprintf("%s is the top region with $%.0f in revenue (%.1f%% growth)",
			topRegion.Region, topRegion.Revenue, topRegion.GrowthPct),
	}
}
