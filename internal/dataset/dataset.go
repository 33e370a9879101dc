// Package dataset exposes the static in-memory business dataset.
//
// The data is loaded once at startup and never mutated afterwards, so
// lookups are safe for concurrent use without locking.
package dataset

import (
	"sort"
	"strings"

	"github.com/fieldlens/concierge/domain"
)

// ComplianceRecord is the raw spend record backing the compliance capability.
type ComplianceRecord struct {
	Doctor       string
	AnnualLimit  float64
	CurrentSpent float64
	LastUpdated  string
}

// Engagement is one recorded interaction with a doctor.
type Engagement struct {
	Doctor        string
	EngagementID  string
	Type          string
	Date          string
	Rep           string
	Outcome       string
	TalkingPoints []string
	NextSteps     string
	ContactsMade  []domain.ContactMade
}

// Dataset is the immutable fixture store queried by the capabilities.
type Dataset struct {
	orders      []domain.Order
	compliance  []ComplianceRecord
	engagements []Engagement
	trends      []domain.ProductTrend
	regions     []domain.RegionPerformance
}

// Load builds the fixture dataset.
func Load() *Dataset {
	return &Dataset{
		orders:      fixtureOrders(),
		compliance:  fixtureCompliance(),
		engagements: fixtureEngagements(),
		trends:      fixtureTrends(),
		regions:     fixtureRegions(),
	}
}

func nameMatches(record, query string) bool {
	return strings.Contains(strings.ToLower(record), strings.ToLower(query))
}

// OrdersFor returns orders for a doctor by case-insensitive substring
// match, or all orders when doctor is empty.
func (d *Dataset) OrdersFor(doctor string) []domain.Order {
	if doctor == "" {
		out := make([]domain.Order, len(d.orders))
		copy(out, d.orders)
		return out
	}
	var out []domain.Order
	for _, o := range d.orders {
		if nameMatches(o.Doctor, doctor) {
			out = append(out, o)
		}
	}
	return out
}

// ComplianceFor returns the spend record for a doctor, if any.
func (d *Dataset) ComplianceFor(doctor string) (ComplianceRecord, bool) {
	for _, c := range d.compliance {
		if nameMatches(c.Doctor, doctor) {
			return c, true
		}
	}
	return ComplianceRecord{}, false
}

// EngagementsFor returns all engagements for a doctor.
func (d *Dataset) EngagementsFor(doctor string) []Engagement {
	var out []Engagement
	for _, e := range d.engagements {
		if nameMatches(e.Doctor, doctor) {
			out = append(out, e)
		}
	}
	return out
}

// LatestEngagementFor returns the most recent engagement for a doctor.
// The second return is false when no engagement exists for the entity.
func (d *Dataset) LatestEngagementFor(doctor string) (Engagement, bool) {
	engs := d.EngagementsFor(doctor)
	if len(engs) == 0 {
		return Engagement{}, false
	}
	sort.SliceStable(engs, func(i, j int) bool { return engs[i].Date < engs[j].Date })
	return engs[len(engs)-1], true
}

// Trends returns the product trend rows.
func (d *Dataset) Trends() []domain.ProductTrend {
	out := make([]domain.ProductTrend, len(d.trends))
	copy(out, d.trends)
	return out
}

// Regions returns the regional performance rows.
func (d *Dataset) Regions() []domain.RegionPerformance {
	out := make([]domain.RegionPerformance, len(d.regions))
	copy(out, d.regions)
	return out
}
