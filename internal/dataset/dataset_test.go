package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdersForMatchesSubstring(t *testing.T) {
	data := Load()

	orders := data.OrdersFor("shafique")
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "Dr. Ahmed Shafique", o.Doctor)
	}
}

func TestOrdersForEmptyReturnsAll(t *testing.T) {
	data := Load()
	assert.Len(t, data.OrdersFor(""), 5)
}

func TestOrdersForUnknownDoctor(t *testing.T) {
	data := Load()
	assert.Empty(t, data.OrdersFor("nobody"))
}

func TestComplianceFor(t *testing.T) {
	data := Load()

	rec, ok := data.ComplianceFor("Julie")
	assert.True(t, ok)
	assert.Equal(t, "Dr. Julie Martinez", rec.Doctor)
	assert.Equal(t, 3500.0, rec.AnnualLimit)

	_, ok = data.ComplianceFor("Unknown")
	assert.False(t, ok)
}

func TestLatestEngagementForPicksMostRecent(t *testing.T) {
	data := Load()

	eng, ok := data.LatestEngagementFor("Martinez")
	assert.True(t, ok)
	assert.Equal(t, "ENG-012", eng.EngagementID)
	assert.Len(t, eng.ContactsMade, 3)

	_, ok = data.LatestEngagementFor("Unknown")
	assert.False(t, ok)
}

func TestTrendsAndRegionsAreCopies(t *testing.T) {
	data := Load()

	trends := data.Trends()
	assert.NotEmpty(t, trends)
	trends[0].Product = "mutated"
	assert.NotEqual(t, "mutated", data.Trends()[0].Product)

	regions := data.Regions()
	assert.NotEmpty(t, regions)
	regions[0].Region = "mutated"
	assert.NotEqual(t, "mutated", data.Regions()[0].Region)
}
