package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/dataset"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	data := dataset.Load()
	r := NewRegistry()
	r.MustRegister(NewOrders(data))
	r.MustRegister(NewEngagements(data))
	r.MustRegister(NewCompliance(data))
	r.MustRegister(NewAnalytics(data))
	r.MustRegister(NewKnowledge(nil))
	return r
}

func TestRegistryPreservesOrder(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, []string{
		"orders.lookup",
		"engagements.lookup",
		"compliance.check",
		"analytics.report",
		"knowledge.lookup",
	}, r.Names())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	data := dataset.Load()
	assert.NoError(t, r.Register(NewOrders(data)))
	assert.Error(t, r.Register(NewOrders(data)))
}

func TestRegistryGet(t *testing.T) {
	r := newTestRegistry(t)

	c, ok := r.Get("compliance.check")
	assert.True(t, ok)
	assert.Equal(t, "compliance.check", c.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestOrdersSummary(t *testing.T) {
	data := dataset.Load()
	orders := NewOrders(data)

	payload, err := orders.Invoke(context.Background(), map[string]any{"doctor_name": "Martinez"})
	assert.NoError(t, err)

	sum, ok := payload.(domain.OrderSummary)
	assert.True(t, ok)
	assert.Equal(t, 2, sum.TotalOrders)
	assert.Equal(t, 6100.0, sum.TotalValue)
	assert.Equal(t, 1, sum.StatusCounts["On Hold"])
	assert.Equal(t, 1, sum.StatusCounts["Completed"])
}

func TestOrdersAllDoctors(t *testing.T) {
	data := dataset.Load()
	orders := NewOrders(data)

	payload, err := orders.Invoke(context.Background(), nil)
	assert.NoError(t, err)

	sum := payload.(domain.OrderSummary)
	assert.Equal(t, 5, sum.TotalOrders)
	assert.Len(t, sum.RecentOrders, 3)
	// Most recent order first.
	assert.Equal(t, "ORD-014", sum.RecentOrders[0].OrderID)
}

func TestEngagementsLatest(t *testing.T) {
	data := dataset.Load()
	engagements := NewEngagements(data)

	payload, err := engagements.Invoke(context.Background(), map[string]any{"doctor_name": "Shafique"})
	assert.NoError(t, err)

	info := payload.(domain.EngagementInfo)
	assert.False(t, info.NoData)
	assert.Equal(t, "2024-01-20", info.LastDate)
	assert.Len(t, info.ContactsMade, 3)
}

func TestEngagementsNoData(t *testing.T) {
	data := dataset.Load()
	engagements := NewEngagements(data)

	payload, err := engagements.Invoke(context.Background(), map[string]any{"doctor_name": "Nobody"})
	assert.NoError(t, err)

	info := payload.(domain.EngagementInfo)
	assert.True(t, info.NoData)
}

func TestEngagementsRequiresDoctor(t *testing.T) {
	data := dataset.Load()
	engagements := NewEngagements(data)

	_, err := engagements.Invoke(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
